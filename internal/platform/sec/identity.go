// Copyright (c) 2026 Ledgerline. All rights reserved.

package sec

// Identity is the resolved, live snapshot of the caller handed to
// downstream handlers for the duration of one request.
//
// # Lifecycle
//
// An Identity only exists after the authentication middleware has verified
// the bearer token AND re-checked that the user is still live (not soft
// deleted). It is owned exclusively by that request's execution and is
// discarded when the request ends.
type Identity struct {
	UserID int64
	Email  string
	Role   UserRole
}

// IsAdmin reports whether the identity carries the admin role.
func (identity *Identity) IsAdmin() bool {
	return identity.Role == RoleAdmin
}
