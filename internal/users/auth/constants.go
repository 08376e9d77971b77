// Copyright (c) 2026 Ledgerline. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the fixed validity window of an access token from
	// issuance. There is no refresh flow; expiry forces a full re-login.
	AccessTokenTTL = 60 * time.Minute

	// TokenType is the token-type marker returned alongside access tokens.
	TokenType = "bearer"

	// LoginAttemptWindow is the rolling window over which failed logins
	// for one (email, ip) pair are counted.
	LoginAttemptWindow = 15 * time.Minute

	// LoginAttemptLimit is the number of failed logins tolerated inside
	// the window before further attempts are throttled.
	LoginAttemptLimit = 10
)
