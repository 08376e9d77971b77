// Copyright (c) 2026 Ledgerline. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Every "FindLive" / "ListLive" method carries the soft-delete filter in a
// single place (the implementation's live-row predicate), so the invariant
// "deleted users are never resolvable" holds even as new query sites are
// added.
type UserRepository interface {

	/*
		FindLiveByID returns the non-deleted account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if absent or soft deleted, or retrieval failures
	*/
	FindLiveByID(context context.Context, id int64) (*User, error)

	/*
		FindLiveByEmail returns the non-deleted account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string (matched case-sensitively, as stored)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if absent or soft deleted, or retrieval failures
	*/
	FindLiveByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User (ID and CreatedAt are populated on success)

		Returns:
		  - error: Persistence failures (unique violations map to Conflict)
	*/
	Create(context context.Context, user *User) error

	/*
		ListLive returns every non-deleted account, oldest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: Hydrated entities
		  - error: Retrieval failures
	*/
	ListLive(context context.Context) ([]*User, error)

	/*
		UpdateRole replaces the role of a live account.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - role: sec.UserRole

		Returns:
		  - error: apperr.NotFound if no live row matched, or persistence failures
	*/
	UpdateRole(context context.Context, id int64, role sec.UserRole) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound if no live row matched, or persistence failures
	*/
	SoftDelete(context context.Context, id int64) error
}

// # Abuse Throttling

// LoginThrottle counts failed login attempts in volatile storage so that
// credential-stuffing runs hit a wall before the bcrypt comparisons do.
type LoginThrottle interface {

	/*
		Hit records one failed attempt for the key and returns the running
		count inside the window.

		Parameters:
		  - context: context.Context
		  - key: string (caller-composed, e.g. email|ip)
		  - window: time.Duration

		Returns:
		  - int64: Attempt count including this one
		  - error: Storage failures
	*/
	Hit(context context.Context, key string, window time.Duration) (int64, error)

	/*
		Clear forgets all recorded attempts for the key after a successful login.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Storage failures
	*/
	Clear(context context.Context, key string) error
}
