// Copyright (c) 2026 Ledgerline. All rights reserved.

/*
Package auth implements the user identity and access management layer.

It defines the core domain entity (User) and the logic for registration,
login, token-based identity resolution, and the admin-only account
lifecycle operations (promotion, soft deletion).

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
transport dependencies and encapsulates all business rules related to
user identity.
*/
package auth

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account of the expense tracker.
//
// # Lifecycle
//
// Created on registration with role "user"; the role may be changed by an
// admin promotion; deletion is a soft delete (IsDeleted set true) and is
// terminal — no reinstatement operation exists. The invariant "exactly one
// live user per email" is enforced by a partial unique index in storage.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsDeleted    bool         `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldUsername    = "username"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldMessage     = "message"
)
