// Copyright (c) 2026 Ledgerline. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ledgerline/ledgerline/internal/platform/apperr"
	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying access tokens.
//
// # Why an interface?
//
// The service never touches signing keys directly; the concrete
// [sec.TokenService] is injected, and tests substitute a deterministic fake.
type TokenProvider interface {
	// Issue creates a signed access token embedding the user's id and role.
	Issue(userID int64, role sec.UserRole) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	Verify(token string) (*sec.AccessClaims, error)
}

// # Domain Errors

// ErrDuplicateEmail is returned when registration targets an email that
// already has a live account. The public API contract returns this as a
// 400, not a 409, so it gets a bespoke error instead of [apperr.Conflict].
var ErrDuplicateEmail = &apperr.AppError{
	Code:       "DUPLICATE_EMAIL",
	Message:    "Email already registered. Please login or use a different email.",
	HTTPStatus: http.StatusBadRequest,
}

// errInvalidCredentials collapses "no such user" and "wrong password" into
// one indistinguishable failure to prevent account enumeration.
var errInvalidCredentials = apperr.Unauthorized("Invalid credentials")

// errUnauthenticated collapses every identity-resolution failure: bad
// signature, expiry, malformed claims, and token-valid-but-user-deleted.
var errUnauthenticated = apperr.Unauthorized("Invalid or expired token")

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token, or
// identity-resolution logic must be reviewed with extra care.
type Service struct {
	users    UserRepository
	throttle LoginThrottle
	tokens   TokenProvider
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(users UserRepository, throttle LoginThrottle, tokens TokenProvider) *Service {
	return &Service{
		users:    users,
		throttle: throttle,
		tokens:   tokens,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Password string
}

/*
Register hashes the password and persists a brand new user account.

Description: Fails if a live account already exists for the email; the
write only happens after every check passed, so no partial state is ever
committed. No email verification and no password-strength policy exist.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity with role "user"
  - error: ErrDuplicateEmail or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify the email has no live account. Soft-deleted accounts do not
	// block re-registration because the lookup only sees live rows.
	if _, err := service.users.FindLiveByEmail(context, input.Email); err == nil {
		return nil, ErrDuplicateEmail
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// against CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
}

// LoginResult carries the issued access token and its type marker.
type LoginResult struct {
	AccessToken string
	TokenType   string
}

/*
Login validates user credentials and issues a signed access token.

Description: Looks up the live account by email and compares the bcrypt
digest. Unknown email and wrong password produce the identical error so
the response gives no account-existence signal. Failed attempts feed a
Redis counter per (email, ip); past the limit the flow short-circuits
with 429 before touching bcrypt.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Signed token plus token-type marker
  - error: Unauthorized, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	throttleKey := input.Email + "|" + input.IPAddress

	user, err := service.users.FindLiveByEmail(context, input.Email)

	// Check password only when a user was found; both failure paths fall
	// through to the same generic error below.
	authenticated := err == nil && sec.CheckPasswordHash(input.Password, user.PasswordHash)

	if !authenticated {
		count, throttleErr := service.throttle.Hit(context, throttleKey, LoginAttemptWindow)
		// A throttle outage must not turn login failures into 500s.
		if throttleErr == nil && count > LoginAttemptLimit {
			return nil, apperr.RateLimited(int(LoginAttemptWindow.Seconds()))
		}
		return nil, errInvalidCredentials
	}

	_ = service.throttle.Clear(context, throttleKey)

	accessToken, err := service.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   TokenType,
	}, nil
}

// # Identity Resolution

/*
ResolveIdentity maps a presented bearer token to a live user.

Description: Verifies the token (signature + expiry), extracts the user_id
claim, and performs exactly one storage read for the live account. Every
failure mode — malformed, forged, expired, missing claim, user deleted or
absent — returns the same Unauthorized error, deliberately indistinguishable
so account-deletion state never leaks. This re-check is what cuts off a
deleted user whose token is still cryptographically valid.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Identity: Live caller snapshot for this request
  - error: apperr.Unauthorized on any failure
*/
func (service *Service) ResolveIdentity(context context.Context, token string) (*sec.Identity, error) {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		return nil, errUnauthenticated
	}

	if claims.UserID <= 0 {
		return nil, errUnauthenticated
	}

	user, err := service.users.FindLiveByID(context, claims.UserID)
	if err != nil {
		return nil, errUnauthenticated
	}

	return &sec.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// # Account Administration

/*
ListUsers returns every live account.

Parameters:
  - context: context.Context

Returns:
  - []*User: Live accounts, oldest first
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context) ([]*User, error) {
	return service.users.ListLive(context)
}

/*
Promote grants the admin role to a live account.

Description: Repeatable — promoting an admin is a no-op update. A freshly
issued token is required for the new role to take effect in claims; already
issued tokens keep their old role claim until expiry, but role checks run
against the re-resolved identity, so promotion is visible immediately.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: The promoted account
  - error: apperr.NotFound if no live account, or persistence failures
*/
func (service *Service) Promote(context context.Context, userID int64) (*User, error) {
	user, err := service.users.FindLiveByID(context, userID)
	if err != nil {
		return nil, err
	}

	if err := service.users.UpdateRole(context, userID, sec.RoleAdmin); err != nil {
		return nil, err
	}

	user.Role = sec.RoleAdmin
	return user, nil
}

/*
Delete soft-deletes a live account.

Description: The row is retained with is_deleted = TRUE; the account's
outstanding tokens stay cryptographically valid but identity resolution
rejects them from this point on. Terminal — no reinstatement exists.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: The deleted account (pre-deletion snapshot)
  - error: apperr.NotFound if no live account, or persistence failures
*/
func (service *Service) Delete(context context.Context, userID int64) (*User, error) {
	user, err := service.users.FindLiveByID(context, userID)
	if err != nil {
		return nil, err
	}

	if err := service.users.SoftDelete(context, userID); err != nil {
		return nil, err
	}

	user.IsDeleted = true
	return user, nil
}
