// Copyright (c) 2026 Ledgerline. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces defined by the consumers.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Verification Failures

// Verification failures are classified so that callers can log precisely,
// even though the HTTP surface deliberately collapses them all into a
// single 401 to avoid leaking token state to clients.
var (
	// ErrTokenMalformed indicates the token has the wrong structure or
	// is missing required claims.
	ErrTokenMalformed = errors.New("sec: malformed token")

	// ErrTokenSignature indicates the signature does not match the
	// claims and expiry under the shared secret.
	ErrTokenSignature = errors.New("sec: invalid token signature")

	// ErrTokenExpired indicates the embedded expiry is in the past.
	ErrTokenExpired = errors.New("sec: expired token")
)

// AccessClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the UserID and Role directly inside the JWT, token
// verification stays purely computational; the single per-request storage
// read happens later, when the identity resolver re-checks that the user
// is still live.
type AccessClaims struct {
	jwt.RegisteredClaims

	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// TokenService issues and verifies signed, time-limited identity tokens
// using HMAC-SHA256 over a process-wide shared secret.
//
// Tokens are stateless: nothing is persisted at issuance and there is no
// revocation. A deleted user's token stays cryptographically valid until
// expiry; it is the identity resolver's job to reject it.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
//
// The secret is injected configuration (a deployment secret, never a
// literal). ttl is the fixed validity window from issuance.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue creates a signed access token embedding the user's id and role,
// with expiry set to issue-time + the configured TTL.
func (service *TokenService) Issue(userID int64, role UserRole) (string, error) {
	currentTime := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID: userID,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a JWT string and returns the
// embedded claims unmodified.
//
// # Failure Modes
//   - [ErrTokenSignature] if the signature does not match
//   - [ErrTokenExpired] if the embedded expiry has passed
//   - [ErrTokenMalformed] for any structural problem
func (service *TokenService) Verify(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classifyTokenError maps golang-jwt parse errors onto the package's
// verification failure taxonomy.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrTokenSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
