// Copyright (c) 2026 Ledgerline. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ledgerline/ledgerline/internal/platform/apperr"
	"github.com/ledgerline/ledgerline/internal/platform/constants"
	"github.com/ledgerline/ledgerline/internal/platform/ctxutil"
	"github.com/ledgerline/ledgerline/internal/platform/respond"
	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

// IdentityResolver maps a presented bearer token to the live identity of
// its owner.
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the auth
// service implementation, allowing us to easily inject fakes during unit
// testing. The concrete resolver verifies the token signature and expiry,
// then performs exactly one storage read to confirm the user still exists
// and is not soft deleted.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*sec.Identity, error)
}

// errUnauthenticated is the single client-visible failure for every
// authentication problem: missing/malformed/expired/forged token, missing
// user_id claim, or a token whose user has been deleted. Collapsing them
// avoids leaking account state to callers.
var errUnauthenticated = apperr.Unauthorized("Invalid or expired token")

// Authenticate resolves the bearer token, if any, into a caller identity.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, resolve it via [IdentityResolver]; any failure aborts
//     with HTTP 401 — resolution failures are deliberately indistinguishable.
//  4. Inject the resolved [*sec.Identity] into the request context.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != constants.AuthScheme {
				respond.Error(writer, request, errUnauthenticated)
				return
			}

			// ── 3. Token Resolution ───────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), parts[1])
			if err != nil {
				respond.Error(writer, request, errUnauthenticated)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose authenticated caller lacks the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both. A request that
// fails authentication never reaches the role check.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !identity.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Admin access required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
