// Copyright (c) 2026 Ledgerline. All rights reserved.

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/platform/apperr"
	"github.com/ledgerline/ledgerline/internal/platform/ctxutil"
	"github.com/ledgerline/ledgerline/internal/platform/middleware"
	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

// fakeResolver resolves a single known token to a fixed identity and
// rejects everything else.
type fakeResolver struct {
	knownToken string
	identity   *sec.Identity
}

func (resolver *fakeResolver) ResolveIdentity(_ context.Context, token string) (*sec.Identity, error) {
	if token == resolver.knownToken {
		return resolver.identity, nil
	}
	return nil, apperr.Unauthorized("Invalid or expired token")
}

// echoIdentity records the identity that reached the terminal handler.
func echoIdentity(captured **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate covers the three header states: absent (anonymous
pass-through), well-formed with a resolvable token (identity injected),
and anything else (401 before the handler runs).
*/
func TestAuthenticate(t *testing.T) {
	resolver := &fakeResolver{
		knownToken: "good-token",
		identity:   &sec.Identity{UserID: 1, Email: "a@example.com", Role: sec.RoleUser},
	}

	tests := []struct {
		name           string
		header         string
		wantStatus     int
		wantIdentity   bool
		handlerReached bool
	}{
		{"no_header_anonymous", "", http.StatusOK, false, true},
		{"valid_bearer", "Bearer good-token", http.StatusOK, true, true},
		{"case_insensitive_scheme", "bearer good-token", http.StatusOK, true, true},
		{"unknown_token", "Bearer forged-token", http.StatusUnauthorized, false, false},
		{"wrong_scheme", "Basic good-token", http.StatusUnauthorized, false, false},
		{"missing_token", "Bearer", http.StatusUnauthorized, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *sec.Identity
			reached := false
			terminal := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				reached = true
				captured = ctxutil.GetIdentity(request.Context())
				writer.WriteHeader(http.StatusOK)
			})

			handler := middleware.Authenticate(resolver)(terminal)

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.handlerReached, reached)
			if tt.wantIdentity {
				require.NotNil(t, captured)
				assert.Equal(t, int64(1), captured.UserID)
			} else {
				assert.Nil(t, captured)
			}
		})
	}
}

/*
TestRequireAuth verifies the gate blocks anonymous requests and passes
authenticated ones through untouched.
*/
func TestRequireAuth(t *testing.T) {
	var captured *sec.Identity
	handler := middleware.RequireAuth(echoIdentity(&captured))

	// Anonymous: blocked.
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, captured)

	// Authenticated: passes.
	identity := &sec.Identity{UserID: 5, Role: sec.RoleUser}
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, identity, captured)
}

/*
TestRequireRole exercises the admin gate: anonymous → 401, plain user →
403, admin → pass. The 403 only ever fires after authentication.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		identity   *sec.Identity
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"plain_user", &sec.Identity{UserID: 2, Role: sec.RoleUser}, http.StatusForbidden},
		{"admin", &sec.Identity{UserID: 3, Role: sec.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *sec.Identity
			handler := middleware.RequireRole(sec.RoleAdmin)(echoIdentity(&captured))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), tt.identity))
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
