// Copyright (c) 2026 Ledgerline. All rights reserved.

package auth

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/platform/middleware"
	requestutil "github.com/ledgerline/ledgerline/internal/platform/request"
	"github.com/ledgerline/ledgerline/internal/platform/respond"
	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

// AdminRoutes returns a [chi.Router] with the admin-only user management routes.
//
// # Endpoints
//   - GET    /             : Lists all live accounts.
//   - POST   /promote/{id} : Grants the admin role.
//   - DELETE /{id}         : Soft-deletes an account.
//
// The whole group sits behind [middleware.RequireRole], so an
// unauthenticated caller gets 401 and a non-admin gets 403 before any
// handler runs.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(sec.RoleAdmin))
	router.Get("/", handler.listUsers)
	router.Post("/promote/{id}", handler.promoteUser)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

/*
ListUsers returns every live account.

GET /users/

Response:
  - 200: []User: Live accounts (password hashes omitted)
  - 403: FORBIDDEN: Caller is not an admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.authService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

/*
PromoteUser grants the admin role to a live account.

POST /users/promote/{id}

Response:
  - 200: {message}: Promotion applied
  - 404: NOT_FOUND: No live account with this id
  - 403: FORBIDDEN: Caller is not an admin
*/
func (handler *Handler) promoteUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Promote(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: fmt.Sprintf("%s promoted to admin", user.Email),
	})
}

/*
DeleteUser soft-deletes a live account.

DELETE /users/{id}

Description: The account row is retained; outstanding tokens are rejected
at identity resolution from this point on.

Response:
  - 200: {message}: Account deleted
  - 404: NOT_FOUND: No live account with this id
  - 403: FORBIDDEN: Caller is not an admin
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Delete(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: fmt.Sprintf("%s deleted", user.Email),
	})
}
