// Copyright (c) 2026 Ledgerline. All rights reserved.

// HTTP delivery layer for the authentication lifecycle.
//
// # Architecture
//
// The handler acts as a thin mediation layer between the web and the domain
// service:
//   - Protocol: JSON for register, form-encoded for login (OAuth2 password
//     flow convention, kept for SPA and swagger-ui compatibility).
//   - Verification: Enforces strict input validation before passing to [Service].
//
// This layer is strictly responsible for transport concerns (status codes, headers, JSON).

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/platform/middleware"
	requestutil "github.com/ledgerline/ledgerline/internal/platform/request"
	"github.com/ledgerline/ledgerline/internal/platform/respond"
	"github.com/ledgerline/ledgerline/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the public authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /auth/register

Description: Validates input, checks for a live account conflict, and
persists a new user profile with role "user".

Request:
  - Body: registerRequest (Email, Password)

Response:
  - 200: {message}: Account created
  - 400: DUPLICATE_EMAIL: A live account already uses this email
  - 400: VALIDATION_ERROR: Bad input
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// The password is accepted as-is: no strength policy exists, and even
	// the empty string is a valid (if weak) credential at this layer.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Flat body: the SPA contract predates the envelope convention.
	respond.JSON(writer, http.StatusOK, map[string]string{
		FieldMessage: "User created successfully",
	})
}

/*
Login authenticates a user and issues a bearer token.

POST /auth/login

Description: Accepts form fields in the OAuth2 password-flow shape
(username carries the email). Unknown email and wrong password yield the
identical 401 so the endpoint gives no enumeration signal.

Request:
  - Form: username (=email), password

Response:
  - 200: {access_token, token_type:"bearer"}
  - 401: UNAUTHORIZED: Invalid credentials
  - 429: RATE_LIMITED: Too many failed attempts for this email+IP
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldUsername, "is required"))
		return
	}

	email := request.PostFormValue(FieldUsername)
	password := request.PostFormValue(FieldPassword)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     email,
		Password:  password,
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Flat body: OAuth2 token responses must not be wrapped in the envelope.
	respond.JSON(writer, http.StatusOK, map[string]string{
		FieldAccessToken: result.AccessToken,
		FieldTokenType:   result.TokenType,
	})
}
