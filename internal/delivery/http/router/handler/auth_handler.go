// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/response"
	"backoffice/internal/session"
	"backoffice/internal/usecase"
)

// AuthHandler holds dependencies for the sign-in and sign-out flows.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	store  *session.Store
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, store *session.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		store:  store,
		logger: logger,
	}
}

// SignIn handles the credential form. Shape validation runs before any
// network call; an upstream rejection surfaces as an error without
// touching the stored session.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var input *usecase.SignInInput
	// A literal null body binds without error but leaves input nil.
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.SignIn(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.store.Save(c, output.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"redirectTo": middleware.HomePath,
		"profile":    profile,
	}, "Sign-in successful")
}

// SignOut tears the session down. Idempotent: signing out without a
// session is not an error.
func (h *AuthHandler) SignOut(c echo.Context) error {
	h.store.Clear(c)

	return response.Success(c, http.StatusOK, map[string]any{
		"redirectTo": middleware.SignInPath,
	}, "Signed out")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
