// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
)

// SignInInput is the credential form. RememberMe is collected and
// forwarded but not consulted by any expiry rule; both remembered and
// non-remembered sessions expire with the token claim.
type SignInInput struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// SignInOutput carries the freshly issued bearer token. Establishing the
// session record from it is the delivery layer's job.
type SignInOutput struct {
	Token string
}

// AuthUsecase exchanges credentials for a bearer token at the upstream
// authentication endpoint.
type AuthUsecase interface {
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)
}
