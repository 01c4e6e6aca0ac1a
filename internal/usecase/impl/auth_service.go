// Package impl provides the concrete usecase implementations.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	deliverycontext "backoffice/internal/delivery/context"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/upstream"
	"backoffice/internal/usecase"
)

const signInPath = "/auth/get-token/"

// authService implements the AuthUsecase interface.
type authService struct {
	client *upstream.Client
	logger *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(client *upstream.Client, logger *slog.Logger) usecase.AuthUsecase {
	return &authService{client: client, logger: logger}
}

// SignIn exchanges the credential form for a bearer token. The call is
// exempt from the request authorizer: it is how a credential is first
// obtained. Failures leave any stored session untouched.
func (srv *authService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "marshal sign-in payload")
	}

	result, err := srv.client.Send(upstream.WithSkipAuth(ctx), http.MethodPost, signInPath, payload, "")
	if err != nil {
		return nil, err
	}

	if !result.Successful() {
		logger.Warn("sign-in rejected by upstream",
			slog.String("username", input.Username),
			slog.Int("status", result.Status),
		)

		message := result.Message("An error occurred during sign-in")
		if result.Status == http.StatusUnauthorized || result.Status == http.StatusBadRequest {
			return nil, domainerrors.ErrInvalidCredentials.WithDetails(message)
		}

		return nil, domainerrors.ErrUpstreamUnavailable.WithDetails(message)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := result.DecodeJSON(&body); err != nil {
		return nil, err
	}
	if body.Token == "" {
		return nil, errors.WithStack(domainerrors.ErrUpstreamUnavailable.WithDetails("authentication endpoint returned no token"))
	}

	logger.Debug("sign-in accepted", slog.String("username", input.Username))

	return &usecase.SignInOutput{Token: body.Token}, nil
}
