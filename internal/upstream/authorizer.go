// Package upstream is the HTTP client for the platform REST API. Every
// outgoing call passes through the request authorizer, so no handler can
// forget the authentication contract.
package upstream

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/session"
)

type skipAuthKey struct{}

// WithSkipAuth marks every call made with ctx as exempt from the
// credential requirement. Used exactly by the sign-in call.
func WithSkipAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey{}, true)
}

// SkipAuth reports whether ctx carries the exemption flag.
func SkipAuth(ctx context.Context) bool {
	flagged, _ := ctx.Value(skipAuthKey{}).(bool)

	return flagged
}

// Authorizer is the pre-send hook for upstream calls. Exempt requests
// pass through untouched; all others either get a Bearer header from the
// resolved session or are rejected before reaching the transport, with
// the session torn down. Rejections are non-retryable: stale credentials
// do not self-heal.
type Authorizer struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// NewAuthorizer wraps base with the session gate.
func NewAuthorizer(base http.RoundTripper, logger *slog.Logger) *Authorizer {
	if base == nil {
		base = http.DefaultTransport
	}

	return &Authorizer{base: base, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if SkipAuth(ctx) {
		return a.base.RoundTrip(req)
	}

	carrier := session.FromContext(ctx)
	if carrier == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	rawToken, err := carrier.Resolve()
	if err != nil {
		carrier.Reset()
		a.logger.Warn("upstream call rejected, session invalid",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)

		return nil, err
	}

	// RoundTrippers must not mutate the caller's request.
	authed := req.Clone(ctx)
	authed.Header.Set("Authorization", "Bearer "+rawToken)

	return a.base.RoundTrip(authed)
}
