package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice/internal/session"
)

const (
	// SignInPath is where every authentication failure lands.
	SignInPath = "/auth/signin"
	// HomePath is the authenticated landing page.
	HomePath = "/"

	// ContextKeyProfile is the echo context key for the session profile.
	ContextKeyProfile = "sessionProfile"
)

// SessionMiddleware provides the render-time route gates and wires the
// session carrier into the request context for the upstream authorizer.
type SessionMiddleware struct {
	store  *session.Store
	logger *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(store *session.Store, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{store: store, logger: logger}
}

// Attach threads the session carrier through the request context so every
// upstream call made while handling this request can consult the jar.
func (m *SessionMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := session.NewContext(c.Request().Context(), m.store.Carrier(c))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// Private gates authenticated pages. Each navigation re-evaluates from
// storage; nothing is cached across requests. Missing, corrupt and
// expired credentials all collapse into the same redirect.
func (m *SessionMiddleware) Private(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := m.store.Resolve(c); err != nil {
			m.store.Clear(c)
			m.logger.Debug("private route rejected",
				slog.String("path", c.Request().URL.Path),
			)

			return c.Redirect(http.StatusSeeOther, SignInPath)
		}

		if profile, ok := m.store.Profile(c); ok {
			c.Set(ContextKeyProfile, profile)
		}

		return next(c)
	}
}

// Public is the mirror gate for public-only pages such as sign-in: a
// valid unexpired credential is sent home instead.
func (m *SessionMiddleware) Public(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := m.store.Resolve(c); err == nil {
			return c.Redirect(http.StatusSeeOther, HomePath)
		}

		return next(c)
	}
}
