package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice/config"
	"backoffice/internal/domain/entity"
	"backoffice/internal/infra/auth"
	"backoffice/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardFixture(t *testing.T) (*SessionMiddleware, *session.Store, *echo.Echo) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.Secret = "test_session_secret_very_long_for_testing"

	codec, err := auth.NewTokenCodec(cfg)
	require.NoError(t, err)
	store := session.NewStore(codec, cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSessionMiddleware(store, logger), store, echo.New()
}

func sessionCookie(t *testing.T, store *session.Store, e *echo.Echo, expiry time.Time) []*http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-42",
		"exp": expiry.Unix(),
	})
	raw, err := token.SignedString([]byte("upstream-signing-secret"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if expiry.After(time.Now()) {
		_, err = store.Save(c, raw)
		require.NoError(t, err)

		return rec.Result().Cookies()
	}

	// Expired tokens cannot go through Save; seal one directly.
	cfg := &config.Config{}
	cfg.Session.Secret = "test_session_secret_very_long_for_testing"
	codec, err := auth.NewTokenCodec(cfg)
	require.NoError(t, err)
	ciphertext, err := codec.Encrypt(raw)
	require.NoError(t, err)

	return []*http.Cookie{{Name: session.CookieToken, Value: ciphertext}}
}

func runGuard(e *echo.Echo, guard echo.MiddlewareFunc, cookies []*http.Cookie) (echo.Context, *httptest.ResponseRecorder, bool) {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextRan := false
	_ = guard(func(c echo.Context) error {
		nextRan = true

		return c.NoContent(http.StatusOK)
	})(c)

	return c, rec, nextRan
}

func TestPrivateGuard_AbsentSessionRedirects(t *testing.T) {
	mw, _, e := newGuardFixture(t)

	_, rec, nextRan := runGuard(e, mw.Private, nil)

	assert.False(t, nextRan)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get("Location"))
}

func TestPrivateGuard_ExpiredSessionRedirectsAndClears(t *testing.T) {
	mw, store, e := newGuardFixture(t)

	cookies := sessionCookie(t, store, e, time.Now().Add(-10*time.Second))
	_, rec, nextRan := runGuard(e, mw.Private, cookies)

	assert.False(t, nextRan)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get("Location"))

	// The stale entries are expired on the way out.
	cleared := map[string]bool{}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			cleared[cookie.Name] = true
		}
	}
	assert.True(t, cleared[session.CookieToken])
	assert.True(t, cleared[session.CookieProfile])
}

func TestPrivateGuard_ValidSessionRenders(t *testing.T) {
	mw, store, e := newGuardFixture(t)

	cookies := sessionCookie(t, store, e, time.Now().Add(time.Hour))
	c, rec, nextRan := runGuard(e, mw.Private, cookies)

	assert.True(t, nextRan)
	assert.Equal(t, http.StatusOK, rec.Code)

	profile, ok := c.Get(ContextKeyProfile).(*entity.Profile)
	require.True(t, ok)
	assert.Equal(t, "user-42", profile.ID)
}

func TestPublicGuard_ValidSessionRedirectsHome(t *testing.T) {
	mw, store, e := newGuardFixture(t)

	cookies := sessionCookie(t, store, e, time.Now().Add(time.Hour))
	_, rec, nextRan := runGuard(e, mw.Public, cookies)

	assert.False(t, nextRan)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, HomePath, rec.Header().Get("Location"))
}

func TestPublicGuard_AbsentSessionRenders(t *testing.T) {
	mw, _, e := newGuardFixture(t)

	_, rec, nextRan := runGuard(e, mw.Public, nil)

	assert.True(t, nextRan)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAttach_ThreadsCarrierIntoContext(t *testing.T) {
	mw, _, e := newGuardFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	var carrier *session.Carrier
	err := mw.Attach(func(c echo.Context) error {
		carrier = session.FromContext(c.Request().Context())

		return nil
	})(c)

	require.NoError(t, err)
	assert.NotNil(t, carrier)
}
