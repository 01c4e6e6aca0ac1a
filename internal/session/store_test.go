package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice/config"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/service"
	"backoffice/internal/infra/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, service.TokenCodec) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.Secret = "test_session_secret_very_long_for_testing"

	codec, err := auth.NewTokenCodec(cfg)
	require.NoError(t, err)

	return NewStore(codec, cfg), codec
}

func newEchoContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("upstream-signing-secret"))
	require.NoError(t, err)

	return signed
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set on response", name)

	return nil
}

func TestStore_SaveWritesBothEntries(t *testing.T) {
	store, codec := newTestStore(t)
	c, rec := newEchoContext()

	expiry := time.Now().Add(time.Hour)
	raw := mintToken(t, jwt.MapClaims{"id": "user-42", "exp": expiry.Unix()})

	profile, err := store.Save(c, raw)
	require.NoError(t, err)
	assert.Equal(t, "user-42", profile.ID)

	tokenCookie := responseCookie(t, rec, CookieToken)
	assert.NotEmpty(t, tokenCookie.Value)
	assert.True(t, tokenCookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, tokenCookie.SameSite)
	assert.WithinDuration(t, expiry, tokenCookie.Expires, 2*time.Second)

	// The stored value is ciphertext, not the token itself.
	assert.NotEqual(t, raw, tokenCookie.Value)
	assert.Equal(t, raw, codec.Decrypt(tokenCookie.Value))

	profileCookie := responseCookie(t, rec, CookieProfile)
	assert.NotEmpty(t, profileCookie.Value)
	assert.WithinDuration(t, expiry, profileCookie.Expires, 2*time.Second)
}

func TestStore_SaveRejectsExpiredToken(t *testing.T) {
	store, _ := newTestStore(t)
	c, rec := newEchoContext()

	raw := mintToken(t, jwt.MapClaims{"id": "user-42", "exp": time.Now().Add(-time.Minute).Unix()})

	_, err := store.Save(c, raw)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
	assert.Empty(t, rec.Result().Cookies())
}

func TestStore_ResolveAbsent(t *testing.T) {
	store, _ := newTestStore(t)
	c, _ := newEchoContext()

	_, err := store.Resolve(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestStore_ResolveCorruptCiphertext(t *testing.T) {
	store, _ := newTestStore(t)
	c, _ := newEchoContext(&http.Cookie{Name: CookieToken, Value: "garbage"})

	_, err := store.Resolve(c)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}

func TestStore_ResolveExpiredCredential(t *testing.T) {
	store, codec := newTestStore(t)

	raw := mintToken(t, jwt.MapClaims{"id": "user-42", "exp": time.Now().Add(-10 * time.Second).Unix()})
	ciphertext, err := codec.Encrypt(raw)
	require.NoError(t, err)

	c, _ := newEchoContext(&http.Cookie{Name: CookieToken, Value: ciphertext})

	_, resolveErr := store.Resolve(c)
	assert.ErrorIs(t, resolveErr, domainerrors.ErrSessionExpired)
}

func TestStore_ResolveValidCredential(t *testing.T) {
	store, codec := newTestStore(t)

	raw := mintToken(t, jwt.MapClaims{"id": "user-42", "exp": time.Now().Add(time.Hour).Unix()})
	ciphertext, err := codec.Encrypt(raw)
	require.NoError(t, err)

	c, _ := newEchoContext(&http.Cookie{Name: CookieToken, Value: ciphertext})

	resolved, err := store.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, raw, resolved)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	c, rec := newEchoContext()

	store.Clear(c)
	store.Clear(c)

	names := map[string]bool{}
	for _, cookie := range rec.Result().Cookies() {
		names[cookie.Name] = true
		assert.Less(t, cookie.MaxAge, 0)
		assert.Empty(t, cookie.Value)
	}
	assert.True(t, names[CookieToken])
	assert.True(t, names[CookieProfile])
	assert.True(t, names[CookiePrefs])
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	c, rec := newEchoContext()

	raw := mintToken(t, jwt.MapClaims{"id": "user-42", "exp": time.Now().Add(time.Hour).Unix()})
	_, err := store.Save(c, raw)
	require.NoError(t, err)

	profileCookie := responseCookie(t, rec, CookieProfile)
	readCtx, _ := newEchoContext(&http.Cookie{Name: CookieProfile, Value: profileCookie.Value})

	profile, ok := store.Profile(readCtx)
	require.True(t, ok)
	assert.Equal(t, "user-42", profile.ID)
}

func TestStore_PrefsRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	c, rec := newEchoContext()

	require.NoError(t, store.SavePrefs(c, map[string]string{"theme": "dark", "sidebarPinned": "true"}))

	prefsCookie := responseCookie(t, rec, CookiePrefs)
	readCtx, _ := newEchoContext(&http.Cookie{Name: CookiePrefs, Value: prefsCookie.Value})

	prefs := store.Prefs(readCtx)
	assert.Equal(t, "dark", prefs["theme"])
	assert.Equal(t, "true", prefs["sidebarPinned"])
}
