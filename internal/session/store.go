// Package session persists the encrypted credential and its companion
// profile blob in the client's cookie jar.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/config"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/service"
)

const (
	// CookieToken holds the encrypted bearer token.
	CookieToken = "authToken"
	// CookieProfile holds the base64-encoded profile JSON.
	CookieProfile = "userData"
	// CookiePrefs holds transient UI preferences (theme, sidebar pin).
	// It carries no auth state but is torn down with the session.
	CookiePrefs = "uiPrefs"
)

// Store reads and writes the session record on an echo request/response
// pair. Cookie expiry always equals the credential's own claimed expiry.
type Store struct {
	codec  service.TokenCodec
	domain string
	secure bool
}

// NewStore is the constructor for Store.
func NewStore(codec service.TokenCodec, cfg *config.Config) *Store {
	return &Store{
		codec:  codec,
		domain: cfg.Session.CookieDomain,
		secure: cfg.Session.CookieSecure(),
	}
}

// Save encrypts the raw token and writes both session cookies, replacing
// any prior entries. An already-expired token is refused.
func (s *Store) Save(c echo.Context, rawToken string) (*entity.Profile, error) {
	claims, err := s.codec.Claims(rawToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrSessionExpired, "unusable token claims")
	}
	if claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.Wrap(domainerrors.ErrSessionExpired, "token already expired")
	}

	ciphertext, err := s.codec.Encrypt(rawToken)
	if err != nil {
		return nil, errors.Wrap(err, "encrypt token")
	}

	profile := entity.Profile{ID: claims.Subject}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, errors.Wrap(err, "marshal profile")
	}

	s.setCookie(c, CookieToken, ciphertext, claims.ExpiresAt)
	s.setCookie(c, CookieProfile, base64.RawURLEncoding.EncodeToString(profileJSON), claims.ExpiresAt)

	return &profile, nil
}

// Load returns the stored ciphertext without validating freshness.
func (s *Store) Load(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieToken)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

// Profile returns the stored profile blob, if any.
func (s *Store) Profile(c echo.Context) (*entity.Profile, bool) {
	cookie, err := c.Cookie(CookieProfile)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil, false
	}

	var profile entity.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false
	}

	return &profile, true
}

// Resolve loads, decrypts and freshness-checks the stored credential. It
// never mutates the jar: callers decide whether a failure clears cookies.
// Absence and invalidity are distinct errors but both resolve to the same
// sign-in redirect.
func (s *Store) Resolve(c echo.Context) (string, error) {
	ciphertext, ok := s.Load(c)
	if !ok {
		return "", errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	rawToken := s.codec.Decrypt(ciphertext)
	if rawToken == "" {
		return "", errors.Wrap(domainerrors.ErrSessionExpired, "credential decode failed")
	}
	if s.codec.IsExpired(rawToken) {
		return "", errors.Wrap(domainerrors.ErrSessionExpired, "credential expired")
	}

	return rawToken, nil
}

// Clear expires every session cookie, the transient UI-preference blob
// included. Idempotent: clearing an absent session is a no-op.
func (s *Store) Clear(c echo.Context) {
	for _, name := range []string{CookieToken, CookieProfile, CookiePrefs} {
		s.expireCookie(c, name)
	}
}

// SavePrefs writes the transient UI-preference blob. Session-scoped: no
// explicit expiry beyond the browser session.
func (s *Store) SavePrefs(c echo.Context, prefs map[string]string) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return errors.Wrap(err, "marshal preferences")
	}

	c.SetCookie(&http.Cookie{
		Name:     CookiePrefs,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Domain:   s.domain,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}

// Prefs reads the transient UI-preference blob, empty when absent.
func (s *Store) Prefs(c echo.Context) map[string]string {
	cookie, err := c.Cookie(CookiePrefs)
	if err != nil || cookie.Value == "" {
		return map[string]string{}
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return map[string]string{}
	}

	prefs := map[string]string{}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return map[string]string{}
	}

	return prefs
}

func (s *Store) setCookie(c echo.Context, name, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		Expires:  expires,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Store) expireCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   -1,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
