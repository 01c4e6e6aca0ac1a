package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice/internal/delivery/http/response"
	"backoffice/internal/session"
)

// PrefsHandler serves the transient UI-preference blob (theme, sidebar
// pin). Preferences carry no auth state but live and die with the
// session cookie jar.
type PrefsHandler struct {
	store *session.Store
}

// NewPrefsHandler is the constructor for PrefsHandler.
func NewPrefsHandler(store *session.Store) *PrefsHandler {
	return &PrefsHandler{store: store}
}

// Get returns the stored preferences, empty when none exist.
func (h *PrefsHandler) Get(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.Prefs(c), "")
}

// Put replaces the stored preferences.
func (h *PrefsHandler) Put(c echo.Context) error {
	prefs := map[string]string{}
	if err := c.Bind(&prefs); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid preferences payload")
	}

	if err := h.store.SavePrefs(c, prefs); err != nil {
		return response.InternalServerError(c, "PREFS_WRITE_FAILED", "Could not persist preferences")
	}

	return response.Success(c, http.StatusOK, prefs, "Preferences saved")
}
