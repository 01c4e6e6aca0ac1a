package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/delivery/http/validator"
	domainerrors "backoffice/internal/domain/errors"
)

func newErrorFixture() *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError

	return e
}

func dispatch(e *echo.Echo, failWith error) *httptest.ResponseRecorder {
	e.GET("/page", func(c echo.Context) error {
		return failWith
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))

	return rec
}

func TestHandleHTTPError_SessionFailureRedirects(t *testing.T) {
	// The session errors arrive wrapped with stack context from the
	// store and authorizer, never bare.
	failures := map[string]error{
		"expired":         errors.Wrap(domainerrors.ErrSessionExpired, "credential expired"),
		"unauthenticated": errors.WithStack(domainerrors.ErrUnauthenticated),
	}

	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			rec := dispatch(newErrorFixture(), failure)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, SignInPath, rec.Header().Get("Location"))
		})
	}
}

func TestHandleHTTPError_SessionFailureInsideTransportError(t *testing.T) {
	// http.Client shells transport errors in *url.Error; a session
	// rejection must still resolve through it to the redirect.
	failure := &url.Error{
		Op:  "Get",
		URL: "http://backend/customers/",
		Err: errors.Wrap(domainerrors.ErrSessionExpired, "credential expired"),
	}

	rec := dispatch(newErrorFixture(), failure)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get("Location"))
}

func TestHandleHTTPError_ValidationFieldsRendered(t *testing.T) {
	fields := validator.FieldErrors{"username": {"Username field is required"}}

	rec := dispatch(newErrorFixture(), fields)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"VALIDATION_FAILED"`)
	assert.Contains(t, rec.Body.String(), `"Username field is required"`)
}

func TestHandleHTTPError_AppErrorKeepsStatusAndCode(t *testing.T) {
	failure := errors.WithStack(domainerrors.ErrUnknownResource.WithDetails("payroll"))

	rec := dispatch(newErrorFixture(), failure)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"UNKNOWN_RESOURCE"`)
	assert.Contains(t, rec.Body.String(), "payroll")
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	rec := dispatch(newErrorFixture(), echo.NewHTTPError(http.StatusMethodNotAllowed, "updates must address a record id"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "updates must address a record id")
}

func TestHandleHTTPError_UnknownErrorIsInternal(t *testing.T) {
	rec := dispatch(newErrorFixture(), errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"INTERNAL_ERROR"`)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestHandleHTTPError_CommittedResponseUntouched(t *testing.T) {
	e := newErrorFixture()
	e.GET("/page", func(c echo.Context) error {
		require.NoError(t, c.NoContent(http.StatusNoContent))

		return errors.WithStack(domainerrors.ErrSessionExpired)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}
