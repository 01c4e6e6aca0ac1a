package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/usecase"
)

// maxProxyBodyBytes caps buffered admin payloads (slider images and
// rich-text content are uploaded as multipart bodies).
const maxProxyBodyBytes = 16 << 20

// ResourceHandler serves the uniform CRUD proxy for every back-office
// resource. One handler replaces the per-entity screens of the admin UI:
// routing, authorization and relay are identical across all of them.
type ResourceHandler struct {
	uc      usecase.ResourceUsecase
	logger  *slog.Logger
	catalog map[string]entity.Resource
}

// NewResourceHandler is the constructor for ResourceHandler.
func NewResourceHandler(uc usecase.ResourceUsecase, logger *slog.Logger) *ResourceHandler {
	catalog := make(map[string]entity.Resource)
	for _, res := range entity.Catalog() {
		catalog[res.Name] = res
	}

	return &ResourceHandler{
		uc:      uc,
		logger:  logger,
		catalog: catalog,
	}
}

// List relays a collection fetch, passing pagination and search
// parameters through verbatim. Singleton resources return their single
// record here.
func (h *ResourceHandler) List(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}

	result, err := h.uc.List(c.Request().Context(), res, c.QueryParams())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Relay(c, result)
}

// Retrieve relays a single-record fetch.
func (h *ResourceHandler) Retrieve(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}
	if res.Shape == entity.ShapeSingleton {
		return echo.NewHTTPError(http.StatusMethodNotAllowed, "singleton resources have no record ids")
	}

	result, err := h.uc.Retrieve(c.Request().Context(), res, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Relay(c, result)
}

// Create relays a record creation.
func (h *ResourceHandler) Create(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}
	if res.Shape == entity.ShapeSingleton {
		return echo.NewHTTPError(http.StatusMethodNotAllowed, "singleton resources cannot be created")
	}

	body, contentType, err := readBody(c)
	if err != nil {
		return err
	}

	result, err := h.uc.Create(c.Request().Context(), res, body, contentType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Relay(c, result)
}

// Mutate relays PUT and PATCH. Collection resources address a record id;
// singletons address the resource itself.
func (h *ResourceHandler) Mutate(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	switch {
	case res.Shape == entity.ShapeSingleton && id != "":
		return echo.NewHTTPError(http.StatusMethodNotAllowed, "singleton resources have no record ids")
	case res.Shape != entity.ShapeSingleton && id == "":
		return echo.NewHTTPError(http.StatusMethodNotAllowed, "updates must address a record id")
	}

	body, contentType, err := readBody(c)
	if err != nil {
		return err
	}

	result, err := h.uc.Update(c.Request().Context(), res, c.Request().Method, id, body, contentType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Relay(c, result)
}

// Delete relays a record deletion.
func (h *ResourceHandler) Delete(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}
	if res.Shape == entity.ShapeSingleton {
		return echo.NewHTTPError(http.StatusMethodNotAllowed, "singleton resources cannot be deleted")
	}

	result, err := h.uc.Remove(c.Request().Context(), res, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Relay(c, result)
}

func (h *ResourceHandler) lookup(c echo.Context) (entity.Resource, error) {
	name := c.Param("resource")
	res, ok := h.catalog[name]
	if !ok {
		return entity.Resource{}, errors.WithStack(domainerrors.ErrUnknownResource.WithDetails(name))
	}

	return res, nil
}

func readBody(c echo.Context) (body []byte, contentType string, err error) {
	body, err = io.ReadAll(io.LimitReader(c.Request().Body, maxProxyBodyBytes))
	if err != nil {
		return nil, "", errors.Wrap(err, "read request body")
	}

	return body, c.Request().Header.Get(echo.HeaderContentType), nil
}
