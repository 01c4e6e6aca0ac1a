package impl

import (
	"context"
	"log/slog"
	"net/url"

	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	"backoffice/internal/upstream"
	"backoffice/internal/usecase"
)

// resourceService implements the ResourceUsecase interface as a thin
// relay over the upstream client. Every call inherits the request
// authorizer on the client's transport.
type resourceService struct {
	client *upstream.Client
	logger *slog.Logger
}

// NewResourceService is the constructor for resourceService.
func NewResourceService(client *upstream.Client, logger *slog.Logger) usecase.ResourceUsecase {
	return &resourceService{client: client, logger: logger}
}

func (srv *resourceService) List(ctx context.Context, res entity.Resource, query url.Values) (*upstream.Result, error) {
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("proxy list", slog.String("resource", res.Name))

	return srv.client.Get(ctx, res.UpstreamPath, query)
}

func (srv *resourceService) Retrieve(ctx context.Context, res entity.Resource, id string) (*upstream.Result, error) {
	return srv.client.Get(ctx, itemPath(res, id), nil)
}

func (srv *resourceService) Create(ctx context.Context, res entity.Resource, body []byte, contentType string) (*upstream.Result, error) {
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("proxy create", slog.String("resource", res.Name))

	return srv.client.Send(ctx, "POST", res.UpstreamPath, body, contentType)
}

func (srv *resourceService) Update(ctx context.Context, res entity.Resource, method, id string, body []byte, contentType string) (*upstream.Result, error) {
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("proxy update",
		slog.String("resource", res.Name),
		slog.String("method", method),
	)

	return srv.client.Send(ctx, method, itemPath(res, id), body, contentType)
}

func (srv *resourceService) Remove(ctx context.Context, res entity.Resource, id string) (*upstream.Result, error) {
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("proxy delete", slog.String("resource", res.Name))

	return srv.client.Delete(ctx, itemPath(res, id))
}

// itemPath addresses one record, or the collection itself for singleton
// resources where no id applies.
func itemPath(res entity.Resource, id string) string {
	if res.Shape == entity.ShapeSingleton || id == "" {
		return res.UpstreamPath
	}

	return res.UpstreamPath + url.PathEscape(id) + "/"
}
