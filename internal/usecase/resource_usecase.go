package usecase

import (
	"context"
	"net/url"

	"backoffice/internal/domain/entity"
	"backoffice/internal/upstream"
)

// ResourceUsecase proxies the admin CRUD surface to the upstream API.
// Bodies are opaque JSON: the backend owns every business schema, this
// side only routes, authorizes and relays.
type ResourceUsecase interface {
	// List fetches a resource collection, passing pagination and search
	// parameters through verbatim.
	List(ctx context.Context, res entity.Resource, query url.Values) (*upstream.Result, error)

	// Retrieve fetches a single record by id.
	Retrieve(ctx context.Context, res entity.Resource, id string) (*upstream.Result, error)

	// Create posts a new record to the collection.
	Create(ctx context.Context, res entity.Resource, body []byte, contentType string) (*upstream.Result, error)

	// Update replaces (PUT) or amends (PATCH) a record. For singleton
	// resources id is empty and the collection path itself is addressed.
	Update(ctx context.Context, res entity.Resource, method, id string, body []byte, contentType string) (*upstream.Result, error)

	// Remove deletes a record by id.
	Remove(ctx context.Context, res entity.Resource, id string) (*upstream.Result, error)
}
