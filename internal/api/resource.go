package api

import (
	"context"
	"net/http"

	"smartdir/internal/directory"
)

// Resource is one collection under /api. Which operations a caller may use
// is decided by the caller: only partners are created or updated, and only
// logs are cleared.
type Resource[T directory.Record] struct {
	client *Client
	path   string
}

// NewResource binds a record type to a path on c.
func NewResource[T directory.Record](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string { return r.path }

// List fetches the whole collection in backend order.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Create posts a new record.
func (r *Resource[T]) Create(ctx context.Context, record T) error {
	return r.client.do(ctx, http.MethodPost, r.path, record, nil)
}

// Update replaces the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id string, record T) error {
	return r.client.do(ctx, http.MethodPut, joinID(r.path, id), record, nil)
}

// Delete removes one record.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, joinID(r.path, id), nil, nil)
}

// Clear removes every record of the collection.
func (r *Resource[T]) Clear(ctx context.Context) error {
	return r.client.do(ctx, http.MethodDelete, r.path, nil, nil)
}
