package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/catalogclient/internal/client/client"
	"github.com/dmitrijs2005/catalogclient/internal/client/models"
)

// ErrNoEntity is returned by Create when a 2xx response carries no entity.
// The entity was created; only its representation is missing.
var ErrNoEntity = errors.New("response carries no entity")

// Resource is the CRUD API of one collection of entities of type T with
// partial-update type P.
type Resource[T models.Entity, P any] struct {
	c    client.Client
	path string
}

func NewResource[T models.Entity, P any](c client.Client, path string) *Resource[T, P] {
	return &Resource[T, P]{c: c, path: path}
}

func (r *Resource[T, P]) Path() string { return r.path }

func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.path)
}

func (r *Resource[T, P]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.c.Send(ctx, http.MethodGet, itemPath(r.path, id), nil, &out)
	return out, err
}

func (r *Resource[T, P]) Create(ctx context.Context, v T) (T, error) {
	var out T
	if err := r.c.Send(ctx, http.MethodPost, r.path, v, &out); err != nil {
		return out, err
	}
	if out.EntityID() == 0 {
		return out, fmt.Errorf("create %s: %w", r.path, ErrNoEntity)
	}
	return out, nil
}

// Update sends a PUT with the patch. A response without an entity (204)
// is followed by a GET of the updated entity.
func (r *Resource[T, P]) Update(ctx context.Context, id int64, patch P) (T, error) {
	var out T
	if err := r.c.Send(ctx, http.MethodPut, itemPath(r.path, id), patch, &out); err != nil {
		return out, err
	}
	if out.EntityID() == 0 {
		return r.Get(ctx, id)
	}
	return out, nil
}

func (r *Resource[T, P]) Delete(ctx context.Context, id int64) error {
	return r.c.Send(ctx, http.MethodDelete, itemPath(r.path, id), nil, nil)
}

func (r *Resource[T, P]) list(ctx context.Context, path string) ([]T, error) {
	var out []T
	if err := r.c.Send(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Products adds the per-category listing to the product resource.
type Products struct {
	*Resource[models.Product, models.ProductPatch]
}

func NewProducts(c client.Client, endpoints Endpoints) *Products {
	return &Products{Resource: NewResource[models.Product, models.ProductPatch](c, endpoints.Products)}
}

// ListByCategory lists the products of one category.
func (p *Products) ListByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return p.list(ctx, itemPath(strings.TrimRight(p.path, "/")+"/category", categoryID))
}

type Categories = Resource[models.Category, models.CategoryPatch]

func NewCategories(c client.Client, endpoints Endpoints) *Categories {
	return NewResource[models.Category, models.CategoryPatch](c, endpoints.Categories)
}
