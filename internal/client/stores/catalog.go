package stores

import (
	"context"

	"github.com/dmitrijs2005/catalogclient/internal/client/models"
)

// ProductAPI adds the per-category listing to the product CRUD surface.
type ProductAPI interface {
	ResourceAPI[models.Product, models.ProductPatch]
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
}

type Products struct {
	*Resource[models.Product, models.ProductPatch]
	byCategory func(ctx context.Context, categoryID int64) ([]models.Product, error)
}

func NewProducts(api ProductAPI, opts ...Option) *Products {
	return &Products{
		Resource:   NewResource[models.Product, models.ProductPatch]("products", api, opts...),
		byCategory: api.ListByCategory,
	}
}

// FetchByCategory replaces items with the products of one category.
func (p *Products) FetchByCategory(ctx context.Context, categoryID int64) []models.Product {
	return p.replaceItems(ctx, "fetch by category", func(ctx context.Context) ([]models.Product, error) {
		return p.byCategory(ctx, categoryID)
	})
}

type Categories = Resource[models.Category, models.CategoryPatch]

func NewCategories(api ResourceAPI[models.Category, models.CategoryPatch], opts ...Option) *Categories {
	return NewResource[models.Category, models.CategoryPatch]("categories", api, opts...)
}
