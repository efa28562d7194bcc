package models

import "fmt"

// Product is a catalog item belonging to a category.
type Product struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"categoryId"`
}

func (p Product) EntityID() int64 { return p.ID }

func (p Product) String() string {
	return fmt.Sprintf("#%d %s (%.2f, category %d) %s", p.ID, p.Name, p.Price, p.CategoryID, p.Description)
}

// ProductPatch carries the fields of a partial product update; nil fields are
// not sent.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *int64   `json:"categoryId,omitempty"`
}

// Category groups products.
type Category struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c Category) EntityID() int64 { return c.ID }

func (c Category) String() string {
	return fmt.Sprintf("#%d %s %s", c.ID, c.Name, c.Description)
}

// CategoryPatch carries the fields of a partial category update.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
