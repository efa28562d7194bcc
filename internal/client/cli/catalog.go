package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalogclient/internal/client/models"
)

func storeError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func (a *App) ListProducts(ctx context.Context) error {
	items := a.products.FetchAll(ctx)
	if err := storeError(a.products.Error()); err != nil {
		return err
	}
	a.printProducts(items)
	return nil
}

func (a *App) ListCategoryProducts(ctx context.Context, categoryID int64) error {
	items := a.products.FetchByCategory(ctx, categoryID)
	if err := storeError(a.products.Error()); err != nil {
		return err
	}
	a.printProducts(items)
	return nil
}

func (a *App) ShowProduct(ctx context.Context, id int64) error {
	p, ok := a.products.FetchOne(ctx, id)
	if !ok {
		return storeError(a.products.Error())
	}
	a.printf("Product #%d\n  Name:        %s\n  Description: %s\n  Price:       %.2f\n  Category:    %d\n",
		p.ID, p.Name, p.Description, p.Price, p.CategoryID)
	return nil
}

func (a *App) AddProduct(ctx context.Context) error {
	var p models.Product
	var err error

	if p.Name, err = GetRequiredText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if p.Description, err = GetSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	price, err := GetFloat(a.reader, "Price", a.out, false)
	if err != nil {
		return err
	}
	p.Price = *price
	categoryID, err := GetInt(a.reader, "Category id", a.out, false)
	if err != nil {
		return err
	}
	p.CategoryID = *categoryID

	created, ok := a.products.Create(ctx, p)
	if !ok {
		return storeError(a.products.Error())
	}
	a.printCreated("product", created.ID)
	return nil
}

func (a *App) EditProduct(ctx context.Context, id int64) error {
	var patch models.ProductPatch
	var err error

	if patch.Name, err = GetOptionalText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if patch.Description, err = GetOptionalText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if patch.Price, err = GetFloat(a.reader, "Price (empty to keep)", a.out, true); err != nil {
		return err
	}
	if patch.CategoryID, err = GetInt(a.reader, "Category id (empty to keep)", a.out, true); err != nil {
		return err
	}
	if patch == (models.ProductPatch{}) {
		a.println("Nothing to change.")
		return nil
	}

	updated, ok := a.products.Update(ctx, id, patch)
	if !ok {
		return storeError(a.products.Error())
	}
	a.printf("Updated %s\n", updated)
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, id int64) error {
	if !a.products.Delete(ctx, id) {
		return storeError(a.products.Error())
	}
	a.printf("Deleted product #%d.\n", id)
	return nil
}

func (a *App) ListCategories(ctx context.Context) error {
	items := a.categories.FetchAll(ctx)
	if err := storeError(a.categories.Error()); err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No categories.")
		return nil
	}
	for _, c := range items {
		a.println(" ", c)
	}
	return nil
}

func (a *App) ShowCategory(ctx context.Context, id int64) error {
	c, ok := a.categories.FetchOne(ctx, id)
	if !ok {
		return storeError(a.categories.Error())
	}
	a.printf("Category #%d\n  Name:        %s\n  Description: %s\n", c.ID, c.Name, c.Description)
	return nil
}

func (a *App) AddCategory(ctx context.Context) error {
	var c models.Category
	var err error

	if c.Name, err = GetRequiredText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if c.Description, err = GetSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}

	created, ok := a.categories.Create(ctx, c)
	if !ok {
		return storeError(a.categories.Error())
	}
	a.printCreated("category", created.ID)
	return nil
}

func (a *App) EditCategory(ctx context.Context, id int64) error {
	var patch models.CategoryPatch
	var err error

	if patch.Name, err = GetOptionalText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if patch.Description, err = GetOptionalText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if patch == (models.CategoryPatch{}) {
		a.println("Nothing to change.")
		return nil
	}

	updated, ok := a.categories.Update(ctx, id, patch)
	if !ok {
		return storeError(a.categories.Error())
	}
	a.printf("Updated %s\n", updated)
	return nil
}

func (a *App) DeleteCategory(ctx context.Context, id int64) error {
	if !a.categories.Delete(ctx, id) {
		return storeError(a.categories.Error())
	}
	a.printf("Deleted category #%d.\n", id)
	return nil
}

func (a *App) printProducts(items []models.Product) {
	if len(items) == 0 {
		a.println("No products.")
		return
	}
	for _, p := range items {
		a.println(" ", p)
	}
	a.println(fmt.Sprintf("(%d products)", len(items)))
}

func (a *App) printCreated(kind string, id int64) {
	if id == 0 {
		a.printf("Created %s.\n", kind)
		return
	}
	a.printf("Created %s #%d.\n", kind, id)
}
