package cli

import (
	"context"

	"github.com/dmitrijs2005/catalogclient/internal/client/router"
)

func (a *App) commands() []command {
	return []command{
		{name: "go", usage: "<path>", nargs: 1, help: "open a view, e.g. go /dashboard",
			run: func(ctx context.Context, args []string) error { return a.Go(ctx, args[0]) }},
		{name: "register", help: "create an account", run: a.noArgs(a.Register)},
		{name: "login", help: "sign in", run: a.noArgs(a.Login)},
		{name: "logout", auth: true, help: "sign out", run: a.noArgs(a.Logout)},
		{name: "whoami", help: "show the session", run: a.noArgs(a.WhoAmI)},
		{name: "validate", auth: true, help: "confirm the session with the server", run: a.noArgs(a.Validate)},

		{name: "products", aliases: []string{"p"}, auth: true, help: "list products",
			run: a.guarded(a.noArgs(a.ListProducts))},
		{name: "product", usage: "<id>", nargs: 1, auth: true, help: "show a product",
			run: a.guarded(a.withID(a.ShowProduct))},
		{name: "category-products", usage: "<id>", nargs: 1, auth: true, help: "list products of a category",
			run: a.guarded(a.withID(a.ListCategoryProducts))},
		{name: "addproduct", auth: true, help: "create a product",
			run: a.guarded(a.noArgs(a.AddProduct))},
		{name: "editproduct", usage: "<id>", nargs: 1, auth: true, help: "update a product",
			run: a.guarded(a.withID(a.EditProduct))},
		{name: "delproduct", usage: "<id>", nargs: 1, auth: true, help: "delete a product",
			run: a.guarded(a.withID(a.DeleteProduct))},

		{name: "categories", aliases: []string{"c"}, auth: true, help: "list categories",
			run: a.guarded(a.noArgs(a.ListCategories))},
		{name: "category", usage: "<id>", nargs: 1, auth: true, help: "show a category",
			run: a.guarded(a.withID(a.ShowCategory))},
		{name: "addcategory", auth: true, help: "create a category",
			run: a.guarded(a.noArgs(a.AddCategory))},
		{name: "editcategory", usage: "<id>", nargs: 1, auth: true, help: "update a category",
			run: a.guarded(a.withID(a.EditCategory))},
		{name: "delcategory", usage: "<id>", nargs: 1, auth: true, help: "delete a category",
			run: a.guarded(a.withID(a.DeleteCategory))},
	}
}

func (a *App) noArgs(fn func(ctx context.Context) error) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error { return fn(ctx) }
}

func (a *App) withID(fn func(ctx context.Context, id int64) error) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return fn(ctx, id)
	}
}

// guarded runs catalog commands through the dashboard route so an anonymous
// session is sent to the login view instead.
func (a *App) guarded(fn func(context.Context, []string) error) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		if a.isLoggedIn() {
			err := fn(ctx, args)
			if !a.isLoggedIn() {
				a.println("Your session has expired, please log in again.")
				_ = a.navigate(a.routePath(router.LoginRoute))
			}
			return err
		}
		if err := a.navigate("/dashboard"); err != nil {
			return err
		}
		a.println("Please log in first.")
		return nil
	}
}
