package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catalogclient/internal/client/router"
	"github.com/dmitrijs2005/catalogclient/internal/common"
)

// navigate moves the router to path, honouring guard redirects.
func (a *App) navigate(path string) error {
	rt, err := a.router.Navigate(path)
	if err != nil {
		return err
	}
	a.log.Debug(context.Background(), "navigated", "target", path, "view", rt.View)
	return nil
}

// Go navigates to path and renders the resulting view.
func (a *App) Go(ctx context.Context, path string) error {
	if err := a.navigate(path); err != nil {
		return err
	}
	return a.render(ctx, a.router.Current())
}

func (a *App) render(ctx context.Context, rt router.Route) error {
	switch rt.View {
	case router.ViewHome:
		a.println("== Home ==")
		if a.isLoggedIn() {
			a.println("Open your dashboard with 'go /dashboard'.")
		} else {
			a.println("Sign in with 'login' or create an account with 'register'.")
		}
	case router.ViewLogin:
		a.println("== Login ==")
		a.println("Type 'login' to sign in.")
	case router.ViewRegister:
		a.println("== Register ==")
		a.println("Type 'register' to create an account.")
	case router.ViewDashboard:
		return a.renderDashboard(ctx)
	default:
		a.printf("== %s ==\n", rt.View)
	}
	return nil
}

func (a *App) renderDashboard(ctx context.Context) error {
	a.println("== Dashboard ==")
	if u := a.session.User(); u != nil {
		a.printf("Signed in as %s\n", u.DisplayName())
	}

	cats := a.categories.FetchAll(ctx)
	if msg := a.categories.Error(); msg != "" {
		return fmt.Errorf("categories: %s", msg)
	}
	a.printf("Categories (%d):\n", len(cats))
	for _, c := range cats {
		a.println(" ", c)
	}

	products := a.products.FetchAll(ctx)
	if msg := a.products.Error(); msg != "" {
		return fmt.Errorf("products: %s", msg)
	}
	a.printf("Products (%d):\n", len(products))
	for _, p := range products {
		a.println(" ", p)
	}
	return nil
}

func (a *App) routePath(name string) string {
	if rt, ok := a.router.ByName(name); ok {
		return rt.Path
	}
	return "/"
}

func parseID(s string) (int64, error) {
	id, err := common.ParseID(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return id, nil
}

func (a *App) who() string {
	if u := a.session.User(); u != nil {
		if name := u.DisplayName(); name != "" {
			return name
		}
	}
	if a.session.IsAuthenticated() {
		return "user"
	}
	return "guest"
}
