package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/catalogclient/internal/client/models"
	"github.com/dmitrijs2005/catalogclient/internal/client/router"
	"github.com/dmitrijs2005/catalogclient/internal/common"
)

// Login shows the login form and signs in. A signed-in session is
// redirected by the guard and no prompt is shown.
func (a *App) Login(ctx context.Context) error {
	if err := a.navigate(a.routePath(router.LoginRoute)); err != nil {
		return err
	}
	if a.router.Current().View != router.ViewLogin {
		a.println("Already signed in.")
		return a.render(ctx, a.router.Current())
	}

	identifier, err := GetRequiredText(a.reader, "Email or username", a.out)
	if err != nil {
		return err
	}
	secret, err := a.readSecret(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if !a.session.Login(ctx, identifier, string(secret)) {
		return errors.New(a.session.Error())
	}

	a.printf("Signed in as %s.\n", a.who())
	return a.Go(ctx, a.routePath(router.LandingRoute))
}

// Register shows the registration form, creates the account and signs in.
func (a *App) Register(ctx context.Context) error {
	if err := a.navigate("/register"); err != nil {
		return err
	}
	if a.router.Current().View != router.ViewRegister {
		a.println("Already signed in.")
		return a.render(ctx, a.router.Current())
	}

	var p models.Profile
	var err error
	if p.FirstName, err = GetRequiredText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if p.LastName, err = GetRequiredText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if p.Email, err = GetRequiredText(a.reader, "Email", a.out); err != nil {
		return err
	}
	secret, err := a.readSecret(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if !a.session.Register(ctx, p, string(secret)) {
		return errors.New(a.session.Error())
	}

	a.printf("Account created. Signed in as %s.\n", a.who())
	return a.Go(ctx, a.routePath(router.LandingRoute))
}

// Logout signs out and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println("Signed out.")
	return a.Go(ctx, a.routePath(router.LoginRoute))
}

// WhoAmI prints the session state and user.
func (a *App) WhoAmI(_ context.Context) error {
	a.printf("Session: %s\n", a.session.State())
	if u := a.session.User(); u != nil {
		a.printf("User:    %s <%s> (id %s)\n", u.DisplayName(), u.Email, u.ID)
	}
	return nil
}

// Validate confirms the session with the server.
func (a *App) Validate(ctx context.Context) error {
	if !a.session.Validate(ctx) {
		if msg := a.session.Error(); msg != "" {
			return errors.New(msg)
		}
		return errors.New("not signed in")
	}
	a.println("Session is valid.")
	return nil
}
