package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bujo/internal/client/client"
	"github.com/dmitrijs2005/bujo/internal/client/models"
	"github.com/dmitrijs2005/bujo/internal/client/router"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errBadCredentials = errors.New("invalid username or password")

// Register prompts for username, email and password and creates an account.
// The new account is not logged in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	data := models.RegisterData{Username: username, Email: email, Password: string(password)}
	if _, err := a.authService.Register(ctx, data); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// Login accepts a username or an email address and lands on the home screen.
func (a *App) Login(ctx context.Context) error {
	ident, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	data := models.LoginData{Password: string(password)}
	if strings.Contains(ident, "@") {
		data.Email = ident
	} else {
		data.Username = ident
	}

	u, err := a.authService.Login(ctx, data)
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		if errors.Is(err, client.ErrUnauthorized) {
			return errBadCredentials
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
	return a.navigate(ctx, router.Home)
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.ForgotPassword(ctx, models.ForgotPasswordData{Email: email}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "If the address is registered, a reset link is on its way.")
	return nil
}

// Logout always ends the local session, even when the server is unreachable.
func (a *App) Logout(ctx context.Context) error {
	return a.authService.Logout(ctx)
}
