package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bujo/internal/client/router"
)

// screen renders path through the route guard. A denied screen prints the
// login hint instead of calling render.
func (a *App) screen(ctx context.Context, path string, render func(context.Context) error) error {
	d := a.guard.Resolve(ctx, path)
	switch d.Action {
	case router.Render:
		return render(ctx)
	case router.Redirect:
		if d.Target == router.Login {
			fmt.Fprintln(a.out, "Please log in first (type 'login').")
			return nil
		}
		return a.navigate(ctx, d.Target)
	default:
		fmt.Fprintln(a.out, "Unknown screen:", path)
		return nil
	}
}

// navigate shows the screen registered for path.
func (a *App) navigate(ctx context.Context, path string) error {
	switch path {
	case router.Root:
		return a.screen(ctx, router.Root, nil)
	case router.Home:
		return a.Home(ctx)
	case router.Login, router.Register:
		fmt.Fprintln(a.out, "Type 'login' to sign in or 'register' to create an account.")
		return nil
	case router.Profile:
		return a.Profile(ctx)
	case router.Diary:
		return a.Diary(ctx)
	case router.Bullet:
		return a.Bullets(ctx)
	case router.Motivation:
		return a.Boards(ctx)
	default:
		fmt.Fprintln(a.out, "Unknown screen:", path)
		return nil
	}
}
