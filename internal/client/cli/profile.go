package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bujo/internal/client/models"
	"github.com/dmitrijs2005/bujo/internal/client/resources"
	"github.com/dmitrijs2005/bujo/internal/client/router"
)

func (a *App) Profile(ctx context.Context) error {
	return a.screen(ctx, router.Profile, func(ctx context.Context) error {
		u := a.authService.CurrentUser(ctx)
		if u == nil {
			return nil
		}
		fmt.Fprintf(a.out, "%s (@%s)\n", u.DisplayName(), u.Username)
		if u.Email != "" {
			fmt.Fprintln(a.out, "Email:", u.Email)
		}
		if u.Bio != "" {
			fmt.Fprintln(a.out, "Bio:", u.Bio)
		}
		if u.DateOfBirth != "" {
			fmt.Fprintln(a.out, "Born:", u.DateOfBirth)
		}

		abouts, err := a.res.Profile.About.List(ctx)
		if err != nil {
			return err
		}
		for _, ab := range abouts {
			printAbout(a, ab)
		}
		return nil
	})
}

// printAbout prints the non-empty text fields of an about section.
func printAbout(a *App, ab models.About) {
	rows := []struct{ label, value string }{
		{"Nickname", ab.Nickname},
		{"Location", ab.Location},
		{"Occupation", ab.Occupation},
		{"Education", ab.Education},
		{"Life goals", ab.LifeGoals},
		{"Hobbies", ab.Hobbies},
		{"Core values", ab.CoreValues},
		{"Story", ab.PersonalStory},
		{"Notes", ab.Notes},
	}
	for _, r := range rows {
		if strings.TrimSpace(r.value) != "" {
			fmt.Fprintf(a.out, "%s: %s\n", r.label, r.value)
		}
	}
}

func (a *App) EditProfile(ctx context.Context) error {
	return a.screen(ctx, router.Profile, func(ctx context.Context) error {
		fields, err := GetFields(a.reader, "Profile fields to change, e.g. name=Jane", a.out)
		if err != nil {
			return err
		}
		u, err := a.authService.EditProfile(ctx, fields, a.authService.CurrentUserID(ctx))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Profile updated for %s.\n", u.DisplayName())
		return nil
	})
}

func (a *App) Affirmations(ctx context.Context) error {
	return a.textItems(ctx, "Affirmations", a.res.Profile.Affirmations)
}

func (a *App) Gratitudes(ctx context.Context) error {
	return a.textItems(ctx, "Gratitude", a.res.Profile.Gratitudes)
}

func (a *App) Passions(ctx context.Context) error {
	return a.textItems(ctx, "Passions", a.res.Profile.Passions)
}

func (a *App) textItems(ctx context.Context, title string, r *resources.TextItems) error {
	return a.screen(ctx, router.Profile, func(ctx context.Context) error {
		items, err := r.List(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s (%d)\n", title, len(items))
		for _, it := range items {
			mark := " "
			if !it.IsActive {
				mark = "-"
			}
			fmt.Fprintf(a.out, " %s %s\n", mark, it.Text)
		}
		return nil
	})
}

func (a *App) Favorites(ctx context.Context) error {
	return a.screen(ctx, router.Profile, func(ctx context.Context) error {
		items, err := a.res.Profile.Favorites.List(ctx)
		if err != nil {
			return err
		}
		byCategory := make(map[string][]models.Favorite)
		var order []string
		for _, f := range items {
			if _, ok := byCategory[f.Category]; !ok {
				order = append(order, f.Category)
			}
			byCategory[f.Category] = append(byCategory[f.Category], f)
		}
		if len(order) == 0 {
			fmt.Fprintln(a.out, "No favorites yet.")
			return nil
		}
		for _, c := range order {
			fmt.Fprintf(a.out, "%s:\n", c)
			for _, f := range byCategory[c] {
				fmt.Fprintf(a.out, "  - %s\n", f.Title)
			}
		}
		return nil
	})
}
