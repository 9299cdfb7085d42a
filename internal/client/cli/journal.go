package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/bujo/internal/client/models"
	"github.com/dmitrijs2005/bujo/internal/client/router"
)

// today is a test seam for the date stamped on new bullets.
var today = func() string { return time.Now().Format(time.DateOnly) }

func (a *App) Home(ctx context.Context) error {
	return a.screen(ctx, router.Home, func(ctx context.Context) error {
		u := a.authService.CurrentUser(ctx)
		if u == nil {
			fmt.Fprintln(a.out, "Bullet journal: a diary, daily ratings and motivation boards.")
			fmt.Fprintln(a.out, "Type 'login' to get started.")
			return nil
		}
		fmt.Fprintf(a.out, "Hello, %s. Today is %s.\n", u.DisplayName(), today())
		fmt.Fprintln(a.out, "Try 'diary', 'bullets' or 'boards'.")
		return nil
	})
}

func (a *App) Diary(ctx context.Context) error {
	return a.screen(ctx, router.Diary, func(ctx context.Context) error {
		entries, err := a.res.Diary.ListForCurrentUser(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(a.out, "No diary entries yet (type 'adddiary').")
			return nil
		}
		for _, e := range entries {
			date := e.Date
			if date == "" {
				date = e.DateCreated
			}
			fmt.Fprintf(a.out, "[%s] %s\n", date, e.Title)
			for _, line := range strings.Split(e.Content, "\n") {
				fmt.Fprintln(a.out, "    "+line)
			}
		}
		return nil
	})
}

func (a *App) AddDiary(ctx context.Context) error {
	return a.screen(ctx, router.Diary, func(ctx context.Context) error {
		title, err := getSimpleText(a.reader, "Entry title", a.out)
		if err != nil {
			return err
		}
		content, err := GetMultiline(a.reader, "Entry text", a.out)
		if err != nil {
			return err
		}
		e, err := a.res.Diary.Create(ctx, models.DiaryEntryCreate{Title: title, Content: content})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Saved entry %q.\n", e.Title)
		return nil
	})
}

func (a *App) Bullets(ctx context.Context) error {
	return a.screen(ctx, router.Bullet, func(ctx context.Context) error {
		items, err := a.res.Bullets.List(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No ratings yet (type 'addbullet').")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tDAY\tMOOD\tANXIETY\tEATING")
		for _, b := range items {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", b.Date, b.DayRating, b.Mood, b.Anxiety, b.EatingHabits)
		}
		return tw.Flush()
	})
}

func (a *App) AddBullet(ctx context.Context) error {
	return a.screen(ctx, router.Bullet, func(ctx context.Context) error {
		in := models.BulletCreate{Date: today()}
		prompts := []struct {
			label string
			dst   *int
		}{
			{"How was your day", &in.DayRating},
			{"Mood", &in.Mood},
			{"Anxiety", &in.Anxiety},
			{"Eating habits", &in.EatingHabits},
		}
		for _, p := range prompts {
			n, err := GetRating(a.reader, p.label, a.out, models.MinRating, models.MaxRating)
			if err != nil {
				return err
			}
			*p.dst = n
		}

		if _, err := a.res.Bullets.Create(ctx, in); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Saved ratings for %s.\n", in.Date)
		return nil
	})
}

func (a *App) Averages(ctx context.Context) error {
	return a.screen(ctx, router.Bullet, func(ctx context.Context) error {
		avg, err := a.res.Bullets.Averages(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Day rating\t%.1f\n", avg.DayRating)
		fmt.Fprintf(tw, "Mood\t%.1f\n", avg.Mood)
		fmt.Fprintf(tw, "Anxiety\t%.1f\n", avg.Anxiety)
		fmt.Fprintf(tw, "Eating habits\t%.1f\n", avg.EatingHabits)
		return tw.Flush()
	})
}
