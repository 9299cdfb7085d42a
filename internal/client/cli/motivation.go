package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/bujo/internal/client/router"
)

func (a *App) Boards(ctx context.Context) error {
	return a.screen(ctx, router.Motivation, func(ctx context.Context) error {
		boards, err := a.res.Motivation.List(ctx)
		if err != nil {
			return err
		}
		if len(boards) == 0 {
			fmt.Fprintln(a.out, "No motivation boards yet.")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "BOARD\tIMAGES\tACTIVE\tID")
		for _, b := range boards {
			fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", b.Title, b.ImageCount, b.IsActive, b.PublicID)
		}
		return tw.Flush()
	})
}
