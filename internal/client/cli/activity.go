package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) activityCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := a.client().ListActivities(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(a.out, styleMuted.Render("No activity yet"))
				return nil
			}
			for _, e := range events {
				fmt.Fprintf(a.out, "%s  %-12s %s\n",
					styleMuted.Render(e.CreatedAt.Local().Format("02 Jan 15:04")),
					e.Category.Name,
					e.Activity)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of events (0 for all)")
	return cmd
}
