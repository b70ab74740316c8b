package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/filex"
	"github.com/dmitrijs2005/worklog/internal/netx"
	"github.com/spf13/cobra"
)

func (a *App) logCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Work log entries",
	}
	cmd.AddCommand(a.logAddCommand(), a.logListCommand(), a.logExportCommand())
	return cmd
}

func (a *App) logAddCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add <comment>",
		Short: "Append a comment to a day (today by default)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.client().AppendLog(cmd.Context(), date, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %d comment(s)\n", rec.Date, len(rec.Comments))
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "D", "", "day as DD-MM-YYYY")
	return cmd
}

func (a *App) logListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show logs grouped by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			months, err := a.client().ListLogs(cmd.Context())
			if err != nil {
				return err
			}
			if len(months) == 0 {
				fmt.Fprintln(a.out, styleMuted.Render("No logs yet"))
				return nil
			}
			for _, m := range months {
				fmt.Fprintln(a.out, styleHeading.Render(m.Month))
				for _, r := range m.Records {
					fmt.Fprintf(a.out, "  %s\n", styleDate.Render(r.Date))
					for _, c := range r.Comments {
						fmt.Fprintf(a.out, "    - %s\n", c)
					}
				}
			}
			return nil
		},
	}
}

func (a *App) logExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render logs to PDF and print a download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exp, err := a.client().ExportLogs(cmd.Context())
			if err != nil {
				return err
			}
			if output != "" {
				err := filex.WriteFileAtomic(output, func(f *os.File) error {
					_, err := netx.DownloadPresignedURL(cmd.Context(), nil, exp.URL, f)
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Saved %s\n", output)
				return nil
			}
			fmt.Fprintln(a.out, exp.URL)
			fmt.Fprintln(a.errOut, styleMuted.Render(fmt.Sprintf("%d bytes, link valid until %s", exp.Size, exp.ExpiresAt.Local().Format("02 Jan 2006 15:04"))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "download the PDF to this path instead of printing the link")
	return cmd
}
