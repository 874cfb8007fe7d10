package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ReportsCmd groups the dashboard views. Both require a session, like the
// guarded dashboard route.
func ReportsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Dashboard views over submitted reports",
	}
	cmd.AddCommand(reportsSummaryCmd(e))
	cmd.AddCommand(reportsExportCmd(e))
	return cmd
}

func reportsSummaryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print report counts per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), e, func(ctx context.Context, a *app) error {
				view, err := a.reports.Dashboard(ctx)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "CATEGORY\tCOUNT\tCOLOR")
				total := 0
				for _, c := range view.Categories {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Category, c.Count, c.Color)
					total += c.Count
				}
				fmt.Fprintf(tw, "TOTAL\t%d\t\n", total)
				return tw.Flush()
			})
		},
	}
}

func reportsExportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard as csv, xlsx or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			return withSession(cmd.Context(), e, func(ctx context.Context, a *app) error {
				res, err := a.reports.Export(ctx, format)
				if err != nil {
					return err
				}
				if out == "" {
					out = res.FileName
				}
				if err := os.WriteFile(out, res.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(res.Data))
				return nil
			})
		},
	}

	cmd.Flags().String("format", "xlsx", "csv, xlsx or pdf")
	cmd.Flags().String("out", "", "output file (default reports.<ext> or chart.pdf)")

	return cmd
}

// withSession restores the session and refuses to run fn when logged out.
func withSession(ctx context.Context, e *env, fn func(ctx context.Context, a *app) error) error {
	return withApp(ctx, e, func(ctx context.Context, a *app) error {
		a.restore(ctx)
		if !a.session.Authenticated() {
			return errNotLoggedIn
		}
		return fn(ctx, a)
	})
}
