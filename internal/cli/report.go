package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

func ReportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Incident reports",
	}
	cmd.AddCommand(reportSubmitCmd(e))
	return cmd
}

func reportSubmitCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an incident report",
		Long:  "Submit an incident report. The session token is attached when logged in; --anonymous drops the name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := ports.SubmitReportInput{}
			in.Anonymous, _ = flags.GetBool("anonymous")
			in.Name, _ = flags.GetString("name")
			in.Email, _ = flags.GetString("email")
			in.IncidentDate, _ = flags.GetString("date")
			in.Description, _ = flags.GetString("description")
			in.Category, _ = flags.GetString("category")

			if in.IncidentDate == "" {
				in.IncidentDate = time.Now().Format(time.DateOnly)
			}
			if _, err := time.Parse(time.DateOnly, in.IncidentDate); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			if in.Description == "" || in.Category == "" {
				return errors.New("--description and --category are required")
			}

			latSet, lngSet := flags.Changed("lat"), flags.Changed("lng")
			if latSet != lngSet {
				return errors.New("--lat and --lng must be given together")
			}
			if latSet {
				lat, _ := flags.GetFloat64("lat")
				lng, _ := flags.GetFloat64("lng")
				in.Location = &domain.Coordinates{Lat: lat, Lng: lng}
			}

			return withApp(cmd.Context(), e, func(ctx context.Context, a *app) error {
				a.restore(ctx)
				ref, err := a.reports.Submit(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report successfully submitted (reference %s)\n", ref)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.Bool("anonymous", false, "submit without a name")
	flags.String("name", "", "reporter name")
	flags.String("email", "", "contact email")
	flags.String("date", "", "incident date (YYYY-MM-DD, default today)")
	flags.String("description", "", "what happened")
	flags.String("category", "", "incident category")
	flags.Float64("lat", 0, "incident latitude")
	flags.Float64("lng", 0, "incident longitude")

	return cmd
}
