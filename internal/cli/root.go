// Package cli holds the kivusafe command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kivusafe/portal/internal/pkg/config"
	"github.com/kivusafe/portal/pkg/logger"
)

// env is filled in before any sub-command runs.
type env struct {
	cfg *config.Config
	log zerolog.Logger
}

func RootCmd() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "kivusafe",
		Short:         "KivuSafe incident reporting portal",
		Long:          "Serve the KivuSafe portal or talk to the KivuSafe API from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				cfg.LogLevel = lvl
			}

			e.cfg = cfg
			e.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  !cfg.IsProduction(),
				Output:  cmd.ErrOrStderr(),
				Service: "kivusafe",
			})
			return nil
		},
	}

	cmd.PersistentFlags().String("log-level", "", "override LOG_LEVEL (trace, debug, info, warn, error)")

	cmd.AddCommand(ServeCmd(e))
	cmd.AddCommand(LoginCmd(e))
	cmd.AddCommand(LogoutCmd(e))
	cmd.AddCommand(WhoamiCmd(e))
	cmd.AddCommand(RegisterCmd(e))
	cmd.AddCommand(ReportCmd(e))
	cmd.AddCommand(ReportsCmd(e))

	return cmd
}
