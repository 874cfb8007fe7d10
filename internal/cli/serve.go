package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kivusafe/portal/internal/api"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portal HTTP server",
		Long:  "Run the portal HTTP server. The persisted session is restored in the background; views answer with a loading placeholder until it is done.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, e)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			go a.restore(ctx)

			srv := api.NewRouter(api.Deps{
				Session:      a.session,
				Reports:      a.reports,
				Registration: a.registration,
				Health:       a.healthDeps(),
				LoginPath:    e.cfg.LoginPath,
				Log:          e.log,
			})

			addr := e.cfg.Addr()
			if !e.cfg.IsLoopback() {
				e.log.Warn().Str("addr", addr).Msg("portal reachable from other hosts; every client shares the logged-in session")
			}
			errCh := make(chan error, 1)
			go func() {
				e.log.Info().Str("addr", addr).Str("api", e.cfg.API.BaseURL).Msg("portal listening")
				errCh <- srv.Start(addr)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			e.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	return cmd
}
