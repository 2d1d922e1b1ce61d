package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"

	"github.com/interviewer/backend/internal/api"

	_ "github.com/interviewer/backend/docs" // generated swagger docs
)

func (r *runner) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return r.serve(ctx)
		},
	}
}

// NewServer builds the HTTP server with every route and the middleware
// chain Logging → CORS → mux.
func (a *App) NewServer() *http.Server {
	handler := api.NewHandler(a.Store, a.Interviews, a.Migration, a.Metrics, a.Logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)
	mux.Handle("GET /metrics", a.Metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return &http.Server{
		Addr:              a.Config.ServerAddress,
		Handler:           api.Logging(a.Logger, a.Metrics)(api.CORS(mux)),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (r *runner) serve(ctx context.Context) error {
	app := r.app
	server := app.NewServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info("starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
		defer cancel()

		app.Logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		app.Logger.Error("server stopped", "error", err)
		return err
	}
	return nil
}
