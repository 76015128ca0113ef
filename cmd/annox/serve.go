package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MalithGihan/annotation-extractor/internal/server"
	"github.com/MalithGihan/annotation-extractor/internal/store"
)

var noRelay bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API and the WebSocket relay",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.New(cfg.Store.Root)
		if err != nil {
			return err
		}
		ex := newExtractor()
		deps := server.Deps{
			Screens:   newClient(),
			Extractor: ex,
			Store:     st,
			Logger:    logger,
		}

		g, ctx := errgroup.WithContext(ctx)

		if cfg.Relay.Enabled && !noRelay {
			rc := newRelay(ex)
			deps.Relay = rc
			g.Go(func() error { return rc.Run(ctx) })
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           server.NewRouter(deps),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("annox listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&noRelay, "no-relay", false, "do not start the WebSocket relay")
}
