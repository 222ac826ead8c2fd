package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"event-naming-service/internal/adapters/eventstore"
	"event-naming-service/internal/api"
)

var serveSeedPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the describe and event naming HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		res, gaz, err := resolution(logger)
		if err != nil {
			return err
		}

		s, err := openStore(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		// Schema and demo events on startup for local runs.
		if serveSeedPath != "" {
			if err := s.InitSchema(ctx); err != nil {
				return eris.Wrap(err, "serve")
			}
			if _, err := eventstore.SeedFromJSON(ctx, s.Seeder, serveSeedPath); err != nil {
				return eris.Wrap(err, "serve")
			}
		}

		var limiter *rate.Limiter
		if cfg.Server.RateLimit > 0 {
			limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), max(cfg.Server.RateBurst, 1))
		}
		router := api.NewRouter(newNamer(s.EventStore, gaz, res, logger), logger, limiter)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("server listening", zap.Int("port", cfg.Server.Port), zap.Int("locations", len(gaz)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP listen port")
	serveCmd.Flags().Float64("rate-limit", 0, "API requests per second, 0 for unlimited")
	serveCmd.Flags().Int("rate-burst", 20, "API requests allowed in a burst above the rate limit")
	serveCmd.Flags().StringVar(&serveSeedPath, "seed", "", "JSON file of events to load at startup")
	rootCmd.AddCommand(serveCmd)
}
