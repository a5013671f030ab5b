package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/planora/planora/internal/adapters/agent"
	"github.com/planora/planora/internal/adapters/exchange"
	httpAdapter "github.com/planora/planora/internal/adapters/http"
	"github.com/planora/planora/internal/adapters/osrm"
	"github.com/planora/planora/internal/adapters/places"
	redisAdapter "github.com/planora/planora/internal/adapters/redis"
	"github.com/planora/planora/internal/adapters/trips"
	"github.com/planora/planora/internal/config"
	"github.com/planora/planora/internal/engine"
	"github.com/planora/planora/internal/logging"
	"github.com/planora/planora/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the itinerary engine HTTP server",
	Long:  `Starts the command engine over a fresh plan and exposes the JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		listen, _ := cmd.Flags().GetString("listen")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if listen != "" {
			cfg.Listen = listen
		}

		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
		logger := logging.NewJSON(level)
		reg := prometheus.NewRegistry()
		meters := metrics.New(reg)

		opts := []engine.Option{
			engine.WithLogger(logger),
			engine.WithMetrics(meters),
			engine.WithCurrency(cfg.Currency),
			engine.WithLanguage(cfg.Language),
		}
		if cfg.Services.Optimizer != "" {
			opts = append(opts, engine.WithOptimizer(osrm.New(cfg.Services.Optimizer)))
		}
		if cfg.Services.Exchange != "" {
			opts = append(opts, engine.WithConverter(exchange.New(cfg.Services.Exchange)))
		}
		if cfg.Services.Places != "" {
			opts = append(opts, engine.WithPlaces(places.New(cfg.Services.Places)))
		}
		if cfg.Services.Agent != "" {
			opts = append(opts, engine.WithTranslator(agent.New(cfg.Services.Agent)))
		}
		switch {
		case cfg.Redis.Address != "":
			store := redisAdapter.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
			defer store.Close()
			opts = append(opts, engine.WithTripService(store))
		case cfg.Services.Trips != "":
			opts = append(opts, engine.WithTripService(trips.New(cfg.Services.Trips)))
		}

		eng := engine.New(opts...)
		handler := httpAdapter.NewHandler(eng, logger, reg)

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting planora server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("planora server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Listen address, overrides the config file")
}
