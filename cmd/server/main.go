package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/Pranali0315/NomadHelp/internal/adapter/http"
	"github.com/Pranali0315/NomadHelp/internal/adapter/mcp"
	"github.com/Pranali0315/NomadHelp/internal/adapter/mealdb"
	"github.com/Pranali0315/NomadHelp/internal/adapter/nominatim"
	"github.com/Pranali0315/NomadHelp/internal/adapter/openweather"
	"github.com/Pranali0315/NomadHelp/internal/adapter/ticketmaster"
	"github.com/Pranali0315/NomadHelp/internal/adapter/wikipedia"
	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/guide"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

func main() {
	// Local development settings; absent in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	geocoder := nominatim.NewClient(cfg.GeocodeTimeout, logger, metrics)
	summary := wikipedia.NewClient(cfg.SummaryTimeout, logger, metrics)
	weather := openweather.NewClient(cfg.OpenWeatherKey, cfg.WeatherTimeout, logger, metrics)
	events := ticketmaster.NewClient(cfg.TicketmasterKey, cfg.EventsTimeout, logger, metrics)
	cuisine := mealdb.NewClient(cfg.CuisineTimeout, logger, metrics)

	if cfg.OpenWeatherKey == "" {
		logger.Info("weather provider disabled: OWM_KEY not set")
	}
	if cfg.TicketmasterKey == "" {
		logger.Info("events provider disabled: TICKETMASTER_KEY not set")
	}

	aggregator := guide.New(geocoder, summary, weather, events, cuisine, logger, metrics)
	gate := mcp.NewHandler(cfg.AuthToken, cfg.OwnerNumber, aggregator, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, gate, aggregator, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
