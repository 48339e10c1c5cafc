// Package guide orchestrates the travel guide pipeline: one geocoding call,
// a concurrent fan-out to the four data providers, and the rendering of the
// merged report.
package guide

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

// Aggregator builds location reports from the geocoder and the four
// independent data providers.
type Aggregator struct {
	geocoder domain.Geocoder
	summary  domain.SummaryProvider
	weather  domain.WeatherProvider
	events   domain.EventsProvider
	cuisine  domain.CuisineProvider
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates an Aggregator with the given providers and observability.
func New(
	geocoder domain.Geocoder,
	summary domain.SummaryProvider,
	weather domain.WeatherProvider,
	events domain.EventsProvider,
	cuisine domain.CuisineProvider,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Aggregator {
	return &Aggregator{
		geocoder: geocoder,
		summary:  summary,
		weather:  weather,
		events:   events,
		cuisine:  cuisine,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness reports whether the aggregator can serve traffic. The
// pipeline is stateless, so it is ready as soon as it is constructed.
func (a *Aggregator) CheckReadiness(_ context.Context) error {
	return nil
}

// Build resolves the query and assembles a report from whatever the four
// providers return. Validation and geocoding failures are fatal and return a
// *domain.PipelineError; provider failures never are — they fold into the
// report as Unavailable sections.
//
// All four providers are queried at both detail levels; detail gates
// rendering only, so the structured report always has the same shape.
func (a *Aggregator) Build(ctx context.Context, query string, detail domain.DetailLevel) (domain.Report, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Report{}, &domain.PipelineError{
			Stage:   domain.StageValidate,
			Message: "location must not be empty",
		}
	}

	id, err := a.geocoder.Resolve(ctx, query)
	if err != nil {
		// Fail fast: querying providers for an unresolved location is
		// meaningless.
		a.logger.Info("geocode failed", "query", query, "error", err)
		return domain.Report{}, &domain.PipelineError{
			Stage:   domain.StageGeocode,
			Query:   query,
			Message: fmt.Sprintf("could not resolve location %q", query),
		}
	}

	report := domain.Report{Identity: id, Detail: detail}

	// Fork the four provider fetches, join all of them. Each adapter owns
	// its own timeout and folds every failure into its Result, so the
	// branches never return errors and each writes a distinct field.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Summary = a.summary.FetchSummary(gctx, id)
		return nil
	})
	g.Go(func() error {
		report.Weather = a.weather.FetchWeather(gctx, id)
		return nil
	})
	g.Go(func() error {
		report.Events = a.events.FetchEvents(gctx, id)
		return nil
	})
	g.Go(func() error {
		report.Cuisine = a.cuisine.FetchCuisine(gctx, id)
		return nil
	})
	_ = g.Wait()

	a.logger.Debug("report assembled",
		"query", query,
		"name", id.Name,
		"summary", report.Summary.Available(),
		"weather", report.Weather.Available(),
		"events", report.Events.Available(),
		"cuisine", report.Cuisine.Available(),
	)
	return report, nil
}
