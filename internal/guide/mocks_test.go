package guide

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

func parisIdentity() domain.Identity {
	return domain.Identity{
		RawQuery: "Paris", Name: "Paris", Country: "France", CountryCode: "FR",
		City: "Paris", Kind: domain.KindCity, Lat: 48.8566, Lon: 2.3522,
	}
}

type mockGeocoder struct {
	calls    atomic.Int32
	identity domain.Identity
	err      error
}

func (m *mockGeocoder) Resolve(_ context.Context, _ string) (domain.Identity, error) {
	m.calls.Add(1)
	return m.identity, m.err
}

// mockProviders implements all four provider interfaces, counting calls and
// optionally delaying each fetch to simulate slow upstreams.
type mockProviders struct {
	calls atomic.Int32
	delay time.Duration

	summary domain.Result[domain.Summary]
	weather domain.Result[domain.Weather]
	events  domain.Result[[]domain.Event]
	cuisine domain.Result[[]string]
}

func happyProviders() *mockProviders {
	return &mockProviders{
		summary: domain.Present(domain.Summary{Text: "Paris is the capital of France."}),
		weather: domain.Present(domain.Weather{TemperatureC: 20.0, Condition: "clear sky"}),
		events:  domain.Present([]domain.Event{{Title: "Jazz Festival", Date: "2025-08-15"}}),
		cuisine: domain.Present([]string{"Croissant", "Ratatouille", "Crème brûlée"}),
	}
}

func (m *mockProviders) fetch() {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
}

func (m *mockProviders) FetchSummary(context.Context, domain.Identity) domain.Result[domain.Summary] {
	m.fetch()
	return m.summary
}

func (m *mockProviders) FetchWeather(context.Context, domain.Identity) domain.Result[domain.Weather] {
	m.fetch()
	return m.weather
}

func (m *mockProviders) FetchEvents(context.Context, domain.Identity) domain.Result[[]domain.Event] {
	m.fetch()
	return m.events
}

func (m *mockProviders) FetchCuisine(context.Context, domain.Identity) domain.Result[[]string] {
	m.fetch()
	return m.cuisine
}

func testAggregator(g domain.Geocoder, p *mockProviders) *Aggregator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(g, p, p, p, p, logger, observability.NewMetricsForTesting())
}
