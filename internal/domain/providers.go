package domain

import "context"

// Geocoder resolves a free-text location query into a canonical Identity.
type Geocoder interface {
	// Resolve returns the best match for the query, or a *GeocodeError.
	Resolve(ctx context.Context, query string) (Identity, error)
}

// SummaryProvider fetches a short encyclopedic description of a place.
// Failures are folded into the Result; it never returns an error.
type SummaryProvider interface {
	FetchSummary(ctx context.Context, id Identity) Result[Summary]
}

// WeatherProvider fetches current conditions at the identity's coordinates.
type WeatherProvider interface {
	FetchWeather(ctx context.Context, id Identity) Result[Weather]
}

// EventsProvider fetches near-term event listings around the identity.
// A successful query with zero events yields Present(empty), not Unavailable.
type EventsProvider interface {
	FetchEvents(ctx context.Context, id Identity) Result[[]Event]
}

// CuisineProvider fetches regional dish names for the identity's country.
type CuisineProvider interface {
	FetchCuisine(ctx context.Context, id Identity) Result[[]string]
}
