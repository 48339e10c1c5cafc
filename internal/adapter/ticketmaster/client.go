package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

const providerName = "ticketmaster"

const (
	// maxEvents bounds the listing to the provider's top results by date.
	maxEvents = 3
	// searchRadiusMiles is the fixed radius around the resolved coordinates.
	searchRadiusMiles = "50"
	// searchWindow is how far into the future the listing looks.
	searchWindow = 90 * 24 * time.Hour
)

// Client fetches near-term event listings from the Ticketmaster Discovery API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Ticketmaster client. An empty apiKey disables the
// provider; fetches then report not-configured.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://app.ticketmaster.com",
		logger:     logger,
		metrics:    metrics,
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// FetchEvents queries upcoming events around the identity. A successful
// query with zero listings yields Present(empty), distinct from "could not
// check".
func (c *Client) FetchEvents(ctx context.Context, id domain.Identity) domain.Result[[]domain.Event] {
	if c.apiKey == "" {
		c.metrics.ProviderRequests.WithLabelValues(providerName, string(domain.ReasonNotConfigured)).Inc()
		return domain.Unavailable[[]domain.Event](domain.ReasonNotConfigured)
	}

	now := clock.Now().UTC().Truncate(time.Second)
	params := url.Values{
		"apikey":        {c.apiKey},
		"size":          {fmt.Sprint(maxEvents)},
		"sort":          {"date,asc"},
		"latlong":       {fmt.Sprintf("%f,%f", id.Lat, id.Lon)},
		"radius":        {searchRadiusMiles},
		"startDateTime": {now.Format("2006-01-02T15:04:05Z")},
		"endDateTime":   {now.Add(searchWindow).Format("2006-01-02T15:04:05Z")},
	}
	if id.City != "" {
		params.Set("city", id.City)
	}
	if len(id.CountryCode) == 2 {
		params.Set("countryCode", id.CountryCode)
	}
	fullURL := c.baseURL + "/discovery/v2/events.json?" + params.Encode()

	start := time.Now()
	body, err := c.doRequest(ctx, fullURL)
	c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		reason := domain.ClassifyTransportError(err)
		c.metrics.ProviderRequests.WithLabelValues(providerName, string(reason)).Inc()
		c.logger.Warn("events fetch failed", "lat", id.Lat, "lon", id.Lon, "error", err)
		return domain.Unavailable[[]domain.Event](reason)
	}

	events := make([]domain.Event, 0, maxEvents)
	for _, e := range body.Embedded.Events {
		if len(events) == maxEvents {
			break
		}
		event := domain.Event{
			Title: e.Name,
			Date:  e.Dates.Start.LocalDate,
		}
		if event.Title == "" {
			event.Title = "Unknown Event"
		}
		if event.Date == "" {
			event.Date = "TBA"
		}
		if len(e.Embedded.Venues) > 0 {
			event.Venue = e.Embedded.Venues[0].Name
		}
		events = append(events, event)
	}

	c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()
	return domain.Present(events)
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("events request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response{}, fmt.Errorf("ticketmaster API error: status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}
	return body, nil
}

// Ticketmaster Discovery API response types.

type response struct {
	Embedded struct {
		Events []event `json:"events"`
	} `json:"_embedded"`
}

type event struct {
	Name  string `json:"name"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
		} `json:"start"`
	} `json:"dates"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
		} `json:"venues"`
	} `json:"_embedded"`
}
