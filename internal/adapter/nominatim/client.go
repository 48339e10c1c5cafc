package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

const userAgent = "NomadHelp-TravelGuide/1.0"

// Client implements domain.Geocoder using the Nominatim search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Nominatim geocoding client.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://nominatim.openstreetmap.org",
		logger:     logger,
		metrics:    metrics,
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Resolve converts a free-text location query into a canonical Identity.
// Failures are returned as *domain.GeocodeError.
func (c *Client) Resolve(ctx context.Context, query string) (domain.Identity, error) {
	params := url.Values{
		"q":              {query},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {"1"},
	}
	fullURL := c.baseURL + "/search?" + params.Encode()

	start := time.Now()
	places, err := c.doRequest(ctx, fullURL)
	c.metrics.GeocodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		reason := domain.GeocodeUpstreamError
		if domain.ClassifyTransportError(err) == domain.ReasonTimeout {
			reason = domain.GeocodeTimeout
		}
		c.metrics.GeocodeRequests.WithLabelValues(string(reason)).Inc()
		c.logger.Warn("geocode request failed", "query", query, "error", err)
		return domain.Identity{}, &domain.GeocodeError{Query: query, Reason: reason}
	}

	if len(places) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues(string(domain.GeocodeNoMatch)).Inc()
		return domain.Identity{}, &domain.GeocodeError{Query: query, Reason: domain.GeocodeNoMatch}
	}

	id, ok := toIdentity(query, places[0])
	if !ok {
		c.metrics.GeocodeRequests.WithLabelValues(string(domain.GeocodeNoMatch)).Inc()
		return domain.Identity{}, &domain.GeocodeError{Query: query, Reason: domain.GeocodeNoMatch}
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return id, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API error: status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return places, nil
}

// toIdentity maps the first Nominatim match into a domain Identity. Matches
// without parseable coordinates are treated as no-match.
func toIdentity(query string, p place) (domain.Identity, bool) {
	lat, latErr := strconv.ParseFloat(p.Lat, 64)
	lon, lonErr := strconv.ParseFloat(p.Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Identity{}, false
	}

	name := p.DisplayName
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}

	id := domain.Identity{
		RawQuery:    query,
		Name:        strings.TrimSpace(name),
		Country:     p.Address.Country,
		CountryCode: strings.ToUpper(p.Address.CountryCode),
		City:        firstNonEmpty(p.Address.City, p.Address.Town, p.Address.Village),
		Kind:        kindFromType(p.Type),
		Lat:         lat,
		Lon:         lon,
	}
	if !id.HasCoordinates() {
		return domain.Identity{}, false
	}
	return id, true
}

// kindFromType reduces Nominatim's place taxonomy to the guide's four kinds.
func kindFromType(t string) domain.Kind {
	switch t {
	case "city", "town", "village", "municipality", "hamlet", "suburb":
		return domain.KindCity
	case "country":
		return domain.KindCountry
	case "state", "region", "province", "county", "administrative":
		return domain.KindRegion
	default:
		return domain.KindUnknown
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Nominatim API response types. Coordinates arrive as strings.

type place struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
	Address     address `json:"address"`
}

type address struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
}
