package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

const providerName = "openweather"

// Client fetches current conditions from the OpenWeatherMap API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an OpenWeatherMap client. An empty apiKey is allowed;
// fetches then report not-configured so operators can tell "disabled" from
// "broken".
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.openweathermap.org",
		logger:     logger,
		metrics:    metrics,
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// FetchWeather queries current conditions at the identity's coordinates.
func (c *Client) FetchWeather(ctx context.Context, id domain.Identity) domain.Result[domain.Weather] {
	if c.apiKey == "" {
		c.metrics.ProviderRequests.WithLabelValues(providerName, string(domain.ReasonNotConfigured)).Inc()
		return domain.Unavailable[domain.Weather](domain.ReasonNotConfigured)
	}

	params := url.Values{
		"lat":   {strconv.FormatFloat(id.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(id.Lon, 'f', -1, 64)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	fullURL := c.baseURL + "/data/2.5/weather?" + params.Encode()

	start := time.Now()
	body, err := c.doRequest(ctx, fullURL)
	c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		reason := domain.ClassifyTransportError(err)
		c.metrics.ProviderRequests.WithLabelValues(providerName, string(reason)).Inc()
		c.logger.Warn("weather fetch failed", "lat", id.Lat, "lon", id.Lon, "error", err)
		return domain.Unavailable[domain.Weather](reason)
	}

	if body.Main.Temp == nil || len(body.Weather) == 0 {
		c.metrics.ProviderRequests.WithLabelValues(providerName, string(domain.ReasonNoData)).Inc()
		return domain.Unavailable[domain.Weather](domain.ReasonNoData)
	}

	c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()
	return domain.Present(domain.Weather{
		TemperatureC: *body.Main.Temp,
		Condition:    body.Weather[0].Description,
	})
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response{}, fmt.Errorf("openweathermap API error: status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}
	return body, nil
}

// OpenWeatherMap API response types. Temp is a pointer so a missing field is
// distinguishable from a legitimate 0°C reading.

type response struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}
