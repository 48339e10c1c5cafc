package mealdb

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

const providerName = "mealdb"

// maxDishes bounds the rendered cuisine list.
const maxDishes = 3

// areaByCountry maps country names to TheMealDB's area vocabulary where the
// two differ. Countries missing here are tried verbatim.
var areaByCountry = map[string]string{
	"United States":  "American",
	"United Kingdom": "British",
	"UK":             "British",
	"China":          "Chinese",
	"India":          "Indian",
	"Italy":          "Italian",
	"France":         "French",
	"Mexico":         "Mexican",
	"Japan":          "Japanese",
	"Thailand":       "Thai",
	"Greece":         "Greek",
	"Spain":          "Spanish",
	"Turkey":         "Turkish",
	"Morocco":        "Moroccan",
	"Jamaica":        "Jamaican",
	"Canada":         "Canadian",
	"Malaysia":       "Malaysian",
	"Egypt":          "Egyptian",
	"Tunisia":        "Tunisian",
	"Croatia":        "Croatian",
	"Ireland":        "Irish",
	"Poland":         "Polish",
	"Portugal":       "Portuguese",
	"Russia":         "Russian",
	"Ukraine":        "Ukrainian",
	"Vietnam":        "Vietnamese",
}

// Client fetches regional dishes from TheMealDB API. The endpoint is keyless.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a TheMealDB client.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://www.themealdb.com",
		logger:     logger,
		metrics:    metrics,
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// FetchCuisine looks up dishes for the identity's country, trying the mapped
// MealDB area first and the raw country name second.
func (c *Client) FetchCuisine(ctx context.Context, id domain.Identity) domain.Result[[]string] {
	if id.Country == "" {
		c.metrics.ProviderRequests.WithLabelValues(providerName, string(domain.ReasonNoData)).Inc()
		return domain.Unavailable[[]string](domain.ReasonNoData)
	}

	areas := []string{id.Country}
	if mapped, ok := areaByCountry[id.Country]; ok {
		areas = []string{mapped, id.Country}
	}

	start := time.Now()
	defer func() {
		c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	}()

	for _, area := range areas {
		meals, err := c.fetchArea(ctx, area)
		if err != nil {
			reason := domain.ClassifyTransportError(err)
			c.metrics.ProviderRequests.WithLabelValues(providerName, string(reason)).Inc()
			c.logger.Warn("cuisine fetch failed", "area", area, "error", err)
			return domain.Unavailable[[]string](reason)
		}
		if dishes := dishNames(meals); len(dishes) > 0 {
			c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()
			return domain.Present(dishes)
		}
	}

	// The provider's area vocabulary has no entry for this country.
	c.metrics.ProviderRequests.WithLabelValues(providerName, string(domain.ReasonNoData)).Inc()
	return domain.Unavailable[[]string](domain.ReasonNoData)
}

func (c *Client) fetchArea(ctx context.Context, area string) ([]meal, error) {
	params := url.Values{"a": {area}}
	fullURL := c.baseURL + "/api/json/v1/1/filter.php?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cuisine request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mealdb API error: status %d", resp.StatusCode)
	}

	// An unknown area returns {"meals": null}, which decodes to a nil slice.
	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil
	}
	return body.Meals, nil
}

// dishNames extracts meal names, deduplicated, capped at maxDishes.
func dishNames(meals []meal) []string {
	seen := make(map[string]struct{}, maxDishes)
	dishes := make([]string, 0, maxDishes)
	for _, m := range meals {
		if m.Name == "" {
			continue
		}
		if _, ok := seen[m.Name]; ok {
			continue
		}
		seen[m.Name] = struct{}{}
		dishes = append(dishes, m.Name)
		if len(dishes) == maxDishes {
			break
		}
	}
	return dishes
}

// TheMealDB API response types.

type response struct {
	Meals []meal `json:"meals"`
}

type meal struct {
	Name string `json:"strMeal"`
}
