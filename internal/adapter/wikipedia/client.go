package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

const providerName = "wikipedia"

// Extracts shorter than this are almost always disambiguation stubs; treat
// them as no article.
const minExtractLen = 50

// maxSummaryLen bounds the rendered description so a long article lead
// cannot flood the text report.
const maxSummaryLen = 200

// Client fetches place descriptions from the Wikipedia REST summary API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Wikipedia summary client. The endpoint is keyless.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://en.wikipedia.org/api/rest_v1",
		logger:     logger,
		metrics:    metrics,
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// FetchSummary looks up the place by name, then by "name, country" when the
// plain name has no usable article. All failures fold into the Result.
func (c *Client) FetchSummary(ctx context.Context, id domain.Identity) domain.Result[domain.Summary] {
	titles := []string{id.Name}
	if id.Country != "" && id.Name != id.Country {
		titles = append(titles, id.Name+", "+id.Country)
	}

	start := time.Now()
	defer func() {
		c.metrics.ProviderDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	}()

	for _, title := range titles {
		extract, err := c.fetchExtract(ctx, title)
		if err != nil {
			reason := domain.ClassifyTransportError(err)
			c.metrics.ProviderRequests.WithLabelValues(providerName, string(reason)).Inc()
			c.logger.Warn("summary fetch failed", "title", title, "error", err)
			return domain.Unavailable[domain.Summary](reason)
		}
		if len(extract) >= minExtractLen {
			c.metrics.ProviderRequests.WithLabelValues(providerName, "success").Inc()
			return domain.Present(domain.Summary{Text: firstSentence(extract)})
		}
	}

	c.metrics.ProviderRequests.WithLabelValues(providerName, string(domain.ReasonNoData)).Inc()
	return domain.Unavailable[domain.Summary](domain.ReasonNoData)
}

// fetchExtract returns the article extract for a title, or "" when the page
// does not exist or has no usable shape.
func (c *Client) fetchExtract(ctx context.Context, title string) (string, error) {
	fullURL := c.baseURL + "/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Missing article is data absence, not an upstream fault.
		return "", nil
	}

	var body struct {
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", nil
	}
	return body.Extract, nil
}

// firstSentence returns the extract's first sentence, truncated to
// maxSummaryLen runes with an ellipsis.
func firstSentence(extract string) string {
	sentence := extract
	if i := strings.Index(extract, ". "); i >= 0 {
		sentence = extract[:i+1]
	} else if !strings.HasSuffix(sentence, ".") {
		sentence += "."
	}

	runes := []rune(sentence)
	if len(runes) > maxSummaryLen {
		return string(runes[:maxSummaryLen]) + "..."
	}
	return sentence
}
