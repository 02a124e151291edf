package metoffice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/kiri-thornalley/virtual-assistant/pkg/log"
)

const (
	// forecastTTL matches the upstream model refresh cadence; there is
	// no point hitting the API more often than the forecast changes.
	forecastTTL = 3 * time.Hour

	cacheSize = 8
)

// Client is the HTTP wrapper for the Met Office Weather DataHub
// site-specific API. Responses are cached per coordinate.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *expirable.LRU[string, []HourlyPoint]
	l          log.Logger
}

// NewClient creates a new DataHub client. The free tier allows 360
// calls per day; the limiter and cache keep usage far below that.
func NewClient(baseURL, apiKey string, l log.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://data.hub.api.metoffice.gov.uk/sitespecific/v0"
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 2),
		cache:      expirable.NewLRU[string, []HourlyPoint](cacheSize, nil, forecastTTL),
		l:          l,
	}
}

// HourlyForecast fetches the hourly site-specific forecast for one
// coordinate, serving from cache when a fresh entry exists.
func (c *Client) HourlyForecast(ctx context.Context, lat, lon float64) ([]HourlyPoint, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if points, ok := c.cache.Get(key); ok {
		c.l.Debugf(ctx, "metoffice.Client.HourlyForecast: cache hit for %s", key)
		return points, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	u := fmt.Sprintf("%s/point/hourly?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call datahub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("datahub API error %d: %s", resp.StatusCode, string(raw))
	}

	var body hourlyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode datahub response: %w", err)
	}
	if len(body.Features) == 0 {
		return nil, fmt.Errorf("datahub response carries no features")
	}

	points := body.Features[0].Properties.TimeSeries
	c.cache.Add(key, points)
	return points, nil
}
