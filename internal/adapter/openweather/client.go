package openweather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/spurll/weather/internal/domain"
	"github.com/spurll/weather/internal/observability"
)

// Client fetches daily forecasts from the OpenWeatherMap forecast API and
// normalizes them into the canonical domain record.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	variant    domain.SchemaVariant
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a forecast client. The variant selects which response
// shape to request; normalization handles both.
func NewClient(token string, variant domain.SchemaVariant, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "http://api.openweathermap.org/data/2.5/forecast/daily",
		variant: variant,
		metrics: metrics,
		logger:  logger,
	}
}

// Forecast fetches today's forecast for a city. One attempt, no retries; a
// transport failure or non-success status is ErrProviderUnavailable, and
// payload problems surface as the normalizer's errors.
func (c *Client) Forecast(ctx context.Context, city string) (*domain.DailyForecast, error) {
	// JSON asks for two days so the date filter can pick today even when the
	// provider's first entry has rolled over; XML is constrained to one day
	// and taken as-is.
	count := "2"
	if c.variant == domain.VariantXML {
		count = "1"
	}

	params := url.Values{
		"q":     {city},
		"mode":  {string(c.variant)},
		"units": {"metric"},
		"cnt":   {count},
		"APPID": {c.token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrProviderUnavailable, err)
	}

	forecast, err := domain.Normalize(body, c.variant)
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	c.metrics.ForecastRequests.WithLabelValues("success").Inc()
	c.logger.Debug("forecast fetched", "city", city, "mode", c.variant,
		"high", forecast.HighTempC, "low", forecast.LowTempC)
	return forecast, nil
}
