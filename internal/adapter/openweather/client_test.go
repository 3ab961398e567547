package openweather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spurll/weather/internal/domain"
	"github.com/spurll/weather/internal/observability"
)

const testToken = "test-token"

func testClient(baseURL string, variant domain.SchemaVariant) *Client {
	return &Client{
		token:      testToken,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		variant:    variant,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func pinToday(t *testing.T) time.Time {
	t.Helper()
	today := time.Date(2024, 4, 26, 12, 0, 0, 0, time.Local)
	domain.SetClock(clockwork.NewFakeClockAt(today))
	t.Cleanup(func() { domain.SetClock(nil) })
	return today
}

func dailyJSON(ts time.Time) string {
	return fmt.Sprintf(`{"list":[{"dt":%d,"temp":{"min":11.6,"max":22.4},"deg":200,"speed":5,
		"clouds":10,"weather":[{"description":"clear sky","icon":"01d"}],"rain":1.5}]}`, ts.Unix())
}

func TestClient_Forecast_JSON(t *testing.T) {
	today := pinToday(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Winnipeg", q.Get("q"))
		assert.Equal(t, "json", q.Get("mode"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "2", q.Get("cnt"))
		assert.Equal(t, testToken, q.Get("APPID"))

		_, _ = w.Write([]byte(dailyJSON(today)))
	}))
	defer srv.Close()

	c := testClient(srv.URL, domain.VariantDailyJSON)
	f, err := c.Forecast(context.Background(), "Winnipeg")
	require.NoError(t, err)

	assert.Equal(t, 22.4, f.HighTempC)
	assert.Equal(t, 5.0, f.WindSpeedMps)
	assert.Equal(t, map[domain.PrecipKind]float64{domain.PrecipRain: 1.5}, f.Precipitation)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ForecastRequests.WithLabelValues("success")))
}

func TestClient_Forecast_XML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "xml", q.Get("mode"))
		assert.Equal(t, "1", q.Get("cnt"), "xml requests constrain the provider to one day")

		_, _ = w.Write([]byte(`<forecast><time>
			<symbol name="light rain" var="10d"/>
			<precipitation value="2.2" type="rain"/>
			<windDirection deg="315"/>
			<windSpeed mps="3.5"/>
			<temperature min="4.1" max="12.9"/>
			<clouds all="75"/>
		</time></forecast>`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, domain.VariantXML)
	f, err := c.Forecast(context.Background(), "Winnipeg")
	require.NoError(t, err)

	assert.Equal(t, 12.9, f.HighTempC)
	assert.Equal(t, "light rain", f.SkyDescription)
	assert.Equal(t, "10d", f.IconCode)
	assert.Equal(t, map[domain.PrecipKind]float64{domain.PrecipRain: 2.2}, f.Precipitation)
}

func TestClient_Forecast_ProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL, domain.VariantDailyJSON)
	_, err := c.Forecast(context.Background(), "Winnipeg")
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ForecastRequests.WithLabelValues("error")))
}

func TestClient_Forecast_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := testClient(srv.URL, domain.VariantDailyJSON)
	_, err := c.Forecast(context.Background(), "Winnipeg")
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestClient_Forecast_NoForecastForToday(t *testing.T) {
	today := pinToday(t)
	tomorrow := today.Add(24 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(dailyJSON(tomorrow)))
	}))
	defer srv.Close()

	c := testClient(srv.URL, domain.VariantDailyJSON)
	_, err := c.Forecast(context.Background(), "Winnipeg")
	require.ErrorIs(t, err, domain.ErrNoForecastForToday)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.ForecastRequests.WithLabelValues("error")))
}

func TestClient_Forecast_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, domain.VariantDailyJSON)
	_, err := c.Forecast(context.Background(), "Winnipeg")
	require.ErrorIs(t, err, domain.ErrMalformedPayload)
}
