package brightsky

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwd-mcp-server/internal/geo"
)

var aachen = geo.Coordinate{Lat: 50.7753, Lon: 6.0839}

func TestClientCurrentWeather(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"weather": {"timestamp": "2026-08-29T14:00:00+02:00", "temperature": 21.4, "condition": "dry"},
			"sources": [{"id": 7, "station_name": "Aachen-Orsbach", "dwd_station_id": "15000"}]
		}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	resp, err := c.CurrentWeather(context.Background(), aachen)
	require.NoError(t, err)

	assert.Equal(t, "/current_weather", gotPath)
	assert.Equal(t, "50.7753", gotQuery.Get("lat"))
	assert.Equal(t, "6.0839", gotQuery.Get("lon"))
	assert.Equal(t, "Europe/Berlin", gotQuery.Get("tz"))

	require.NotNil(t, resp.Weather.Temperature)
	assert.Equal(t, 21.4, *resp.Weather.Temperature)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "Aachen-Orsbach", resp.Sources[0].StationName)
}

func TestClientNotFoundIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "no sources match your criteria"}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.CurrentWeather(context.Background(), aachen)
	assert.ErrorIs(t, err, ErrNoData)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestClientServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.CurrentWeather(context.Background(), aachen)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClientTimeoutIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond))
	_, err := c.CurrentWeather(context.Background(), aachen)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClientDecodeErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": [`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.CurrentWeather(context.Background(), aachen)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClientForecastDateWindow(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"weather": [], "sources": []}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Forecast(context.Background(), aachen, 3)
	require.NoError(t, err)

	date, err := time.Parse("2006-01-02", gotQuery.Get("date"))
	require.NoError(t, err)
	last, err := time.Parse("2006-01-02", gotQuery.Get("last_date"))
	require.NoError(t, err)
	assert.Equal(t, 3*24*time.Hour, last.Sub(date))
}

func TestClientForecastDaysBounds(t *testing.T) {
	c := NewClient(WithBaseURL("http://unreachable.invalid"))
	for _, days := range []int{0, -1, 11} {
		_, err := c.Forecast(context.Background(), aachen, days)
		assert.Error(t, err, "days=%d", days)
		assert.NotErrorIs(t, err, ErrUpstream, "bounds are checked before any request")
	}
}

func TestClientAlertsNationwideOmitsCoordinates(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"alerts": []}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	resp, err := c.Alerts(context.Background(), nil)
	require.NoError(t, err)

	assert.False(t, gotQuery.Has("lat"))
	assert.False(t, gotQuery.Has("lon"))
	assert.Empty(t, resp.Alerts)
}

func TestClientAlertsWithCoordinate(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"alerts": [{"severity": "moderate", "event_de": "Sturmböen"}],
			"location": {"name": "Stadt Aachen", "state": "Nordrhein-Westfalen"}
		}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	resp, err := c.Alerts(context.Background(), &aachen)
	require.NoError(t, err)

	assert.Equal(t, "50.7753", gotQuery.Get("lat"))
	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, "Sturmböen", resp.Alerts[0].EventDE)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "Stadt Aachen", resp.Location.Name)
}

func TestClientSourcesRadius(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"sources": [{"id": 1, "station_name": "Aachen-Orsbach", "lat": 50.7983, "lon": 6.0244}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))

	resp, err := c.Sources(context.Background(), aachen, 0)
	require.NoError(t, err)
	assert.Equal(t, "50000", gotQuery.Get("max_dist"), "zero radius falls back to the default")
	require.Len(t, resp.Sources, 1)

	_, err = c.Sources(context.Background(), aachen, 25000)
	require.NoError(t, err)
	assert.Equal(t, "25000", gotQuery.Get("max_dist"))
}

func TestClientCircuitOpensAfterRepeatedFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))
	for i := 0; i < 10; i++ {
		_, err := c.CurrentWeather(context.Background(), aachen)
		require.Error(t, err)
	}

	// gobreaker trips after more than 5 consecutive failures; later calls
	// fail fast without reaching the server.
	_, err := c.CurrentWeather(context.Background(), aachen)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Less(t, hits, 11)
	assert.True(t, errors.Is(err, ErrUpstream))
}
