package brightsky

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"dwd-mcp-server/internal/geo"
)

const (
	defaultBaseURL = "https://api.brightsky.dev"
	defaultTimeout = 30 * time.Second

	// Bright Sky expects a timezone for local timestamps; all DWD data is
	// reported in German local time.
	defaultTimezone = "Europe/Berlin"

	// DefaultSourceRadiusMeters bounds the /sources search around a
	// coordinate.
	DefaultSourceRadiusMeters = 50000

	maxForecastDays = 10
)

// ErrNoData means Bright Sky has no weather data for the location
// (HTTP 404). Distinct from an outage: retrying will not help.
var ErrNoData = errors.New("no weather data for the given location")

// ErrUpstream wraps transport failures and server-side errors; the call
// may be retried by the user.
var ErrUpstream = errors.New("weather service unavailable")

// Client calls the Bright Sky API. Each request carries its own timeout
// and a shared circuit breaker stops hammering the service during an
// outage. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	tz      *time.Location
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Bright Sky client with default settings.
func NewClient(opts ...Option) *Client {
	tz, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		tz = time.UTC
	}
	c := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "brightsky",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		tz:     tz,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errNotFoundStatus marks a 404 inside the breaker so it can be mapped to
// ErrNoData afterwards.
var errNotFoundStatus = errors.New("not found")

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path + "?" + q.Encode()

	start := time.Now()
	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, errNotFoundStatus
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return body, nil
	})

	c.logger.Debug("brightsky request", "path", path, "dur_ms", time.Since(start).Milliseconds(), "err", err)

	if err != nil {
		if errors.Is(err, errNotFoundStatus) {
			return ErrNoData
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit open: %v", ErrUpstream, err)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	body, ok := result.([]byte)
	if !ok {
		return fmt.Errorf("%w: unexpected breaker result type", ErrUpstream)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return nil
}

func coordValues(coord geo.Coordinate) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	return q
}

// CurrentWeather fetches the latest observation near coord.
func (c *Client) CurrentWeather(ctx context.Context, coord geo.Coordinate) (*CurrentWeatherResponse, error) {
	q := coordValues(coord)
	q.Set("tz", defaultTimezone)

	var out CurrentWeatherResponse
	if err := c.get(ctx, "/current_weather", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Forecast fetches hourly forecast records for the next days days,
// starting today in German local time. days must be in [1,10].
func (c *Client) Forecast(ctx context.Context, coord geo.Coordinate, days int) (*WeatherResponse, error) {
	if days < 1 || days > maxForecastDays {
		return nil, fmt.Errorf("forecast days must be in [1,%d], got %d", maxForecastDays, days)
	}

	now := time.Now().In(c.tz)
	q := coordValues(coord)
	q.Set("date", now.Format("2006-01-02"))
	q.Set("last_date", now.AddDate(0, 0, days).Format("2006-01-02"))
	q.Set("tz", defaultTimezone)

	var out WeatherResponse
	if err := c.get(ctx, "/weather", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts fetches active DWD warnings. A nil coord means nationwide.
func (c *Client) Alerts(ctx context.Context, coord *geo.Coordinate) (*AlertsResponse, error) {
	q := url.Values{}
	q.Set("tz", defaultTimezone)
	if coord != nil {
		q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	}

	var out AlertsResponse
	if err := c.get(ctx, "/alerts", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sources fetches stations within maxDistMeters of coord.
func (c *Client) Sources(ctx context.Context, coord geo.Coordinate, maxDistMeters int) (*SourcesResponse, error) {
	if maxDistMeters <= 0 {
		maxDistMeters = DefaultSourceRadiusMeters
	}
	q := coordValues(coord)
	q.Set("max_dist", strconv.Itoa(maxDistMeters))

	var out SourcesResponse
	if err := c.get(ctx, "/sources", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
