package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"
	defaultGeocodeTimeout   = 5 * time.Second

	// Nominatim usage policy requires an identifying User-Agent.
	nominatimUserAgent = "dwd-mcp-server/1.0 (weather lookup)"
)

// GeocodeResult is the top-ranked match returned by the remote geocoder.
type GeocodeResult struct {
	Coord       Coordinate
	DisplayName string
}

// Geocoder resolves free-form place names that the gazetteer does not
// cover. The bool result distinguishes a confirmed empty answer from a
// transport failure: (_, false, nil) means the service answered and found
// nothing; a non-nil error always carries kind UpstreamUnavailable.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (GeocodeResult, bool, error)
}

// NominatimClient queries the Nominatim (OpenStreetMap) search API,
// biased to German results. Safe for concurrent use; each call carries
// its own timeout.
type NominatimClient struct {
	baseURL     string
	countryCode string
	client      *http.Client
}

// NominatimOption configures a NominatimClient.
type NominatimOption func(*NominatimClient)

// WithNominatimBaseURL overrides the API base URL (used in tests).
func WithNominatimBaseURL(u string) NominatimOption {
	return func(c *NominatimClient) { c.baseURL = u }
}

// WithGeocodeTimeout overrides the per-request timeout.
func WithGeocodeTimeout(d time.Duration) NominatimOption {
	return func(c *NominatimClient) { c.client.Timeout = d }
}

// NewNominatimClient creates a geocoder restricted to German results.
func NewNominatimClient(opts ...NominatimOption) *NominatimClient {
	c := &NominatimClient{
		baseURL:     defaultNominatimBaseURL,
		countryCode: "de",
		client:      &http.Client{Timeout: defaultGeocodeTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode looks up query and returns the best-ranked candidate.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (GeocodeResult, bool, error) {
	endpoint := c.baseURL + "/search"

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", c.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return GeocodeResult{}, false, wrapError(UpstreamUnavailable, "create geocode request", err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return GeocodeResult{}, false, wrapError(UpstreamUnavailable, "geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GeocodeResult{}, false, newError(UpstreamUnavailable,
			fmt.Sprintf("geocode service returned status %d", resp.StatusCode))
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return GeocodeResult{}, false, wrapError(UpstreamUnavailable, "decode geocode response", err)
	}

	if len(places) == 0 {
		return GeocodeResult{}, false, nil
	}

	top := places[0]
	lat, err := strconv.ParseFloat(top.Lat, 64)
	if err != nil {
		return GeocodeResult{}, false, wrapError(UpstreamUnavailable, "invalid latitude in geocode response", err)
	}
	lon, err := strconv.ParseFloat(top.Lon, 64)
	if err != nil {
		return GeocodeResult{}, false, wrapError(UpstreamUnavailable, "invalid longitude in geocode response", err)
	}

	return GeocodeResult{
		Coord:       Coordinate{Lat: lat, Lon: lon},
		DisplayName: top.DisplayName,
	}, true, nil
}
