// Package geo implements location resolution for German weather queries:
// direct coordinate parsing, a curated gazetteer of German places, a
// Nominatim fallback, and nearest-station search over DWD stations.
package geo

import (
	"fmt"
	"regexp"
	"strconv"
)

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate lies within [-90,90] latitude and
// [-180,180] longitude.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// coordinatePattern matches direct coordinate input: two decimal numbers
// separated by a comma, optional whitespace around the comma. The comma is
// reserved as the lat/lon delimiter, so comma-as-decimal-separator input
// does not match.
var coordinatePattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d*)?)\s*,\s*(-?\d+(?:\.\d*)?)\s*$`)

// ParseCoordinates attempts to read s as a direct "lat,lon" pair. The bool
// result reports whether s matched the coordinate pattern at all; when it
// did not, later resolution tiers should be tried. When the pattern matches
// but a component is out of range, the error is MalformedCoordinates and
// the caller must not fall through to name lookup; the intent was clearly
// coordinate input.
func ParseCoordinates(s string) (Coordinate, bool, error) {
	m := coordinatePattern.FindStringSubmatch(s)
	if m == nil {
		return Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinate{}, true, wrapError(MalformedCoordinates, "invalid latitude "+m[1], err)
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinate{}, true, wrapError(MalformedCoordinates, "invalid longitude "+m[2], err)
	}

	c := Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return Coordinate{}, true, newError(MalformedCoordinates,
			fmt.Sprintf("coordinates out of range: lat=%v, lon=%v", lat, lon))
	}
	return c, true, nil
}
