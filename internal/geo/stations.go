package geo

import (
	"fmt"
	"math"
	"sort"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// distanceTieToleranceKm is the tolerance within which two computed
// distances count as equal and ordering falls back to station ID.
const distanceTieToleranceKm = 1e-6

// Station is a weather observation station.
type Station struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Coord Coordinate `json:"coordinates"`
}

// StationDistance pairs a station with its great-circle distance from a
// query coordinate.
type StationDistance struct {
	Station    Station `json:"station"`
	DistanceKm float64 `json:"distance_km"`
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers. Station spacing spans enough latitude that a planar
// approximation would introduce material error.
func HaversineKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Nearest returns the limit stations closest to origin, ascending by
// distance with ties broken by ascending station ID. When limit exceeds
// the station count, all stations are returned.
func Nearest(stations []Station, origin Coordinate, limit int) ([]StationDistance, error) {
	if limit <= 0 {
		return nil, newError(InvalidParameter, fmt.Sprintf("station limit must be positive, got %d", limit))
	}

	out := make([]StationDistance, 0, len(stations))
	for _, s := range stations {
		out = append(out, StationDistance{Station: s, DistanceKm: HaversineKm(origin, s.Coord)})
	}

	sort.Slice(out, func(i, j int) bool {
		if math.Abs(out[i].DistanceKm-out[j].DistanceKm) <= distanceTieToleranceKm {
			return out[i].Station.ID < out[j].Station.ID
		}
		return out[i].DistanceKm < out[j].DistanceKm
	})

	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Locator performs nearest-station search over a fixed station set. The
// set is never mutated after construction, so concurrent calls are safe.
type Locator struct {
	stations []Station
}

// NewLocator creates a locator over the given stations. Pass
// DWDStations for the compiled-in reference index.
func NewLocator(stations []Station) *Locator {
	return &Locator{stations: stations}
}

// Stations returns a copy of the locator's station set.
func (l *Locator) Stations() []Station {
	out := make([]Station, len(l.stations))
	copy(out, l.stations)
	return out
}

// Nearest returns the limit closest stations to origin.
func (l *Locator) Nearest(origin Coordinate, limit int) ([]StationDistance, error) {
	return Nearest(l.stations, origin, limit)
}

// DWDStations is the compiled-in reference index of DWD observation
// stations, keyed by the zero-padded DWD station ID. It is a curated
// subset covering the synoptic network, not the full station catalog.
var DWDStations = []Station{
	{ID: "00003", Name: "Aachen", Coord: Coordinate{Lat: 50.7827, Lon: 6.0941}},
	{ID: "00164", Name: "Angermünde", Coord: Coordinate{Lat: 53.0316, Lon: 13.9908}},
	{ID: "00183", Name: "Arkona", Coord: Coordinate{Lat: 54.6792, Lon: 13.4343}},
	{ID: "00282", Name: "Bamberg", Coord: Coordinate{Lat: 49.8743, Lon: 10.9206}},
	{ID: "00433", Name: "Berlin-Tempelhof", Coord: Coordinate{Lat: 52.4675, Lon: 13.4021}},
	{ID: "00691", Name: "Bremen", Coord: Coordinate{Lat: 53.0451, Lon: 8.7981}},
	{ID: "00853", Name: "Chemnitz", Coord: Coordinate{Lat: 50.7913, Lon: 12.8720}},
	{ID: "01048", Name: "Dresden-Klotzsche", Coord: Coordinate{Lat: 51.1280, Lon: 13.7543}},
	{ID: "01078", Name: "Düsseldorf", Coord: Coordinate{Lat: 51.2960, Lon: 6.7686}},
	{ID: "01303", Name: "Essen-Bredeney", Coord: Coordinate{Lat: 51.4041, Lon: 6.9677}},
	{ID: "01346", Name: "Feldberg/Schwarzwald", Coord: Coordinate{Lat: 47.8749, Lon: 8.0039}},
	{ID: "01420", Name: "Frankfurt/Main", Coord: Coordinate{Lat: 50.0259, Lon: 8.5213}},
	{ID: "01443", Name: "Freiburg", Coord: Coordinate{Lat: 48.0232, Lon: 7.8343}},
	{ID: "01544", Name: "Garmisch-Partenkirchen", Coord: Coordinate{Lat: 47.4831, Lon: 11.0623}},
	{ID: "01975", Name: "Hamburg-Fuhlsbüttel", Coord: Coordinate{Lat: 53.6332, Lon: 9.9881}},
	{ID: "02014", Name: "Hannover", Coord: Coordinate{Lat: 52.4644, Lon: 9.6779}},
	{ID: "02290", Name: "Hohenpeißenberg", Coord: Coordinate{Lat: 47.8009, Lon: 11.0108}},
	{ID: "02564", Name: "Kiel-Holtenau", Coord: Coordinate{Lat: 54.3776, Lon: 10.1425}},
	{ID: "02667", Name: "Köln/Bonn", Coord: Coordinate{Lat: 50.8646, Lon: 7.1575}},
	{ID: "02932", Name: "Leipzig/Halle", Coord: Coordinate{Lat: 51.4349, Lon: 12.2396}},
	{ID: "03032", Name: "Lindenberg", Coord: Coordinate{Lat: 52.2085, Lon: 14.1180}},
	{ID: "03379", Name: "München-Stadt", Coord: Coordinate{Lat: 48.1632, Lon: 11.5429}},
	{ID: "03668", Name: "Nürnberg", Coord: Coordinate{Lat: 49.5030, Lon: 11.0549}},
	{ID: "04271", Name: "Rostock-Warnemünde", Coord: Coordinate{Lat: 54.1803, Lon: 12.0808}},
	{ID: "04336", Name: "Saarbrücken-Ensheim", Coord: Coordinate{Lat: 49.2128, Lon: 7.1077}},
	{ID: "04928", Name: "Stuttgart-Schnarrenberg", Coord: Coordinate{Lat: 48.8281, Lon: 9.2000}},
	{ID: "05100", Name: "Trier-Petrisberg", Coord: Coordinate{Lat: 49.7479, Lon: 6.6582}},
	{ID: "05404", Name: "Würzburg", Coord: Coordinate{Lat: 49.7703, Lon: 9.9577}},
	{ID: "05792", Name: "Zugspitze", Coord: Coordinate{Lat: 47.4211, Lon: 10.9867}},
	{ID: "05906", Name: "Waibstadt", Coord: Coordinate{Lat: 49.2942, Lon: 8.9194}},
}
