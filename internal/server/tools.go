package server

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dwd-mcp-server/internal/brightsky"
	"dwd-mcp-server/internal/geo"
)

const (
	defaultForecastDays = 3
	defaultStationLimit = 5
)

// -- get_current_weather ------------------------------------------------------

type CurrentWeatherInput struct {
	Location string `json:"location" jsonschema:"Ort als Stadtname (z.B. 'Aachen', 'München') oder Koordinaten (z.B. '50.7753,6.0839')"`
}

type CurrentWeatherOutput struct {
	brightsky.CurrentConditions
	LocationQuery string         `json:"location_query"`
	Coordinates   geo.Coordinate `json:"coordinates"`
	ResolvedBy    string         `json:"resolved_by"`
	ResolvedName  string         `json:"resolved_name,omitempty"`
}

func (s *Server) getCurrentWeather(ctx context.Context, _ *mcp.CallToolRequest, in CurrentWeatherInput) (*mcp.CallToolResult, CurrentWeatherOutput, error) {
	loc, err := s.resolver.Resolve(ctx, in.Location)
	if err != nil {
		return nil, CurrentWeatherOutput{}, resolveError(in.Location, err)
	}

	resp, err := s.weather.CurrentWeather(ctx, loc.Coord)
	if err != nil {
		return nil, CurrentWeatherOutput{}, weatherError(err)
	}

	return nil, CurrentWeatherOutput{
		CurrentConditions: brightsky.FormatCurrent(resp),
		LocationQuery:     in.Location,
		Coordinates:       loc.Coord,
		ResolvedBy:        string(loc.Tier),
		ResolvedName:      loc.DisplayName,
	}, nil
}

// -- get_weather_forecast -----------------------------------------------------

type ForecastInput struct {
	Location string `json:"location" jsonschema:"Ort als Stadtname (z.B. 'Köln', 'Berlin') oder Koordinaten (z.B. '50.9375,6.9603')"`
	Days     int    `json:"days,omitempty" jsonschema:"Anzahl der Vorhersagetage (1-10, Standard: 3)" validate:"omitempty,min=1,max=10"`
}

type ForecastOutput struct {
	brightsky.Forecast
	LocationQuery string         `json:"location_query"`
	Coordinates   geo.Coordinate `json:"coordinates"`
	ResolvedBy    string         `json:"resolved_by"`
	ResolvedName  string         `json:"resolved_name,omitempty"`
	DaysRequested int            `json:"days_requested"`
}

func (s *Server) getWeatherForecast(ctx context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, ForecastOutput, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, ForecastOutput{}, invalidParameterError(err)
	}

	days := in.Days
	if days == 0 {
		days = defaultForecastDays
	}

	loc, err := s.resolver.Resolve(ctx, in.Location)
	if err != nil {
		return nil, ForecastOutput{}, resolveError(in.Location, err)
	}

	resp, err := s.weather.Forecast(ctx, loc.Coord, days)
	if err != nil {
		return nil, ForecastOutput{}, weatherError(err)
	}

	return nil, ForecastOutput{
		Forecast:      brightsky.FormatForecast(resp),
		LocationQuery: in.Location,
		Coordinates:   loc.Coord,
		ResolvedBy:    string(loc.Tier),
		ResolvedName:  loc.DisplayName,
		DaysRequested: days,
	}, nil
}

// -- get_weather_alerts -------------------------------------------------------

type AlertsInput struct {
	Location string `json:"location,omitempty" jsonschema:"Optional: Ort als Stadtname oder Koordinaten. Ohne Angabe werden alle Warnungen für Deutschland zurückgegeben."`
}

type AlertsOutput struct {
	brightsky.AlertReport
	LocationQuery string          `json:"location_query"`
	Coordinates   *geo.Coordinate `json:"coordinates,omitempty"`
	ResolvedBy    string          `json:"resolved_by,omitempty"`
}

func (s *Server) getWeatherAlerts(ctx context.Context, _ *mcp.CallToolRequest, in AlertsInput) (*mcp.CallToolResult, AlertsOutput, error) {
	var (
		coord *geo.Coordinate
		tier  string
	)
	query := "Deutschland (alle Warnungen)"

	if in.Location != "" {
		loc, err := s.resolver.Resolve(ctx, in.Location)
		if err != nil {
			return nil, AlertsOutput{}, resolveError(in.Location, err)
		}
		coord = &loc.Coord
		tier = string(loc.Tier)
		query = in.Location
	}

	resp, err := s.weather.Alerts(ctx, coord)
	if err != nil {
		return nil, AlertsOutput{}, weatherError(err)
	}

	return nil, AlertsOutput{
		AlertReport:   brightsky.FormatAlerts(resp),
		LocationQuery: query,
		Coordinates:   coord,
		ResolvedBy:    tier,
	}, nil
}

// -- find_weather_station -----------------------------------------------------

type FindStationInput struct {
	Location string `json:"location" jsonschema:"Ort als Stadtname (z.B. 'Hamburg') oder Koordinaten (z.B. '53.5511,9.9937')"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximale Anzahl der Stationen (1-50, Standard: 5)" validate:"omitempty,min=1,max=50"`
}

type NearbyStation struct {
	StationID       string  `json:"station_id"`
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	DistanceKm      float64 `json:"distance_km"`
	ObservationType string  `json:"observation_type,omitempty"`
}

type FindStationOutput struct {
	StationCount  int             `json:"station_count"`
	Stations      []NearbyStation `json:"stations"`
	LocationQuery string          `json:"location_query"`
	Coordinates   geo.Coordinate  `json:"coordinates"`
	ResolvedBy    string          `json:"resolved_by"`
}

func (s *Server) findWeatherStation(ctx context.Context, _ *mcp.CallToolRequest, in FindStationInput) (*mcp.CallToolResult, FindStationOutput, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, FindStationOutput{}, invalidParameterError(err)
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultStationLimit
	}

	loc, err := s.resolver.Resolve(ctx, in.Location)
	if err != nil {
		return nil, FindStationOutput{}, resolveError(in.Location, err)
	}

	stations, obsTypes, err := s.liveStations(ctx, loc.Coord)
	if err != nil {
		return nil, FindStationOutput{}, err
	}
	// A confirmed empty live answer falls back to the compiled-in DWD
	// station index; upstream failures were already surfaced above.
	if len(stations) == 0 {
		stations = s.locator.Stations()
	}

	nearest, err := geo.Nearest(stations, loc.Coord, limit)
	if err != nil {
		return nil, FindStationOutput{}, invalidParameterError(err)
	}

	out := FindStationOutput{
		StationCount:  len(nearest),
		Stations:      make([]NearbyStation, 0, len(nearest)),
		LocationQuery: in.Location,
		Coordinates:   loc.Coord,
		ResolvedBy:    string(loc.Tier),
	}
	for _, sd := range nearest {
		out.Stations = append(out.Stations, NearbyStation{
			StationID:       sd.Station.ID,
			Name:            sd.Station.Name,
			Lat:             sd.Station.Coord.Lat,
			Lon:             sd.Station.Coord.Lon,
			DistanceKm:      math.Round(sd.DistanceKm*10) / 10,
			ObservationType: obsTypes[sd.Station.ID],
		})
	}
	return nil, out, nil
}

// liveStations queries Bright Sky for stations near coord and maps them
// into the locator's station type, deduplicated by DWD station ID. The
// returned map carries each station's observation type for the output.
func (s *Server) liveStations(ctx context.Context, coord geo.Coordinate) ([]geo.Station, map[string]string, error) {
	resp, err := s.weather.Sources(ctx, coord, brightsky.DefaultSourceRadiusMeters)
	if err != nil {
		if errors.Is(err, brightsky.ErrNoData) {
			return nil, nil, nil
		}
		return nil, nil, weatherError(err)
	}

	seen := make(map[string]struct{}, len(resp.Sources))
	obsTypes := make(map[string]string, len(resp.Sources))
	stations := make([]geo.Station, 0, len(resp.Sources))
	for _, src := range resp.Sources {
		id := src.DWDStationID
		if id == "" {
			id = fmt.Sprintf("brightsky-%d", src.ID)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		obsTypes[id] = src.ObservationType
		stations = append(stations, geo.Station{
			ID:    id,
			Name:  src.StationName,
			Coord: geo.Coordinate{Lat: src.Lat, Lon: src.Lon},
		})
	}
	return stations, obsTypes, nil
}

// -- error mapping ------------------------------------------------------------

// The resolution core only reports structured error kinds; turning them
// into user-facing messages happens here.

func resolveError(location string, err error) error {
	switch geo.KindOf(err) {
	case geo.MalformedCoordinates:
		return fmt.Errorf("invalid location input: %v (use decimal coordinates like '50.7753,6.0839' or a place name)", err)
	case geo.NotFound:
		return fmt.Errorf("location %q not found; try coordinates (lat,lon) or a known German city name", location)
	case geo.UpstreamUnavailable:
		return fmt.Errorf("geocoding service is currently unavailable, please retry: %v", err)
	default:
		return err
	}
}

func weatherError(err error) error {
	switch {
	case errors.Is(err, brightsky.ErrNoData):
		return errors.New("no weather data found for the given location")
	case errors.Is(err, brightsky.ErrUpstream):
		return fmt.Errorf("weather service is currently unavailable, please retry: %v", err)
	default:
		return err
	}
}

func invalidParameterError(err error) error {
	return fmt.Errorf("invalid parameter: %v", err)
}
