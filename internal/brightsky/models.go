// Package brightsky is the client for the Bright Sky API, which serves
// DWD open weather data (observations, forecasts, alerts, station
// metadata) as JSON. It also reshapes raw readings into the compact
// structures the tool layer returns to agents.
package brightsky

// Source is a DWD observation station as reported by Bright Sky alongside
// each reading and by the /sources endpoint.
type Source struct {
	ID              int64    `json:"id"`
	DWDStationID    string   `json:"dwd_station_id"`
	WMOStationID    string   `json:"wmo_station_id"`
	StationName     string   `json:"station_name"`
	ObservationType string   `json:"observation_type"`
	Lat             float64  `json:"lat"`
	Lon             float64  `json:"lon"`
	HeightM         *float64 `json:"height"`
	DistanceM       *float64 `json:"distance"`
}

// CurrentRecord is one observation from /current_weather. Readings that a
// station does not report come back as null, hence the pointer fields.
type CurrentRecord struct {
	Timestamp           string   `json:"timestamp"`
	Temperature         *float64 `json:"temperature"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	RelativeHumidity    *float64 `json:"relative_humidity"`
	WindSpeed10         *float64 `json:"wind_speed_10"`
	WindDirection10     *float64 `json:"wind_direction_10"`
	WindGustSpeed10     *float64 `json:"wind_gust_speed_10"`
	Precipitation10     *float64 `json:"precipitation_10"`
	PressureMSL         *float64 `json:"pressure_msl"`
	Visibility          *float64 `json:"visibility"`
	CloudCover          *float64 `json:"cloud_cover"`
	DewPoint            *float64 `json:"dew_point"`
	Condition           string   `json:"condition"`
	Icon                string   `json:"icon"`
}

// CurrentWeatherResponse is the /current_weather payload.
type CurrentWeatherResponse struct {
	Weather CurrentRecord `json:"weather"`
	Sources []Source      `json:"sources"`
}

// HourlyRecord is one hourly entry from /weather.
type HourlyRecord struct {
	Timestamp                string   `json:"timestamp"`
	Temperature              *float64 `json:"temperature"`
	Precipitation            *float64 `json:"precipitation"`
	PrecipitationProbability *float64 `json:"precipitation_probability"`
	WindSpeed                *float64 `json:"wind_speed"`
	WindDirection            *float64 `json:"wind_direction"`
	CloudCover               *float64 `json:"cloud_cover"`
	Condition                string   `json:"condition"`
	Icon                     string   `json:"icon"`
}

// WeatherResponse is the /weather (forecast) payload.
type WeatherResponse struct {
	Weather []HourlyRecord `json:"weather"`
	Sources []Source       `json:"sources"`
}

// Alert is one DWD warning from /alerts. German and English variants are
// both present; the formatter prefers German.
type Alert struct {
	ID            int64  `json:"id"`
	AlertID       string `json:"alert_id"`
	Effective     string `json:"effective"`
	Onset         string `json:"onset"`
	Expires       string `json:"expires"`
	Category      string `json:"category"`
	Urgency       string `json:"urgency"`
	Severity      string `json:"severity"`
	Certainty     string `json:"certainty"`
	EventEN       string `json:"event_en"`
	EventDE       string `json:"event_de"`
	HeadlineEN    string `json:"headline_en"`
	HeadlineDE    string `json:"headline_de"`
	DescriptionEN string `json:"description_en"`
	DescriptionDE string `json:"description_de"`
	InstructionEN string `json:"instruction_en"`
	InstructionDE string `json:"instruction_de"`
}

// AlertLocation identifies the warn cell the queried coordinate falls in.
type AlertLocation struct {
	WarnCellID int64  `json:"warn_cell_id"`
	Name       string `json:"name"`
	NameShort  string `json:"name_short"`
	District   string `json:"district"`
	State      string `json:"state"`
	StateShort string `json:"state_short"`
}

// AlertsResponse is the /alerts payload. Location is only present for
// coordinate-filtered queries.
type AlertsResponse struct {
	Alerts   []Alert        `json:"alerts"`
	Location *AlertLocation `json:"location"`
}

// SourcesResponse is the /sources payload.
type SourcesResponse struct {
	Sources []Source `json:"sources"`
}
