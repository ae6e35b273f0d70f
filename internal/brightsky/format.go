package brightsky

import (
	"math"
	"sort"
	"time"
)

// German weekday names indexed by time.Weekday (Sunday = 0).
var (
	weekdayShort = [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}
	weekdayLong  = [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}
)

// compass holds the German 8-point wind rose, 45 degrees per sector
// centered on each direction.
var compass = [8]string{"N", "NO", "O", "SO", "S", "SW", "W", "NW"}

// WindDirectionText converts wind direction degrees to German compass
// text. A nil reading yields "unbekannt".
func WindDirectionText(degrees *float64) string {
	if degrees == nil {
		return "unbekannt"
	}
	d := math.Mod(*degrees, 360)
	if d < 0 {
		d += 360
	}
	return compass[int((d+22.5)/45)%8]
}

// FormatTimestamp renders an ISO 8601 timestamp as a short German
// date/time, e.g. "Sa, 15.02.2026 14:00". Unparseable input is returned
// verbatim; empty input yields "unbekannt".
func FormatTimestamp(iso string) string {
	if iso == "" {
		return "unbekannt"
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return weekdayShort[t.Weekday()] + ", " + t.Format("02.01.2006 15:04")
}

// CurrentConditions is the compact current-weather structure returned to
// agents. Readings the station did not report stay null.
type CurrentConditions struct {
	Timestamp            string   `json:"timestamp"`
	TemperatureC         *float64 `json:"temperature_c"`
	FeelsLikeC           *float64 `json:"feels_like_c"`
	HumidityPercent      *float64 `json:"humidity_percent"`
	WindSpeedKmh         *float64 `json:"wind_speed_kmh"`
	WindDirection        string   `json:"wind_direction"`
	WindDirectionDegrees *float64 `json:"wind_direction_degrees"`
	WindGustKmh          *float64 `json:"wind_gust_kmh"`
	PrecipitationMm      *float64 `json:"precipitation_mm"`
	PressureHpa          *float64 `json:"pressure_hpa"`
	VisibilityM          *float64 `json:"visibility_m"`
	CloudCoverPercent    *float64 `json:"cloud_cover_percent"`
	DewPointC            *float64 `json:"dew_point_c"`
	Condition            string   `json:"condition"`
	Icon                 string   `json:"icon"`
	StationName          string   `json:"station_name,omitempty"`
	StationDistanceM     *float64 `json:"station_distance_m,omitempty"`
}

// FormatCurrent reshapes a /current_weather response.
func FormatCurrent(resp *CurrentWeatherResponse) CurrentConditions {
	var station Source
	if len(resp.Sources) > 0 {
		station = resp.Sources[0]
	}
	w := resp.Weather
	return CurrentConditions{
		Timestamp:            FormatTimestamp(w.Timestamp),
		TemperatureC:         w.Temperature,
		FeelsLikeC:           w.ApparentTemperature,
		HumidityPercent:      w.RelativeHumidity,
		WindSpeedKmh:         w.WindSpeed10,
		WindDirection:        WindDirectionText(w.WindDirection10),
		WindDirectionDegrees: w.WindDirection10,
		WindGustKmh:          w.WindGustSpeed10,
		PrecipitationMm:      w.Precipitation10,
		PressureHpa:          w.PressureMSL,
		VisibilityM:          w.Visibility,
		CloudCoverPercent:    w.CloudCover,
		DewPointC:            w.DewPoint,
		Condition:            w.Condition,
		Icon:                 w.Icon,
		StationName:          station.StationName,
		StationDistanceM:     station.DistanceM,
	}
}

// ForecastHour is one hourly forecast entry.
type ForecastHour struct {
	Timestamp                       string   `json:"timestamp"`
	TemperatureC                    *float64 `json:"temperature_c"`
	PrecipitationMm                 *float64 `json:"precipitation_mm"`
	PrecipitationProbabilityPercent *float64 `json:"precipitation_probability_percent"`
	WindSpeedKmh                    *float64 `json:"wind_speed_kmh"`
	WindDirection                   string   `json:"wind_direction"`
	CloudCoverPercent               *float64 `json:"cloud_cover_percent"`
	Condition                       string   `json:"condition"`
	Icon                            string   `json:"icon"`
}

// ForecastDay summarizes one forecast day.
type ForecastDay struct {
	Date                               string   `json:"date"`
	Weekday                            string   `json:"weekday"`
	TempMinC                           *float64 `json:"temp_min_c"`
	TempMaxC                           *float64 `json:"temp_max_c"`
	PrecipitationTotalMm               float64  `json:"precipitation_total_mm"`
	PrecipitationProbabilityMaxPercent *float64 `json:"precipitation_probability_max_percent"`
	Condition                          string   `json:"condition"`
}

// Forecast is the reshaped /weather response: hourly entries plus per-day
// summaries.
type Forecast struct {
	Hourly       []ForecastHour `json:"hourly"`
	DailySummary []ForecastDay  `json:"daily_summary"`
	StationName  string         `json:"station_name,omitempty"`
}

// FormatForecast reshapes a /weather response into hourly entries and
// daily summaries (min/max temperature, precipitation totals, dominant
// condition).
func FormatForecast(resp *WeatherResponse) Forecast {
	var station Source
	if len(resp.Sources) > 0 {
		station = resp.Sources[0]
	}

	hourly := make([]ForecastHour, 0, len(resp.Weather))
	byDate := make(map[string][]HourlyRecord)
	for _, rec := range resp.Weather {
		hourly = append(hourly, ForecastHour{
			Timestamp:                       FormatTimestamp(rec.Timestamp),
			TemperatureC:                    rec.Temperature,
			PrecipitationMm:                 rec.Precipitation,
			PrecipitationProbabilityPercent: rec.PrecipitationProbability,
			WindSpeedKmh:                    rec.WindSpeed,
			WindDirection:                   WindDirectionText(rec.WindDirection),
			CloudCoverPercent:               rec.CloudCover,
			Condition:                       rec.Condition,
			Icon:                            rec.Icon,
		})
		if len(rec.Timestamp) >= 10 {
			date := rec.Timestamp[:10]
			byDate[date] = append(byDate[date], rec)
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	daily := make([]ForecastDay, 0, len(dates))
	for _, date := range dates {
		daily = append(daily, summarizeDay(date, byDate[date]))
	}

	return Forecast{
		Hourly:       hourly,
		DailySummary: daily,
		StationName:  station.StationName,
	}
}

func summarizeDay(date string, recs []HourlyRecord) ForecastDay {
	day := ForecastDay{Date: date, Weekday: date}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		day.Weekday = weekdayLong[t.Weekday()]
	}

	var precipTotal float64
	conditionCount := make(map[string]int)
	for _, rec := range recs {
		if rec.Temperature != nil {
			if day.TempMinC == nil || *rec.Temperature < *day.TempMinC {
				v := *rec.Temperature
				day.TempMinC = &v
			}
			if day.TempMaxC == nil || *rec.Temperature > *day.TempMaxC {
				v := *rec.Temperature
				day.TempMaxC = &v
			}
		}
		if rec.Precipitation != nil {
			precipTotal += *rec.Precipitation
		}
		if rec.PrecipitationProbability != nil {
			if day.PrecipitationProbabilityMaxPercent == nil || *rec.PrecipitationProbability > *day.PrecipitationProbabilityMaxPercent {
				v := *rec.PrecipitationProbability
				day.PrecipitationProbabilityMaxPercent = &v
			}
		}
		if rec.Condition != "" {
			conditionCount[rec.Condition]++
		}
	}
	day.PrecipitationTotalMm = math.Round(precipTotal*10) / 10

	// Dominant condition: most frequent, alphabetical tie-break for
	// deterministic output.
	best := 0
	for cond, n := range conditionCount {
		if n > best || (n == best && (day.Condition == "" || cond < day.Condition)) {
			best = n
			day.Condition = cond
		}
	}
	return day
}

// AlertSummary is one reshaped DWD warning. German text is preferred,
// falling back to English when no German variant exists.
type AlertSummary struct {
	Headline    string `json:"headline"`
	HeadlineEN  string `json:"headline_en,omitempty"`
	Severity    string `json:"severity"`
	Event       string `json:"event"`
	EventEN     string `json:"event_en,omitempty"`
	Description string `json:"description,omitempty"`
	Instruction string `json:"instruction,omitempty"`
	Onset       string `json:"onset"`
	Expires     string `json:"expires"`
	Effective   string `json:"effective"`
}

// AlertRegion describes the warn cell a coordinate-filtered alert query
// resolved to.
type AlertRegion struct {
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}

// AlertReport is the reshaped /alerts response.
type AlertReport struct {
	AlertCount int            `json:"alert_count"`
	Alerts     []AlertSummary `json:"alerts"`
	Region     *AlertRegion   `json:"region,omitempty"`
}

func preferGerman(de, en string) string {
	if de != "" {
		return de
	}
	return en
}

// FormatAlerts reshapes an /alerts response.
func FormatAlerts(resp *AlertsResponse) AlertReport {
	alerts := make([]AlertSummary, 0, len(resp.Alerts))
	for _, a := range resp.Alerts {
		alerts = append(alerts, AlertSummary{
			Headline:    preferGerman(a.HeadlineDE, a.HeadlineEN),
			HeadlineEN:  a.HeadlineEN,
			Severity:    a.Severity,
			Event:       preferGerman(a.EventDE, a.EventEN),
			EventEN:     a.EventEN,
			Description: preferGerman(a.DescriptionDE, a.DescriptionEN),
			Instruction: preferGerman(a.InstructionDE, a.InstructionEN),
			Onset:       FormatTimestamp(a.Onset),
			Expires:     FormatTimestamp(a.Expires),
			Effective:   FormatTimestamp(a.Effective),
		})
	}

	report := AlertReport{AlertCount: len(alerts), Alerts: alerts}
	if resp.Location != nil {
		report.Region = &AlertRegion{
			Name:     resp.Location.Name,
			District: resp.Location.District,
			State:    resp.Location.State,
		}
	}
	return report
}
