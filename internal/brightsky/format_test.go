package brightsky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestWindDirectionText(t *testing.T) {
	tests := []struct {
		degrees *float64
		want    string
	}{
		{nil, "unbekannt"},
		{f(0), "N"},
		{f(10), "N"},
		{f(22.5), "NO"},
		{f(45), "NO"},
		{f(90), "O"},
		{f(135), "SO"},
		{f(180), "S"},
		{f(225), "SW"},
		{f(270), "W"},
		{f(315), "NW"},
		{f(337.5), "N"},
		{f(359.9), "N"},
		{f(360), "N"},
		{f(720.0 + 90.0), "O"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WindDirectionText(tt.degrees))
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Sa, 29.08.2026 14:00", FormatTimestamp("2026-08-29T14:00:00+02:00"))
	assert.Equal(t, "So, 30.08.2026 09:30", FormatTimestamp("2026-08-30T09:30:00+02:00"))
	assert.Equal(t, "unbekannt", FormatTimestamp(""))
	assert.Equal(t, "not-a-timestamp", FormatTimestamp("not-a-timestamp"))
}

func TestFormatCurrent(t *testing.T) {
	resp := &CurrentWeatherResponse{
		Weather: CurrentRecord{
			Timestamp:           "2026-08-29T14:00:00+02:00",
			Temperature:         f(21.4),
			ApparentTemperature: f(20.9),
			RelativeHumidity:    f(65),
			WindSpeed10:         f(14.5),
			WindDirection10:     f(250),
			CloudCover:          f(75),
			Condition:           "partly-cloudy",
		},
		Sources: []Source{
			{StationName: "Aachen-Orsbach", DWDStationID: "15000", DistanceM: f(3250)},
			{StationName: "Köln/Bonn", DWDStationID: "02667"},
		},
	}

	out := FormatCurrent(resp)
	assert.Equal(t, "Sa, 29.08.2026 14:00", out.Timestamp)
	assert.Equal(t, 21.4, *out.TemperatureC)
	assert.Equal(t, 20.9, *out.FeelsLikeC)
	assert.Equal(t, "W", out.WindDirection)
	assert.Equal(t, 250.0, *out.WindDirectionDegrees)
	assert.Equal(t, "partly-cloudy", out.Condition)
	assert.Equal(t, "Aachen-Orsbach", out.StationName, "first source wins")
	assert.Equal(t, 3250.0, *out.StationDistanceM)
	assert.Nil(t, out.PrecipitationMm, "missing readings stay null")
}

func TestFormatCurrentWithoutSources(t *testing.T) {
	out := FormatCurrent(&CurrentWeatherResponse{})
	assert.Empty(t, out.StationName)
	assert.Nil(t, out.StationDistanceM)
	assert.Equal(t, "unbekannt", out.Timestamp)
}

func TestFormatForecastDailySummary(t *testing.T) {
	resp := &WeatherResponse{
		Weather: []HourlyRecord{
			{Timestamp: "2026-08-29T10:00:00+02:00", Temperature: f(18), Precipitation: f(0.4), PrecipitationProbability: f(30), Condition: "rain"},
			{Timestamp: "2026-08-29T11:00:00+02:00", Temperature: f(22), Precipitation: f(0.13), PrecipitationProbability: f(55), Condition: "cloudy"},
			{Timestamp: "2026-08-29T12:00:00+02:00", Temperature: f(24.5), Precipitation: nil, Condition: "cloudy"},
			{Timestamp: "2026-08-30T10:00:00+02:00", Temperature: f(16), Precipitation: f(2.0), PrecipitationProbability: f(80), Condition: "rain"},
		},
		Sources: []Source{{StationName: "Aachen-Orsbach"}},
	}

	out := FormatForecast(resp)
	require.Len(t, out.Hourly, 4)
	assert.Equal(t, "Sa, 29.08.2026 10:00", out.Hourly[0].Timestamp)
	assert.Equal(t, "Aachen-Orsbach", out.StationName)

	require.Len(t, out.DailySummary, 2)
	sat := out.DailySummary[0]
	assert.Equal(t, "2026-08-29", sat.Date)
	assert.Equal(t, "Samstag", sat.Weekday)
	assert.Equal(t, 18.0, *sat.TempMinC)
	assert.Equal(t, 24.5, *sat.TempMaxC)
	assert.Equal(t, 0.5, sat.PrecipitationTotalMm, "totals rounded to one decimal")
	assert.Equal(t, 55.0, *sat.PrecipitationProbabilityMaxPercent)
	assert.Equal(t, "cloudy", sat.Condition, "dominant condition wins")

	sun := out.DailySummary[1]
	assert.Equal(t, "Sonntag", sun.Weekday)
	assert.Equal(t, "rain", sun.Condition)
}

func TestFormatForecastEmpty(t *testing.T) {
	out := FormatForecast(&WeatherResponse{})
	assert.Empty(t, out.Hourly)
	assert.Empty(t, out.DailySummary)
}

func TestFormatAlertsPrefersGerman(t *testing.T) {
	resp := &AlertsResponse{
		Alerts: []Alert{
			{
				HeadlineDE:    "Amtliche WARNUNG vor STURMBÖEN",
				HeadlineEN:    "Official WARNING of WIND GUSTS",
				EventDE:       "Sturmböen",
				EventEN:       "wind gusts",
				DescriptionEN: "There is a risk of wind gusts.",
				Severity:      "moderate",
				Onset:         "2026-08-29T12:00:00+02:00",
				Expires:       "2026-08-29T20:00:00+02:00",
			},
		},
		Location: &AlertLocation{Name: "Stadt Aachen", District: "Städteregion Aachen", State: "Nordrhein-Westfalen"},
	}

	out := FormatAlerts(resp)
	assert.Equal(t, 1, out.AlertCount)
	require.Len(t, out.Alerts, 1)

	a := out.Alerts[0]
	assert.Equal(t, "Amtliche WARNUNG vor STURMBÖEN", a.Headline)
	assert.Equal(t, "Official WARNING of WIND GUSTS", a.HeadlineEN)
	assert.Equal(t, "Sturmböen", a.Event)
	assert.Equal(t, "There is a risk of wind gusts.", a.Description, "English fallback when no German text")
	assert.Equal(t, "Sa, 29.08.2026 12:00", a.Onset)

	require.NotNil(t, out.Region)
	assert.Equal(t, "Stadt Aachen", out.Region.Name)
	assert.Equal(t, "Nordrhein-Westfalen", out.Region.State)
}

func TestFormatAlertsEmpty(t *testing.T) {
	out := FormatAlerts(&AlertsResponse{})
	assert.Zero(t, out.AlertCount)
	assert.Empty(t, out.Alerts)
	assert.Nil(t, out.Region)
}
