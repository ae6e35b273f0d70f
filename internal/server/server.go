// Package server exposes the weather operations as MCP tools.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dwd-mcp-server/internal/brightsky"
	"dwd-mcp-server/internal/geo"
)

// Version is the server version reported during MCP initialization.
const Version = "1.0.0"

// Server bundles the resolution core and the weather client behind the
// four MCP tools. It holds only immutable configuration after
// construction and is safe for concurrent tool invocations.
type Server struct {
	resolver *geo.Resolver
	weather  *brightsky.Client
	locator  *geo.Locator
	validate *validator.Validate
	logger   *slog.Logger
}

// New wires a Server from its collaborators. A nil locator defaults to
// the compiled-in DWD station index; a nil logger disables logging.
func New(resolver *geo.Resolver, weather *brightsky.Client, locator *geo.Locator, logger *slog.Logger) *Server {
	if locator == nil {
		locator = geo.NewLocator(geo.DWDStations)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		resolver: resolver,
		weather:  weather,
		locator:  locator,
		validate: validator.New(),
		logger:   logger,
	}
}

// MCPServer builds the MCP server with all four weather tools
// registered.
func (s *Server) MCPServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "dwd-weather", Version: Version}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "get_current_weather",
		Description: "Aktuelles Wetter für einen Ort abrufen. Gibt Temperatur, Luftfeuchtigkeit, " +
			"Wind, Niederschlag, Bewölkung und weitere aktuelle Wetterdaten zurück.",
	}, s.getCurrentWeather)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "get_weather_forecast",
		Description: "Wettervorhersage für einen Ort abrufen. Gibt stündliche Vorhersagedaten sowie " +
			"eine Tageszusammenfassung mit Minimal-/Maximaltemperaturen und Niederschlagssummen zurück.",
	}, s.getWeatherForecast)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "get_weather_alerts",
		Description: "Amtliche Wetterwarnungen abrufen. Gibt aktuelle Wetterwarnungen des DWD zurück, " +
			"inklusive Warntyp, Schweregrad, Beschreibung und Gültigkeitszeitraum. Kann für einen " +
			"bestimmten Ort oder deutschlandweit abgefragt werden.",
	}, s.getWeatherAlerts)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "find_weather_station",
		Description: "Nächstgelegene DWD-Wetterstationen finden. Gibt eine Liste der Wetterstationen " +
			"in der Nähe des angegebenen Ortes zurück, inklusive Stationsname, ID und Entfernung.",
	}, s.findWeatherStation)

	return srv
}

// HTTPHandler returns a streamable-HTTP handler serving the MCP server,
// for multi-client deployments.
func (s *Server) HTTPHandler() http.Handler {
	srv := s.MCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return srv },
		nil,
	)
}
