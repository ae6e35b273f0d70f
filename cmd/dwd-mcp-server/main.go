// dwd-mcp-server serves German weather-service data (current conditions,
// forecasts, alerts, station lookup) as MCP tools over stdio or HTTP.
//
// Run over stdio (the default, for MCP clients that spawn the server):
//
//	dwd-mcp-server
//
// Run over streamable HTTP:
//
//	dwd-mcp-server -http :8080
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dwd-mcp-server/internal/brightsky"
	"dwd-mcp-server/internal/config"
	"dwd-mcp-server/internal/geo"
	"dwd-mcp-server/internal/server"
)

var (
	httpAddr = flag.String("http", "", "serve MCP over HTTP on this address instead of stdio")
	debug    = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *debug {
		cfg.Debug = true
	}

	// Stdout is the stdio transport's wire; all logging goes to stderr.
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	resolver := geo.NewResolver(
		geo.NewGazetteer(geo.GermanCities),
		geo.NewNominatimClient(
			geo.WithNominatimBaseURL(cfg.NominatimBaseURL),
			geo.WithGeocodeTimeout(cfg.GeocodeTimeout),
		),
		logger,
	)
	weather := brightsky.NewClient(
		brightsky.WithBaseURL(cfg.BrightSkyBaseURL),
		brightsky.WithTimeout(cfg.BrightSkyTimeout),
		brightsky.WithLogger(logger),
	)
	srv := server.New(resolver, weather, geo.NewLocator(geo.DWDStations), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.HTTPAddr != "" {
		runHTTP(ctx, cfg.HTTPAddr, srv, logger)
		return
	}

	logger.Info("starting DWD weather MCP server on stdio", "version", server.Version)
	if err := srv.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func runHTTP(ctx context.Context, addr string, srv *server.Server, logger *slog.Logger) {
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.HTTPHandler(),
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting DWD weather MCP server on HTTP", "addr", addr, "version", server.Version)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
