// goraster-server runs the PDF rasterization HTTP service.
package main

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/drummonds/goRaster/config"
	"github.com/drummonds/goRaster/converter"
	"github.com/drummonds/goRaster/pdfrenderer"
	"github.com/drummonds/goRaster/server"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// injectGlobals injects all of our globals into their packages
func injectGlobals(logger *slog.Logger) {
	Logger = logger
	config.Logger = Logger
	server.Logger = Logger
}

func main() {
	serverConfig, logger := config.SetupServer()
	injectGlobals(logger) //inject the logger into all of the packages

	Logger.Info("Setting up rasterization engine", "kind", serverConfig.EngineKind)
	engine, err := pdfrenderer.NewEngine(serverConfig.EngineKind)
	if err != nil {
		Logger.Error("Failed to create rasterization engine", "error", err)
		return
	}
	defer engine.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	if serverConfig.LogRequests {
		e.Use(middleware.Logger())
	}

	serverHandler := &server.ServerHandler{
		Echo:         e,
		ServerConfig: serverConfig,
		Converter:    converter.New(engine, logger),
	}
	serverHandler.RegisterRoutes()

	listenAddr := serverConfig.ListenAddrIP + ":" + serverConfig.ListenAddrPort
	Logger.Info("Starting goRaster server", "addr", listenAddr)
	if err := e.Start(listenAddr); err != nil {
		Logger.Error("Server stopped", "error", err)
	}
}
