// Package app contains the application setup for the inventory service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/vblinov/invtrack/internal/config"
	"github.com/vblinov/invtrack/internal/inventory/core"
	"github.com/vblinov/invtrack/internal/inventory/service"
	"github.com/vblinov/invtrack/internal/inventory/transport/rest"
	"github.com/vblinov/invtrack/pkg/server"
	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	InventoryService service.InventoryService
	Logger           *slog.Logger
}

// SetupDependencies builds the service over a fresh, empty inventory.
// State lives here and is passed down explicitly; nothing is global.
func SetupDependencies(logger *slog.Logger) *Dependencies {
	iService := service.NewService(core.NewInventory())

	return &Dependencies{
		InventoryService: iService,
		Logger:           logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the inventory service.
// Used by tests to exercise the full HTTP surface without a listener.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the inventory service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	inventoryHandler := rest.NewHandler(deps.InventoryService, deps.Logger)
	inventoryHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the inventory service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
