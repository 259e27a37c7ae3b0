package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwaldner/bsm/internal/config"
	"github.com/jwaldner/bsm/internal/functions"
	"github.com/jwaldner/bsm/internal/handlers"
	"github.com/jwaldner/bsm/internal/logger"
	"github.com/jwaldner/bsm/internal/metrics"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("🚀 BSM function server starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - every evaluation will be logged to %s\n", cfg.Logging.LogFile)
	}

	catalog := functions.New(cfg.Display.Category)
	logger.Info.Printf("📚 %d functions registered in category %s", len(catalog.List()), cfg.Display.Category)

	var reg *metrics.Registry
	if cfg.MetricsEnabled {
		reg = metrics.NewRegistry()
		logger.Info.Printf("📈 Prometheus metrics enabled at /metrics")
	}

	// Setup router
	r := mux.NewRouter()
	handlers.NewFunctionsHandler(catalog, cfg, reg).RegisterRoutes(r)

	// Start server
	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
