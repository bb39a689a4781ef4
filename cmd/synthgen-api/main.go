package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/mmrzaf/synthgen/internal/api"
	"github.com/mmrzaf/synthgen/internal/app"
	"github.com/mmrzaf/synthgen/internal/config"
	"github.com/mmrzaf/synthgen/internal/infra/repos/configs"
	"github.com/mmrzaf/synthgen/internal/infra/repos/runs"
	"github.com/mmrzaf/synthgen/internal/logging"
	"github.com/mmrzaf/synthgen/internal/registry"
)

func main() {
	cfg := config.Load()

	configsDir := flag.String("configs-dir", cfg.ConfigsDir, "Dataset configs directory")
	runsDB := flag.String("runs-db", cfg.RunsDBPath, "Run history sqlite database path")
	bindAddr := flag.String("bind", cfg.BindAddr, "Bind address")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	logger := logging.NewLogger(*logLevel)

	configRepo := configs.NewFileRepository(*configsDir)

	runRepo := runs.NewSQLiteRepository(*runsDB)
	if err := runRepo.Init(); err != nil {
		logger.Fatal("Failed to open run history database: %v", err)
	}
	defer runRepo.Close()

	genRegistry := registry.Default()
	runService := app.NewRunService(configRepo, runRepo, genRegistry, logger)

	handler := api.NewHandler(runService, genRegistry)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handler.Health)
	mux.HandleFunc("GET /api/v1/kinds", handler.ListKinds)

	mux.HandleFunc("GET /api/v1/configs", handler.ListConfigs)
	mux.HandleFunc("GET /api/v1/configs/{id}", handler.GetConfig)

	mux.HandleFunc("POST /api/v1/datasets/generate", handler.GenerateDataset)
	mux.HandleFunc("POST /api/v1/runs", handler.RunDataset)
	mux.HandleFunc("GET /api/v1/runs", handler.ListRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", handler.GetRun)

	logger.Info("Listening on %s", *bindAddr)
	if err := http.ListenAndServe(*bindAddr, loggingMiddleware(logger, mux)); err != nil {
		logger.Fatal("Server failed: %v", err)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		logf := logger.Info
		if sw.status >= 500 {
			logf = logger.Error
		} else if sw.status >= 400 {
			logf = logger.Warn
		}
		logf("%s %s -> %d (%dms)", r.Method, r.URL.Path, sw.status, time.Since(started).Milliseconds())
	})
}
