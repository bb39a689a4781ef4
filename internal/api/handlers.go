// Package api exposes generation over HTTP. Dataset configs come in as
// YAML request bodies; generated tables go out as JSON.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/mmrzaf/synthgen/internal/app"
	"github.com/mmrzaf/synthgen/internal/domain"
	"gopkg.in/yaml.v3"
)

type Handler struct {
	runService *app.RunService
	registry   kindLister
}

type kindLister interface {
	Kinds() []domain.Kind
}

func NewHandler(runService *app.RunService, registry kindLister) *Handler {
	return &Handler{runService: runService, registry: registry}
}

// GenerateDataset accepts a dataset config as the request body and
// returns the generated table without persisting anything.
func (h *Handler) GenerateDataset(w http.ResponseWriter, r *http.Request) {
	cfg, err := decodeConfig(r)
	if err != nil {
		http.Error(w, "invalid config body: "+err.Error(), http.StatusBadRequest)
		return
	}

	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	result, err := h.runService.Preview(cfg, app.RunOptions{}, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if result.Lines != nil {
		writeJSON(w, map[string]interface{}{"lines": result.Lines})
		return
	}
	writeJSON(w, map[string]interface{}{
		"columns": result.Table.Columns,
		"rows":    result.Table.Rows,
	})
}

// RunDataset runs a config end to end, sink write and run record
// included, and returns the run.
func (h *Handler) RunDataset(w http.ResponseWriter, r *http.Request) {
	cfg, err := decodeConfig(r)
	if err != nil {
		http.Error(w, "invalid config body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.runService.Generate(cfg, app.RunOptions{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Run)
}

func (h *Handler) ListKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.registry.Kinds())
}

func (h *Handler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	list, err := h.runService.ListConfigs()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	cfg, err := h.runService.GetConfig(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, cfg)
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	status := r.URL.Query().Get("status")

	runs, err := h.runService.ListRuns(limit, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := h.runService.GetRun(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, run)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func decodeConfig(r *http.Request) (*domain.DatasetConfig, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var cfg domain.DatasetConfig
	if err := yaml.Unmarshal(body, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
