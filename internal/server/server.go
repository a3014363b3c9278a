// Package server exposes the calculator suite over HTTP: a JSON API per
// tool, export and history endpoints, and the embedded web UI.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/t4p/competition-toolkit/internal/config"
	"github.com/t4p/competition-toolkit/internal/currency"
	"github.com/t4p/competition-toolkit/internal/history"
	"github.com/t4p/competition-toolkit/pkg/constants"
	"github.com/t4p/competition-toolkit/pkg/merger"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	validate    *validator.Validate
	store       *history.Store
	rates       *currency.Client
	cfg         *config.Configuration
	thresholds  merger.Thresholds
	recentLimit int
	maxBodySize int64
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// calculator API.
func NewHandler(cfg *config.Configuration, store *history.Store, rates *currency.Client, logger *zap.Logger, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:   logger,
		validate: validator.New(),
		store:    store,
		rates:    rates,
		cfg:      cfg,
		thresholds: merger.Thresholds{
			Global:   cfg.Thresholds.Global,
			Local:    cfg.Thresholds.Local,
			Currency: cfg.Thresholds.Currency,
		},
		recentLimit: cfg.History.RecentLimit,
		maxBodySize: cfg.Server.MaxBodySize,
		version:     trimmedVersion,
		now:         time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/hhi", h.handleHHI)
		r.Post("/merger", h.handleMerger)
		r.Get("/compliance/questions", h.handleComplianceQuestions)
		r.Post("/compliance", h.handleCompliance)
		r.Post("/dominance", h.handleDominance)

		r.Post("/{tool}/export", h.handleExport)

		r.Get("/history/{module}", h.handleHistoryRecent)
		r.Get("/history/{module}/summary", h.handleHistorySummary)
		r.Delete("/history/{module}", h.handleHistoryClear)

		r.Get("/config", h.handleConfigExport)
		r.Get("/version", h.handleVersion)
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleConfigExport serializes the effective configuration (defaults
// applied) as a YAML download.
func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	data, err := yaml.Marshal(h.cfg)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to serialize configuration: %v", err), "server.handleConfigExport")
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.DefaultConfigFile))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write configuration export", zap.Error(err))
	}
}

// decode reads a JSON request body into dst and runs struct validation.
// The body is capped at the configured limit.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request: %v", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %s", validationMessage(err))
	}
	return nil
}

// validationMessage flattens validator errors into a single readable line.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		parts = append(parts, fmt.Sprintf("%s fails %q", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return strings.Join(parts, "; ")
}

// recordHistory appends a calculation to the history log best-effort: a
// failed append is logged but never fails the calculation response.
func (h *handler) recordHistory(module string, inputs, result map[string]interface{}) {
	if h.store == nil {
		return
	}
	if _, err := h.store.Append(module, inputs, result); err != nil {
		h.logger.Warn("failed to record calculation history",
			zap.String("op", "server.recordHistory"),
			zap.String("module", module),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// summaryFields maps each module to the result field its history summary
// tallies.
var summaryFields = map[string]string{
	constants.ModuleHHI:        "band",
	constants.ModuleMerger:     "notifiable",
	constants.ModuleCompliance: "level",
	constants.ModuleDominance:  "level",
}

func knownModule(module string) bool {
	_, ok := summaryFields[module]
	return ok
}
