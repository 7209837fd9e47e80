// Package server exposes the extraction workflow over HTTP: batch uploads,
// history reads, artifact downloads, and spreadsheet export.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"declascan/internal/artifacts"
	"declascan/internal/export"
	"declascan/internal/ledger"
	"declascan/internal/pipeline"
)

// Service wires the HTTP surface to the processing pipeline and ledger.
type Service struct {
	logger       *slog.Logger
	proc         *pipeline.Processor
	led          *ledger.Ledger
	export       *export.Service
	artifacts    *artifacts.Writer
	uploadDir    string
	maxUpload    int64
	historyLimit int
}

func NewService(
	logger *slog.Logger,
	proc *pipeline.Processor,
	led *ledger.Ledger,
	exp *export.Service,
	art *artifacts.Writer,
	uploadDir string,
	maxUpload int64,
	historyLimit int,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Service{
		logger:       logger,
		proc:         proc,
		led:          led,
		export:       exp,
		artifacts:    art,
		uploadDir:    uploadDir,
		maxUpload:    maxUpload,
		historyLimit: historyLimit,
	}
}

// Routes builds the router for the /api surface.
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/history", s.handleHistory)
		r.Post("/extract/batch", s.handleBatchExtract)
		r.Get("/download/{name}", s.handleDownload)
		r.Get("/export/xlsx", s.handleExportXLSX)
	})
	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"storage": "flat-files",
	})
}

// handleHistory serves the dashboard: the most recent ledger entries,
// newest first. A damaged store reads as empty, never as a 500.
func (s *Service) handleHistory(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.led.Recent(s.historyLimit))
}

func (s *Service) handleExportXLSX(w http.ResponseWriter, _ *http.Request) {
	data, err := s.export.HistoryXLSX()
	if err != nil {
		s.logger.Error("history export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="history.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Service) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
