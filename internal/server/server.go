// Package server exposes the import and runway pipelines over HTTP. The
// handlers are a thin boundary: they decode, delegate, and encode. Import
// failures never surface as request failures; a degraded payload with
// warnings is still a 200.
package server

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/avalle/asset-runway/internal/importer"
	"github.com/avalle/asset-runway/internal/optimizer"
	"github.com/avalle/asset-runway/internal/simulation"
	"github.com/avalle/asset-runway/pkg/constants"
	"github.com/avalle/asset-runway/pkg/document"
	"github.com/avalle/asset-runway/pkg/marketdata"
	"github.com/avalle/asset-runway/pkg/validation"
)

type handler struct {
	logger        *zap.Logger
	analyzer      *importer.Analyzer
	simulator     *simulation.Simulator
	runner        *optimizer.Runner
	quotes        *marketdata.Client
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the import and runway
// API.
func NewHandler(logger *zap.Logger, generator importer.TextGenerator, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.MaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		analyzer:      importer.NewAnalyzer(generator, logger),
		simulator:     simulation.NewSimulator(logger),
		runner:        optimizer.NewRunner(logger),
		quotes:        marketdata.NewClient(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/import", h.handleImport)
	r.Post("/api/runway", h.handleRunway)
	r.Get("/api/growth/{ticker}", h.handleGrowth)
	r.Get("/api/version", h.handleVersion)

	return r
}

type importRequest struct {
	FileContent string `json:"file_content"` // base64
	FileType    string `json:"file_type"`    // pdf, csv, xlsx
	FileName    string `json:"file_name,omitempty"`
}

type runwayResponse struct {
	Result       simulation.Result  `json:"result"`
	Warnings     []string           `json:"warnings,omitempty"`
	Optimization *optimizer.Summary `json:"optimization,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "uploaded document exceeds the size limit")
			return
		}
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	format, err := document.ParseFormat(req.FileType)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "file_content is not valid base64")
		return
	}

	result := h.analyzer.Analyze(r.Context(), data, format, req.FileName)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleRunway(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var snapshot simulation.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid snapshot payload")
		return
	}

	snapshot.EnsureIDs()

	assets := make([]validation.AssetInfo, len(snapshot.Assets))
	for i, a := range snapshot.Assets {
		assets[i] = validation.AssetInfo{Name: a.Name, Type: a.Type, Balance: a.Balance}
	}
	debts := make([]validation.DebtInfo, len(snapshot.Debts))
	for i, d := range snapshot.Debts {
		debts[i] = validation.DebtInfo{
			Name:           d.Name,
			CurrentBalance: d.CurrentBalance,
			InterestRate:   d.InterestRate,
			MonthlyPayment: d.MonthlyPayment,
		}
	}
	warnings := validation.ValidateSnapshot(assets, debts, snapshot.AnnualExpenses, snapshot.AnnualPassiveIncome)

	resp := runwayResponse{
		Result:   h.simulator.Run(snapshot),
		Warnings: warnings,
	}

	if r.URL.Query().Get("optimize") == "1" {
		summary, err := h.runner.MaxSustainableSpending(snapshot)
		if err != nil {
			resp.Warnings = append(resp.Warnings, err.Error())
		} else {
			resp.Optimization = &summary
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type growthResponse struct {
	Growth     *marketdata.Growth `json:"growth,omitempty"`
	Suggestion string             `json:"suggestion,omitempty"`
}

func (h *handler) handleGrowth(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimSpace(chi.URLParam(r, "ticker"))
	if ticker == "" {
		h.writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	years := 5
	if v := r.URL.Query().Get("years"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "years must be a positive integer")
			return
		}
		years = parsed
	}

	growth, err := h.quotes.AnnualizedGrowth(r.Context(), ticker, years)
	if err != nil {
		// Market data is advisory; a thin or missing series is not a
		// request failure.
		h.writeJSON(w, http.StatusOK, growthResponse{Suggestion: marketdata.ConservativeSuggestion})
		return
	}

	h.writeJSON(w, http.StatusOK, growthResponse{Growth: &growth})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
