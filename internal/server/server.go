// Package server exposes the quote engine over a small HTTP JSON API.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bprsb-tools/kpr-quote/internal/cache"
	"github.com/bprsb-tools/kpr-quote/internal/engine"
	"github.com/bprsb-tools/kpr-quote/internal/export"
	"github.com/bprsb-tools/kpr-quote/pkg/fees"
	"github.com/bprsb-tools/kpr-quote/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger  *zap.Logger
	engine  *engine.Engine
	cache   cache.Cache
	version string
	now     func() time.Time
}

// NewHandler constructs the HTTP handler that serves the quote API. The
// cache may be nil to disable quote caching.
func NewHandler(logger *zap.Logger, eng *engine.Engine, quoteCache cache.Cache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New(logger)
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:  logger,
		engine:  eng,
		cache:   quoteCache,
		version: trimmedVersion,
		now:     time.Now,
	}

	mux := http.NewServeMux()

	// Quote API endpoint
	mux.HandleFunc("/api/quote", h.handleQuote)

	// Offer summary export endpoint
	mux.HandleFunc("/api/quote/export", h.handleExport)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type quoteResponse struct {
	State    engine.State         `json:"state"`
	Reason   validation.Reason    `json:"reason,omitempty"`
	Message  string               `json:"message,omitempty"`
	Quote    *engine.Quote        `json:"quote,omitempty"`
	Labels   map[fees.Kind]string `json:"labels,omitempty"`
	Cached   bool                 `json:"cached,omitempty"`
	Duration string               `json:"duration"`
}

type exportResponse struct {
	Summary export.Summary `json:"summary"`
	YAML    string         `json:"summaryYaml"`
	Text    string         `json:"summaryText"`
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var input engine.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleQuote")
		return
	}

	response := quoteResponse{}

	if quote, ok := h.cachedQuote(input); ok {
		response.State = engine.StateComputed
		response.Quote = quote
		response.Cached = true
	} else {
		outcome := h.engine.Evaluate(input)
		response.State = outcome.State
		response.Reason = outcome.Reason
		response.Message = outcome.Message
		response.Quote = outcome.Quote
		if outcome.State == engine.StateComputed {
			h.storeQuote(input, outcome.Quote)
		}
	}

	if response.Quote != nil {
		response.Labels = feeLabels(response.Quote)
	}
	response.Duration = time.Since(start).String()

	h.logger.Info("quote evaluated",
		zap.String("op", "server.handleQuote"),
		zap.String("state", string(response.State)),
		zap.Bool("cached", response.Cached),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var input engine.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleExport")
		return
	}

	outcome := h.engine.Evaluate(input)
	if outcome.State != engine.StateComputed {
		msg := outcome.Message
		if msg == "" {
			msg = "incomplete input: property price, loan amount, and term are required"
		}
		h.respondError(w, http.StatusUnprocessableEntity, msg, "server.handleExport")
		return
	}

	summary := export.Build(input, *outcome.Quote, h.now())
	yamlBytes, err := summary.YAML()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode summary: %v", err), "server.handleExport")
		return
	}

	h.writeJSON(w, http.StatusOK, exportResponse{
		Summary: summary,
		YAML:    string(yamlBytes),
		Text:    summary.Text(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// cacheKey builds the cache key from the raw input triple. Evaluation is a
// pure function of these three strings, so they identify the quote fully.
func cacheKey(input engine.Input) string {
	return fmt.Sprintf("quote:%s|%s|%s",
		strings.TrimSpace(input.PropertyPrice),
		strings.TrimSpace(input.LoanAmount),
		strings.TrimSpace(input.TermYears),
	)
}

func (h *handler) cachedQuote(input engine.Input) (*engine.Quote, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, ok := h.cache.Get(cacheKey(input))
	if !ok {
		return nil, false
	}
	var quote engine.Quote
	if err := json.Unmarshal([]byte(raw), &quote); err != nil {
		h.logger.Warn("discarding undecodable cached quote",
			zap.String("op", "server.cachedQuote"),
			zap.Error(err),
		)
		return nil, false
	}
	return &quote, true
}

func (h *handler) storeQuote(input engine.Input, quote *engine.Quote) {
	if h.cache == nil || quote == nil {
		return
	}
	raw, err := json.Marshal(quote)
	if err != nil {
		h.logger.Warn("failed to marshal quote for cache",
			zap.String("op", "server.storeQuote"),
			zap.Error(err),
		)
		return
	}
	if err := h.cache.Set(cacheKey(input), string(raw)); err != nil {
		h.logger.Warn("failed to store quote in cache",
			zap.String("op", "server.storeQuote"),
			zap.Error(err),
		)
	}
}

func feeLabels(quote *engine.Quote) map[fees.Kind]string {
	labels := make(map[fees.Kind]string, len(quote.Fees))
	for _, item := range quote.Fees {
		labels[item.Kind] = fees.Label(item.Kind, quote.LoanAmount)
	}
	return labels
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("quote request failed",
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
