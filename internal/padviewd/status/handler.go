// Package status serves the daemon's read-only HTTP API: cycle status,
// session history, Prometheus metrics, and a websocket stream of state and
// zone color updates.
package status

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/padview/padview/api/types/v1alpha1"
	"github.com/padview/padview/internal/padviewd/cycle"
	"github.com/padview/padview/internal/padviewd/history"
	"github.com/padview/padview/internal/padviewd/launch"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// Controller is the slice of the display cycle the API needs.
type Controller interface {
	Status() cycle.Snapshot
	Refresh()
}

// HistoryReader lists recorded sessions. Satisfied by history.Store.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// Handler serves the status API.
type Handler struct {
	controller Controller
	history    HistoryReader
	zones      *ZoneStream
	hub        *Hub
	logger     zerolog.Logger
	version    string
	startedAt  time.Time
}

// NewHandler assembles the status API. hist and zones may be nil.
func NewHandler(controller Controller, hist HistoryReader, zones *ZoneStream, logger zerolog.Logger, version string) *Handler {
	h := &Handler{
		controller: controller,
		history:    hist,
		zones:      zones,
		hub:        newHub(logger),
		logger:     logger.With().Str("component", "status-http").Logger(),
		version:    version,
		startedAt:  time.Now(),
	}
	if zones != nil {
		zones.attach(h.hub)
	}
	return h
}

// Run drives the websocket hub until ctx is canceled. Must be running before
// any stream client connects.
func (h *Handler) Run(ctx context.Context) {
	h.hub.run(ctx)
}

// Router returns a router with all status endpoints mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1alpha1", func(r chi.Router) {
		r.Get("/status", h.handleStatus)
		r.Post("/refresh", h.handleRefresh)
		r.Get("/history", h.handleHistory)
		r.Get("/status/stream", h.ServeWs)
	})
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, h.currentStatus())
}

func (h *Handler) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	h.controller.Refresh()
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "refresh requested"})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.respondError(w, http.StatusNotFound, "HistoryDisabled", "session history is not enabled")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(w, http.StatusBadRequest, "InvalidLimit", "limit must be a positive integer")
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to query session history")
		h.respondError(w, http.StatusInternalServerError, "Internal", "failed to query history")
		return
	}

	resp := v1alpha1.HistoryResponse{Items: make([]v1alpha1.HistoryEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Items = append(resp.Items, v1alpha1.HistoryEntry{
			ID:        e.ID,
			Name:      e.EventName,
			Net:       e.EventNet,
			Provider:  e.Provider,
			Location:  e.Location,
			HadImage:  e.HadImage,
			StartedAt: e.StartedAt,
			EndedAt:   e.EndedAt,
			Outcome:   e.Outcome,
		})
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// currentStatus converts the cycle snapshot to its wire form.
func (h *Handler) currentStatus() v1alpha1.DaemonStatus {
	snap := h.controller.Status()

	out := v1alpha1.DaemonStatus{
		State:   string(snap.State),
		Uptime:  time.Since(h.startedAt),
		Version: h.version,
	}
	if snap.Event != nil {
		out.Event = toAPIEvent(snap.Event)
	}
	if snap.View != nil {
		out.Countdown = &v1alpha1.CountdownView{
			Days:    snap.View.Days,
			Hours:   snap.View.Hours,
			Minutes: snap.View.Minutes,
			Seconds: snap.View.Seconds,
			Regime:  string(snap.View.Regime),
		}
	}
	if snap.State == cycle.StateSessionActive {
		out.Session = &v1alpha1.SessionInfo{
			ID:        snap.SessionID,
			StartedAt: snap.SessionStart,
		}
	}
	if h.zones != nil {
		out.Zones = h.zones.ZoneColors()
	}
	return out
}

func toAPIEvent(ev *launch.Event) *v1alpha1.LaunchEvent {
	out := &v1alpha1.LaunchEvent{
		Name:     ev.Name,
		Net:      ev.Net,
		Provider: ev.Provider,
		Location: ev.Location,
	}
	if url, ok := ev.Image.URL(); ok {
		out.ImageURL = url
	}
	return out
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, &v1alpha1.Error{Code: code, Message: message})
}
