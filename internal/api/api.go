package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/igtm/baseball/internal/game"
	"github.com/igtm/baseball/internal/ws"
)

type SessionSource interface {
	SessionSnapshot(id string) (*game.Snapshot, bool)
}

type StatsSource interface {
	Stats() ws.HubStats
}

type HandlerDeps struct {
	Sessions SessionSource
	Stats    StatsSource
}

type Handler struct {
	sessions SessionSource
	stats    StatsSource
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{sessions: deps.Sessions, stats: deps.Stats}
}

// Routes mounts the read-only endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/pitches", h.Pitches)
	r.Get("/sessions/{id}", h.Session)
	r.Get("/sessions/{id}/linescore", h.LineScore)
}

// CORS allows browser GETs on the API from origins, given as full
// scheme://host origins. An empty list allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Stats())
}

func (h *Handler) Pitches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, game.Catalog())
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.sessions.SessionSnapshot(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// LineScore renders the session's box score as plain text.
func (h *Handler) LineScore(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.sessions.SessionSnapshot(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(snap.Board.LineScore())); err != nil {
		log.Printf("api: write line score: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}
