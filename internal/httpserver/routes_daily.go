// internal/httpserver/routes_daily.go
//
// Read-only results routes:
//   - GET /stats           → played/won counts, streaks, guess distribution
//   - GET /history?limit=N → most recent finished rounds, newest first
//
// Both need the results store; without one they answer 404.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
)

const maxHistory = 365

// statsRes is returned by /stats.
type statsRes struct {
	daily.Stats
	WinRate int `json:"winRate"`
}

// mountDaily registers the results routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/stats", s.handleStats)
	r.Get("/history", s.handleHistory)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeError(w, http.StatusNotFound, "results_disabled")
		return
	}
	st, err := s.results.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(statsRes{Stats: st, WinRate: st.WinRate()})
}

// handleHistory lists finished rounds. limit defaults to the store's default
// and is capped at a year.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeError(w, http.StatusNotFound, "results_disabled")
		return
	}
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxHistory)
	}
	rows, err := s.results.History(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("load history")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if rows == nil {
		rows = []daily.Result{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}
