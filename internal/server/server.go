// Package server exposes stored matches and their duel matrices as a JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pable/go-duel-matrix/internal/aggregator"
	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
	"github.com/pable/go-duel-matrix/internal/storage"
)

// Defaults are the filter values used when a request omits them.
type Defaults struct {
	Map      string
	KillType string
	Policy   duels.DuplicatePolicy
}

// Server answers API requests from the duel store.
type Server struct {
	db       *storage.DB
	defaults Defaults
}

// New returns a server reading from db.
func New(db *storage.DB, d Defaults) *Server {
	if d.Map == "" {
		d.Map = model.AllMaps
	}
	if d.KillType == "" {
		d.KillType = model.AllKills
	}
	return &Server{db: db, defaults: d}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/matches", s.handleMatches).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}/duels", s.handleDuels).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}/players", s.handlePlayers).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	r.Use(logRequests)
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVE] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[SERVE] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[API] %s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Microsecond))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListMatches()
	if err != nil {
		log.Printf("[API] list matches: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list matches")
		return
	}
	out := make([]matchJSON, 0, len(list))
	for _, m := range list {
		out = append(out, toMatchJSON(m))
	}
	writeJSON(w, out)
}

// loadMatch resolves the {id} route variable and writes the error response
// itself when the match is unknown or the store fails.
func (s *Server) loadMatch(w http.ResponseWriter, r *http.Request) (*model.MatchSummary, []model.DuelRecord, bool) {
	id := mux.Vars(r)["id"]
	m, err := s.db.GetMatchByPrefix(id)
	if err != nil {
		log.Printf("[API] get match %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not load match")
		return nil, nil, false
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "match not found: "+id)
		return nil, nil, false
	}
	records, err := s.db.GetDuelRecords(m.MatchID)
	if err != nil {
		log.Printf("[API] get records %s: %v", m.MatchID, err)
		writeError(w, http.StatusInternalServerError, "could not load duel records")
		return nil, nil, false
	}
	return m, records, true
}

func (s *Server) handleDuels(w http.ResponseWriter, r *http.Request) {
	m, records, ok := s.loadMatch(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := duels.Options{
		TeamA:    m.TeamA,
		TeamB:    m.TeamB,
		Map:      s.defaults.Map,
		KillType: s.defaults.KillType,
		Policy:   s.defaults.Policy,
	}
	if v := q.Get("map"); v != "" {
		opts.Map = v
	}
	if v := q.Get("kill_type"); v != "" {
		opts.KillType = v
	}
	if v := q.Get("duplicates"); v != "" {
		p, ok := duels.ParsePolicy(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown duplicates policy: "+v)
			return
		}
		opts.Policy = p
	}
	if q.Get("swap") == "1" || q.Get("swap") == "true" {
		opts.TeamA, opts.TeamB = opts.TeamB, opts.TeamA
	}

	draft, err := s.db.GetDraft(m.MatchID)
	if err != nil {
		log.Printf("[API] get draft %s: %v", m.MatchID, err)
		writeError(w, http.StatusInternalServerError, "could not load draft")
		return
	}
	writeJSON(w, buildDuelsResponse(m, records, draft, opts))
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	m, records, ok := s.loadMatch(w, r)
	if !ok {
		return
	}
	totals := aggregator.PlayerTotals(records)
	out := playersResponse{
		Match:   toMatchJSON(*m),
		Players: make([]playerTotalsJSON, 0, len(totals)),
		Top:     toTopJSON(aggregator.TopPerformers(records)),
	}
	for i := range totals {
		p := &totals[i]
		out.Players = append(out.Players, playerTotalsJSON{
			Player:     p.Player,
			Team:       p.Team,
			Kills:      p.Kills,
			Deaths:     p.Deaths,
			Difference: p.Difference,
			KD:         p.KDRatio(),
			Opponents:  p.Opponents,
		})
	}
	writeJSON(w, out)
}
