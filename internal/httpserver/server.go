// internal/httpserver/server.go
//
// HTTP server wiring for the daily puzzle.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     per-client rate limiting, request logging).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: GET /game, POST /game/key, POST /game/hint.
//   - Results endpoints: mounted in routes_daily.go.
//
// Notes:
//   - There is one player and one session. The controller is not safe for
//     concurrent use, so every game call runs under s.mu.
//   - CORS is origin-aware and credentials-enabled for a local web client.

package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle/apps/go-daily/internal/daily"
	"github.com/robalobadob/wordle/apps/go-daily/internal/game"
)

// Game is the part of the play controller the server drives.
type Game interface {
	Dispatch(ctx context.Context, in game.KeyIntent) (bool, error)
	RevealHint(ctx context.Context) (bool, error)
	Refresh(ctx context.Context) error
	View() game.View
}

// Results serves finished-round history. Optional.
type Results interface {
	Stats(ctx context.Context) (daily.Stats, error)
	History(ctx context.Context, limit int) ([]daily.Result, error)
}

// Options tunes the middleware.
type Options struct {
	Origin    string // CORS origin; defaults to http://localhost:5173
	RateRPS   int
	RateBurst int
}

// Server bundles router, game controller and results store.
type Server struct {
	r       *chi.Mux
	mu      sync.Mutex // guards game
	game    Game
	results Results
	lim     *limiters
}

// New constructs a Server, installs middleware, and registers routes.
// results may be nil, in which case the results endpoints answer 404.
func New(g Game, results Results, opt Options) *Server {
	if opt.Origin == "" {
		opt.Origin = "http://localhost:5173"
	}
	s := &Server{
		r:       chi.NewRouter(),
		game:    g,
		results: results,
		lim:     newLimiters(opt.RateRPS, opt.RateBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opt.Origin))                // credentials-friendly CORS
	s.r.Use(s.lim.middleware)                // per-client token bucket

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-daily","endpoints":["/health","GET /game","POST /game/key","POST /game/hint","GET /stats","GET /history"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Post("/key", s.handleKey)
		r.Post("/hint", s.handleHint)
	})

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// limiterIdle is how long a client's bucket is kept after its last request.
const limiterIdle = 10 * time.Minute

// limiters hands out one token bucket per client IP. Buckets idle for
// limiterIdle are swept, at most once per limiterIdle.
type limiters struct {
	mu        sync.Mutex
	m         map[string]*clientLimiter
	every     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLimiters(rps, burst int) *limiters {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &limiters{
		m:     make(map[string]*clientLimiter),
		every: rate.Every(time.Second / time.Duration(rps)),
		burst: burst,
		now:   time.Now,
	}
}

func (l *limiters) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdle {
		for k, c := range l.m {
			if now.Sub(c.lastSeen) >= limiterIdle {
				delete(l.m, k)
			}
		}
		l.lastSweep = now
	}
	if c, ok := l.m[key]; ok {
		c.lastSeen = now
		return c.lim
	}
	c := &clientLimiter{lim: rate.NewLimiter(l.every, l.burst), lastSeen: now}
	l.m[key] = c
	return c.lim
}

func (l *limiters) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if !l.get(key).Allow() {
			log.Warn().Str("client", key).Msg("rate limited")
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// keyReq is the payload for POST /game/key, shaped like a browser key event.
type keyReq struct {
	Key     string `json:"key"`
	CtrlKey bool   `json:"ctrlKey"`
	MetaKey bool   `json:"metaKey"`
	AltKey  bool   `json:"altKey"`
}

// gameRes wraps the view with whether the last input was accepted.
type gameRes struct {
	Accepted bool      `json:"accepted"`
	View     game.View `json:"view"`
}

// handleView returns today's board, rolling over first if the date changed.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.Refresh(r.Context()); err != nil {
		log.Error().Err(err).Msg("refresh game")
		writeError(w, http.StatusInternalServerError, "refresh_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(s.game.View())
}

// handleKey applies one key event. Keys the game ignores still answer 200
// with accepted=false so clients can forward every keydown.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := false
	in, ok := game.ParseKey(req.Key, game.Modifiers{Ctrl: req.CtrlKey, Meta: req.MetaKey, Alt: req.AltKey})
	if ok {
		changed, err := s.game.Dispatch(r.Context(), in)
		if err != nil {
			log.Error().Err(err).Str("key", req.Key).Msg("dispatch key")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		accepted = changed
	} else if err := s.game.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "refresh_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(gameRes{Accepted: accepted, View: s.game.View()})
}

// handleHint reveals the hint while the round is open.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed, err := s.game.RevealHint(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("reveal hint")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(gameRes{Accepted: changed, View: s.game.View()})
}

// writeError sends {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
