// Package web serves the companion HTTP surface: a health endpoint, a
// read-only scores API backed by the same database as the TUI, and
// static files for the landing page.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/storage"
)

//go:embed static
var staticFS embed.FS

// DefaultPort is used when no port is configured via flag or environment.
const DefaultPort = 3000

// ServerOptions configures a Server.
type ServerOptions struct {
	// Port to listen on. 0 means resolve from the PORT environment
	// variable, falling back to DefaultPort.
	Port int

	// StaticDir overrides the embedded static assets when set.
	StaticDir string

	// Store provides score data for the API. May be nil; score
	// endpoints then report storage as unavailable.
	Store *storage.Store

	Logger *log.Logger
}

// Server is the HTTP server for the health, scores and static endpoints.
type Server struct {
	server *http.Server
	store  *storage.Store
	logger *log.Logger
}

// healthResponse is the GET /health body.
type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// scoresResponse is the GET /api/scores/{gameID} body.
type scoresResponse struct {
	GameID string               `json:"game_id"`
	Scores []storage.ScoreEntry `json:"scores"`
}


// ResolvePort picks the listen port: an explicit port wins, then the
// PORT environment variable, then DefaultPort.
func ResolvePort(explicit int) int {
	if explicit > 0 {
		return explicit
	}
	if env := os.Getenv("PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil && p > 0 {
			return p
		}
	}
	return DefaultPort
}

// NewServer creates an HTTP server with all routes registered.
func NewServer(opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blockfall-web",
		})
	}

	s := &Server{
		store:  opts.Store,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/scores/{gameID}", s.handleScores)
	mux.HandleFunc("GET /api/stats/{gameID}", s.handleStats)
	mux.Handle("/", s.staticHandler(opts.StaticDir))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", ResolvePort(opts.Port)),
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleScores returns the top scores for a game mode.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	gameID := r.PathValue("gameID")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	scores, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("loading scores", "game", gameID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}

	writeJSON(w, http.StatusOK, scoresResponse{GameID: gameID, Scores: scores})
}

// handleStats returns aggregate statistics for a game mode.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	gameID := r.PathValue("gameID")
	stats, err := s.store.GetGameStats(gameID)
	if err != nil {
		s.logger.Error("loading stats", "game", gameID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// staticHandler serves files from the override directory when set,
// otherwise from the embedded assets.
func (s *Server) staticHandler(dir string) http.Handler {
	if dir != "" {
		return http.FileServer(http.Dir(dir))
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Embedded assets are part of the binary; this cannot fail
		// outside a broken build.
		s.logger.Error("embedded static assets missing", "error", err)
		return http.NotFoundHandler()
	}
	return http.FileServerFS(sub)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing to do about a failed response write
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// logRequests logs each request with method, path and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens and serves until the server is stopped.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			s.logger.Info("HTTP server closed")
			return nil
		}
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
