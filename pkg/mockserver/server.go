// Package mockserver is a local stand-in for the quoting assistant backend.
//
// It answers POST /chat with keyword-tagged intents and rule-priced window
// quotes so the client can be exercised without the real agent.
package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"quotechat/pkg/api"
	"quotechat/pkg/config"
	"quotechat/pkg/version"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	maxSessionMessages = 40
	maxSessions        = 1000
	maxBodyBytes       = 1 << 20
	shutdownTimeout    = 5 * time.Second
)

// Server serves the chat API.
type Server struct {
	router   *chi.Mux
	rules    Rules
	sessions *SessionStore
	cfg      config.MockServerConfig
}

// New loads the rules named by cfg and builds the router.
func New(cfg config.MockServerConfig) (*Server, error) {
	rules, err := LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	return NewWithRules(cfg, rules), nil
}

// NewWithRules builds a server around an already loaded rule set.
func NewWithRules(cfg config.MockServerConfig, rules Rules) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{
		router:   r,
		rules:    rules,
		sessions: NewSessionStore(maxSessionMessages, maxSessions),
		cfg:      cfg,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/chat", s.handleChat)
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// Sessions exposes the session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("mock_server_start", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("mock_server_stop", "addr", addr)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mock server shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"chat":    "POST /chat",
		"version": version.Summary(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	sid, created := s.sessions.Resolve(req.SessionID)
	s.sessions.Append(sid, Turn{Role: "user", Content: message})

	answer := s.rules.Respond(message)
	steps := append([]string{sessionStep(created, s.sessions.UserTurns(sid))}, answer.Steps...)
	s.sessions.Append(sid, Turn{Role: "assistant", Content: answer.Reply})

	slog.Info("mock_chat",
		"session_id", sid,
		"new_session", created,
		"intent", answer.Intent,
		"quoted", answer.QuoteMD != "",
	)

	writeJSON(w, http.StatusOK, api.ChatResponse{
		Reply:         answer.Reply,
		QuoteMD:       answer.QuoteMD,
		CurrentIntent: answer.Intent,
		SessionID:     sid,
		ThinkingSteps: steps,
	})
}

func sessionStep(created bool, userTurns int) string {
	if created {
		return "started a new session"
	}
	return fmt.Sprintf("continuing session, turn %d", userTurns)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, api.ErrorResponse{Detail: detail})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("mock_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
