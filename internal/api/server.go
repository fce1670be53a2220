// Package api exposes a hook over HTTP: status and screen queries, event
// injection, and a WebSocket stream of captured events.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"inputhook/event"
	"inputhook/hook"
	"inputhook/internal/config"
	"inputhook/internal/logger"
	"inputhook/internal/network"
	"inputhook/internal/protocol"
)

const (
	maxPostBody   = 4096
	maxConfigBody = 64 << 10
)

// Hook is the part of hook.Engine the server needs.
type Hook interface {
	IsEnabled() bool
	BackendName() string
	PostEvent(ev *event.Event) error
	Screens() []hook.Screen
}

// ConfigStore is the part of config.Manager behind /api/config.
type ConfigStore interface {
	Get() config.Config
	Set(cfg *config.Config) error
	Save() error
}

// Options configures a Server
type Options struct {
	Version string
	Token   string // empty disables authentication
	// AllowPost enables /api/post and TypePost WebSocket messages.
	AllowPost bool
	// Config, if set, is served and updated by /api/config.
	Config ConfigStore
}

// Server provides HTTP API for remote observation and injection
type Server struct {
	hook  Hook
	opts  Options
	wsMgr *WSManager

	startOnce sync.Once
	mu        sync.Mutex
	srv       *http.Server
}

// NewServer creates a new API server
func NewServer(h Hook, opts Options) *Server {
	s := &Server{hook: h, opts: opts}
	s.wsMgr = newWSManager(s)
	return s
}

// Handler returns the server's routes wrapped in its middleware. The
// WebSocket manager is started on first use.
func (s *Server) Handler() http.Handler {
	s.startOnce.Do(func() { go s.wsMgr.start() })

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/screens", s.handleScreens)
	mux.HandleFunc("/api/post", s.handlePost)
	if s.opts.Config != nil {
		mux.HandleFunc("/api/config", s.handleConfig)
	}
	mux.HandleFunc("/ws", s.wsMgr.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return s.authMiddleware(s.recoverMiddleware(mux))
}

// Start serves on port until Close. It always returns a non-nil error
// except after a clean Close.
func (s *Server) Start(port int) error {
	// explicitly tcp4 to avoid IPv6-only binding on Windows
	addr := fmt.Sprintf("0.0.0.0:%d", port)

	if ips, err := network.GetLocalIPs(); err == nil {
		for _, ip := range ips {
			logger.Debugf("[API] Local IPv4: %s", ip)
		}
	}

	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		return fmt.Errorf("api: listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Close.
func (s *Server) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	logger.Infof("[API] Listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// Close stops the HTTP server and disconnects all stream clients.
func (s *Server) Close() error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	s.wsMgr.stop()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// BroadcastEvent queues ev for every stream client. It never blocks, so it
// may be called from a DispatchProc.
func (s *Server) BroadcastEvent(ev *event.Event) {
	s.wsMgr.BroadcastEvent(ev)
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorf("[API] Panic serving %s: %v", r.URL.Path, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks API token if configured
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debugf("[API] %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

		// Skip auth for health check
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		if s.opts.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.opts.Token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// status snapshots the hook for /api/status and the WebSocket hello.
func (s *Server) status() protocol.StatusPayload {
	return protocol.StatusPayload{
		Version:   s.opts.Version,
		Backend:   s.hook.BackendName(),
		Enabled:   s.hook.IsEnabled(),
		Injection: s.opts.AllowPost,
		Clients:   s.wsMgr.count(),
	}
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.status())
}

// handleScreens handles GET /api/screens
func (s *Server) handleScreens(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	screens := s.hook.Screens()
	if screens == nil {
		screens = []hook.Screen{}
	}
	writeJSON(w, http.StatusOK, screens)
}

// handlePost handles POST /api/post with a JSON event body
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.opts.AllowPost {
		writeJSON(w, http.StatusForbidden, protocol.ErrorPayload{Error: "injection disabled"})
		return
	}

	var ev event.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostBody)).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.ErrorPayload{Error: "invalid event: " + err.Error()})
		return
	}

	if err := s.post(&ev); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, protocol.ErrorPayload{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) post(ev *event.Event) error {
	if err := s.hook.PostEvent(ev); err != nil {
		logger.Warnf("[API] Post %v failed: %v (%s)", ev.Type, err, hook.StatusOf(err))
		return err
	}
	return nil
}

// handleConfig handles GET (read) and POST (update) for configuration.
// A POST body is applied over the current configuration, so it may carry
// only the sections being changed.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.opts.Config.Get())

	case http.MethodPost:
		cfg := s.opts.Config.Get()
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxConfigBody)).Decode(&cfg); err != nil {
			writeJSON(w, http.StatusBadRequest, protocol.ErrorPayload{Error: "invalid configuration: " + err.Error()})
			return
		}
		if err := s.opts.Config.Set(&cfg); err != nil {
			writeJSON(w, http.StatusBadRequest, protocol.ErrorPayload{Error: err.Error()})
			return
		}
		logger.Infof("[API] Configuration updated by %s", r.RemoteAddr)
		if err := s.opts.Config.Save(); err != nil {
			logger.Errorf("[API] Failed to save configuration: %v", err)
			writeJSON(w, http.StatusInternalServerError, protocol.ErrorPayload{Error: "failed to save configuration"})
			return
		}
		writeJSON(w, http.StatusOK, cfg)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
