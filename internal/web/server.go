// Package web serves the prebuilt client bundle plus a small JSON API for
// health, dataset metadata and navigation analytics.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/p-n-ai/cs-notes/internal/analytics"
	"github.com/p-n-ai/cs-notes/internal/content"
)

//go:embed static
var embedded embed.FS

const readinessTimeout = 2 * time.Second

// ReadinessCheck is an external dependency reported by /readyz.
type ReadinessCheck interface {
	Name() string
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Catalog *content.Catalog
	Events  analytics.EventLogger
	// StaticDir holds the built client. When it is missing the embedded
	// placeholder page is served.
	StaticDir  string
	Production bool
	Checks     []ReadinessCheck
	Now        func() time.Time
}

// Server holds the HTTP handlers.
type Server struct {
	catalog    *content.Catalog
	events     analytics.EventLogger
	static     fs.FS
	production bool
	checks     []ReadinessCheck
	now        func() time.Time
}

// New creates a server.
func New(opts Options) *Server {
	s := &Server{
		catalog:    opts.Catalog,
		events:     opts.Events,
		production: opts.Production,
		checks:     opts.Checks,
		now:        opts.Now,
	}
	if s.events == nil {
		s.events = analytics.NopEventLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.static = placeholderFS()
	if opts.StaticDir != "" {
		if st, err := os.Stat(opts.StaticDir); err == nil && st.IsDir() {
			s.static = os.DirFS(opts.StaticDir)
		} else {
			slog.Warn("static bundle not found, serving placeholder", "dir", opts.StaticDir)
		}
	}
	return s
}

// Handler returns the routed handler wrapped in recovery and request
// logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/topics", s.handleTopics)
	mux.HandleFunc("POST /api/events", s.handleEvents)
	mux.HandleFunc("/api", handleAPINotFound)
	mux.HandleFunc("/api/", handleAPINotFound)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("/", s.handleStatic)
	return logRequests(s.recoverPanics(mux))
}

func placeholderFS() fs.FS {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response", "error", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
