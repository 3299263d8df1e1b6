package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "CS Fundamentals server is running",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

type topicsResponse struct {
	Message    string `json:"message"`
	Redirect   string `json:"redirect"`
	Version    string `json:"version"`
	Categories int    `json:"categories"`
	Topics     int    `json:"topics"`
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	stats := s.catalog.Stats()
	writeJSON(w, http.StatusOK, topicsResponse{
		Message:    "Topics are served from the client-side for better performance",
		Redirect:   "/topics",
		Version:    s.catalog.Digest(),
		Categories: stats.Categories,
		Topics:     stats.Topics,
	})
}

func handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error:   "Not Found",
		Message: "The requested resource was not found",
	})
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	var errs []error
	for _, c := range s.checks {
		if err := c.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		slog.Warn("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleStatic serves files of the client bundle and falls back to the
// bundle's index.html so client-side routes load the app.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		handleAPINotFound(w, r)
		return
	}
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" && name != "." && name != "index.html" {
		if st, err := fs.Stat(s.static, name); err == nil && !st.IsDir() {
			http.ServeFileFS(w, r, s.static, name)
			return
		}
	}
	s.serveIndex(w)
}

func (s *Server) serveIndex(w http.ResponseWriter) {
	page, err := fs.ReadFile(s.static, "index.html")
	if err != nil {
		page, err = fs.ReadFile(placeholderFS(), "index.html")
		if err != nil {
			panic(fmt.Sprintf("embedded index.html: %v", err))
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}
