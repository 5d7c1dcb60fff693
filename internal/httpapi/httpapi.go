// Package httpapi serves the dashboard engine over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
)

// Server exposes a session's charts, rankings, and filter state as a
// JSON API for dashboard frontends.
type Server struct {
	session *core.Session
	cfg     *contract.Config
}

// NewServer creates an API server around one session.
func NewServer(session *core.Session, cfg *contract.Config) *Server {
	return &Server{session: session, cfg: cfg}
}

// Routes builds the request router with CORS handling applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/charts", s.handleChartCatalog)
	mux.HandleFunc("GET /api/charts/{id}", s.handleChart)
	mux.HandleFunc("GET /api/rank", s.handleRank)
	mux.HandleFunc("GET /api/summary", s.handleSummary)

	mux.HandleFunc("GET /api/filters", s.handleFilterState)
	mux.HandleFunc("POST /api/filters", s.handleSetChartFilter)
	mux.HandleFunc("DELETE /api/filters", s.handleClearChartFilters)
	mux.HandleFunc("DELETE /api/filters/{chartId}", s.handleRemoveChartFilter)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/resolve/{chartId}", s.handleResolve)

	return withCORS(mux)
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.ServeAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// withCORS allows dashboard frontends on other origins to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
