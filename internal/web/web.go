package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trainingcal/internal/calendar"
	"trainingcal/internal/catalog"
	"trainingcal/internal/config"
	"trainingcal/internal/grid"
	"trainingcal/internal/ics"
	appLog "trainingcal/internal/log"
)

// Server exposes the calendar views over HTTP.
type Server struct {
	cfg   *config.Config
	store *catalog.Store
	loc   *time.Location
	mux   *http.ServeMux

	// now is replaceable in tests.
	now func() time.Time
}

// NewServer constructs a new Server reading catalog snapshots from store.
func NewServer(cfg *config.Config, store *catalog.Store) *Server {
	s := &Server{
		cfg:   cfg,
		store: store,
		loc:   resolveLocationOrUTC(cfg.Timezone),
		mux:   http.NewServeMux(),
		now:   time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) basicAuthEnabled() bool {
	return s.cfg != nil && s.cfg.BasicAuth != nil &&
		s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="TrainingCal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/month", s.handleMonth)
	s.mux.HandleFunc("/api/year", s.handleYear)
	s.mux.HandleFunc("/api/trainings/", s.handleTraining)
	s.mux.HandleFunc("/api/issues", s.handleIssues)
	s.mux.HandleFunc("/calendar", s.handleCalendarPage)
	s.mux.HandleFunc("/calendar.ics", s.handleICS)
	s.mux.HandleFunc("/preview.png", s.handlePreview)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// today returns the current date in the configured timezone.
func (s *Server) today() time.Time {
	return s.now().In(s.loc)
}

// snapshot writes a 503 and returns nil when no catalog is loaded yet.
func (s *Server) snapshot(w http.ResponseWriter) *catalog.Snapshot {
	snap := s.store.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
	}
	return snap
}

// monthAnchor parses ?date=YYYY-MM-DD (or YYYY-MM), defaulting to today.
func (s *Server) monthAnchor(r *http.Request) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get("date"))
	if v == "" {
		return s.today(), nil
	}
	if len(v) == len("2006-01") {
		v += "-01"
	}
	return grid.ParseDate(v)
}

// handleMonth returns the month view.
//
// GET /api/month?date=2024-03-15
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	anchor, err := s.monthAnchor(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	view := calendar.BuildMonthView(anchor, s.today(), snap.Index, calendar.Options{MaxPerCell: s.cfg.MaxPerCell})
	appLog.Debug("api month request", "anchor", grid.DateKey(anchor), "cells", len(view.Cells))
	writeJSON(w, http.StatusOK, view)
}

// handleYear returns the year view.
//
// GET /api/year?year=2024
func (s *Server) handleYear(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntDefault(r.URL.Query().Get("year"), s.today().Year())
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	view := calendar.BuildYearView(year, s.today(), snap.Index)
	appLog.Debug("api year request", "year", year, "weeks", len(view.Weeks))
	writeJSON(w, http.StatusOK, view)
}

// handleTraining returns the detail behind a training selected in a view.
//
// GET /api/trainings/{id}
func (s *Server) handleTraining(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/trainings/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	detail, ok := snap.Index.Detail(id)
	if !ok {
		writeError(w, http.StatusNotFound, "training not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type issuesResponse struct {
	LoadedAt time.Time       `json:"loaded_at"`
	Issues   []catalog.Issue `json:"issues"`
}

// handleIssues reports the data-quality issues of the loaded catalog.
func (s *Server) handleIssues(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	issues := snap.Issues
	if issues == nil {
		issues = []catalog.Issue{}
	}
	writeJSON(w, http.StatusOK, issuesResponse{LoadedAt: snap.LoadedAt, Issues: issues})
}

// handleICS serves every session as an iCalendar feed.
func (s *Server) handleICS(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	if snap == nil {
		http.Error(w, "catalog not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trainings.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics.Export(snap.Index, s.now().UTC())))
}

// handlePreview serves the last captured PNG of the month view.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.cfg.PreviewPath)
}

// parseIntDefault returns def for an empty value and an error for a
// non-numeric one.
func parseIntDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func resolveLocationOrUTC(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to UTC", err, "name", name)
		return time.UTC
	}
	return loc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
