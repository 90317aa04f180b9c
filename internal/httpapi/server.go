package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pfrederiksen/tourwatch/internal/calendar"
	"github.com/pfrederiksen/tourwatch/internal/discord"
	"github.com/pfrederiksen/tourwatch/internal/event"
	"github.com/pfrederiksen/tourwatch/internal/logger"
	"github.com/pfrederiksen/tourwatch/internal/monitor"
)

// maxInteractionBody caps the interactions-webhook request size
const maxInteractionBody = 1 << 20

// emptyCalendar is served when no shows are stored yet
const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//tourwatch//tourwatch//EN\r\nEND:VCALENDAR\r\n"

// Service is the slice of the monitor the HTTP API reads from
type Service interface {
	StatusReport(ctx context.Context) monitor.Status
	Events(ctx context.Context) ([]*event.Event, error)
	EventsByDate(ctx context.Context, day string) ([]*event.Event, error)
	Location() *time.Location
}

// Interactions dispatches parsed Discord interactions
type Interactions interface {
	Handle(ctx context.Context, inter *discord.Interaction) *discord.InteractionResponse
}

// Server provides the HTTP surface: the Discord interactions webhook plus
// read-only status, event, and calendar endpoints.
type Server struct {
	svc       Service
	commands  Interactions
	publicKey string
	artist    string
}

// NewServer creates the HTTP server. commands and publicKey may be empty
// when Discord is disabled; the interactions route is not mounted then.
func NewServer(svc Service, commands Interactions, publicKey, artist string) *Server {
	return &Server{
		svc:       svc,
		commands:  commands,
		publicKey: publicKey,
		artist:    artist,
	}
}

// Router builds the route table
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	if s.commands != nil && s.publicKey != "" {
		r.Post("/interactions", s.handleInteractions)
	}
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/events", s.handleEvents)
	r.Get("/api/calendar.ics", s.handleCalendar)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// handleInteractions receives Discord interaction callbacks. Discord
// requires the Ed25519 signature check; unverified requests get 401 so the
// endpoint passes Discord's validation probes.
func (s *Server) handleInteractions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInteractionBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	sig := r.Header.Get("X-Signature-Ed25519")
	ts := r.Header.Get("X-Signature-Timestamp")
	if !discord.VerifySignature(s.publicKey, sig, ts, body) {
		writeError(w, http.StatusUnauthorized, "invalid request signature")
		return
	}

	var inter discord.Interaction
	if err := json.Unmarshal(body, &inter); err != nil {
		writeError(w, http.StatusBadRequest, "malformed interaction payload")
		return
	}

	resp := s.commands.Handle(r.Context(), &inter)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.StatusReport(r.Context()))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var (
		events []*event.Event
		err    error
	)

	if day := r.URL.Query().Get("date"); day != "" {
		if _, perr := time.Parse("2006-01-02", day); perr != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		events, err = s.svc.EventsByDate(r.Context(), day)
	} else {
		events, err = s.svc.Events(r.Context())
	}
	if err != nil {
		logger.Error("failed to list events", nil, err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	if events == nil {
		events = []*event.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(events),
		"events": events,
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := s.svc.Events(r.Context())
	if err != nil {
		logger.Error("failed to build calendar", nil, err)
		writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}

	name := fmt.Sprintf("%s Tour Dates", s.artist)
	ics := calendar.GenerateBulkICS(events, s.artist, name, s.svc.Location())
	if ics == "" {
		ics = emptyCalendar
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tourwatch.ics"`)
	if _, err := w.Write([]byte(ics)); err != nil {
		logger.Error("failed to write calendar response", nil, err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("failed to write health response", nil, err)
	}
}

// requestLogger logs one line per request through the structured logger
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("http request", logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", nil, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
