package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/piwi3910/furnish/internal/engine"
	"github.com/piwi3910/furnish/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type catalogResponse struct {
	Items []model.FurnitureSpec `json:"items"`
}

// layoutRequest is the body of POST /api/layouts. Omitted fields fall back
// to the server defaults.
type layoutRequest struct {
	Selection []string          `json:"selection"`
	Count     int               `json:"count"`
	Room      *model.RoomConfig `json:"room"`
	Seed      *int64            `json:"seed"`
	Strategy  model.Strategy    `json:"strategy"`
	Clearance *float64          `json:"clearance"`
	Budget    *int              `json:"attempt_budget"`
}

type layoutResponse struct {
	ID         string            `json:"id"`
	Seed       int64             `json:"seed"`
	Layout     model.Layout      `json:"layout"`
	Violations []model.Violation `json:"violations"`
}

type auditRequest struct {
	Layout    model.Layout `json:"layout"`
	Clearance *float64     `json:"clearance"`
}

type auditResponse struct {
	OK         bool              `json:"ok"`
	Violations []model.Violation `json:"violations"`
	Messages   []string          `json:"messages"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{Items: s.catalog.Specs()})
}

func (s *Server) handleCatalogItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	spec, ok := s.catalog.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown furniture id %q", id))
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	settings := s.settings
	if req.Strategy != "" {
		settings.Strategy = req.Strategy
	}
	if req.Clearance != nil {
		settings.Clearance = *req.Clearance
	}
	if req.Budget != nil {
		settings.AttemptBudget = *req.Budget
	}
	room := s.room
	if req.Room != nil {
		room = *req.Room
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	planner, err := engine.NewPlanner(settings.Strategy, s.catalog, settings, engine.WithLogger(s.logger))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	layout, err := planner.Plan(engine.Request{
		Selection: req.Selection,
		Count:     req.Count,
		Room:      room,
		Rand:      rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrInvalidRoom) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	violations := engine.AuditLayout(layout, settings.Clearance)
	if violations == nil {
		violations = []model.Violation{}
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		ID:         uuid.New().String(),
		Seed:       seed,
		Layout:     layout,
		Violations: violations,
	})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Layout.Bounds.Empty() {
		writeError(w, http.StatusUnprocessableEntity, "layout has no placement bounds")
		return
	}

	clearance := s.settings.Clearance
	if req.Clearance != nil {
		clearance = *req.Clearance
	}
	violations := engine.AuditLayout(req.Layout, clearance)
	messages := engine.FormatViolations(violations)
	if violations == nil {
		violations = []model.Violation{}
		messages = []string{}
	}
	writeJSON(w, http.StatusOK, auditResponse{
		OK:         len(violations) == 0,
		Violations: violations,
		Messages:   messages,
	})
}

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeJSON encodes before writing the header so an unencodable payload
// becomes a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: fmt.Sprintf("encoding response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
