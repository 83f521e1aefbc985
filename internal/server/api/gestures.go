// Package api provides HTTP API handlers for managing tracked gestures.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/store"
)

// Registrar applies gesture configuration changes to the live coordinator.
type Registrar interface {
	ApplyGesture(cfg *store.GestureConfig) error
	RemoveGesture(name string)
}

// GestureHandler handles HTTP requests for gesture resources. Changes are
// persisted to the store and, when a registrar is configured, applied to the
// running coordinator without a restart.
type GestureHandler struct {
	store     *store.Store
	registrar Registrar
}

// NewGestureHandler creates a new GestureHandler. The registrar may be nil,
// in which case changes only take effect on the next gesture load.
func NewGestureHandler(s *store.Store, registrar Registrar) *GestureHandler {
	return &GestureHandler{store: s, registrar: registrar}
}

// ServeHTTP routes collection and item requests.
// Expected paths: /api/gestures or /api/gestures/{id}
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/gestures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type gestureRequest struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Finger1     int     `json:"finger1"`
	Finger2     int     `json:"finger2"`
	MinDistance float64 `json:"min_distance"`
	MaxDistance float64 `json:"max_distance"`
	HandSide    string  `json:"hand_side"`
	HoldMs      int64   `json:"hold_ms"`
	Enabled     *bool   `json:"enabled"`
}

// updateGestureRequest carries a partial gesture update; nil fields keep
// their stored values.
type updateGestureRequest struct {
	Name        *string  `json:"name"`
	Kind        *string  `json:"kind"`
	Finger1     *int     `json:"finger1"`
	Finger2     *int     `json:"finger2"`
	MinDistance *float64 `json:"min_distance"`
	MaxDistance *float64 `json:"max_distance"`
	HandSide    *string  `json:"hand_side"`
	HoldMs      *int64   `json:"hold_ms"`
	Enabled     *bool    `json:"enabled"`
}

type gestureResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Finger1     int     `json:"finger1"`
	Finger2     int     `json:"finger2"`
	MinDistance float64 `json:"min_distance"`
	MaxDistance float64 `json:"max_distance"`
	HandSide    string  `json:"hand_side"`
	HoldMs      int64   `json:"hold_ms"`
	Enabled     bool    `json:"enabled"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type listGesturesResponse struct {
	Gestures []gestureResponse `json:"gestures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(g *store.GestureConfig) gestureResponse {
	return gestureResponse{
		ID:          g.ID,
		Name:        g.Name,
		Kind:        string(g.Kind),
		Finger1:     g.Finger1,
		Finger2:     g.Finger2,
		MinDistance: g.MinDistance,
		MaxDistance: g.MaxDistance,
		HandSide:    g.HandSide,
		HoldMs:      g.HoldMs,
		Enabled:     g.Enabled,
		CreatedAt:   g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   g.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/gestures.
func (h *GestureHandler) list(w http.ResponseWriter, r *http.Request) {
	gestures, err := h.store.Gestures().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list gestures")
		return
	}

	resp := listGesturesResponse{Gestures: make([]gestureResponse, 0, len(gestures))}
	for _, g := range gestures {
		resp.Gestures = append(resp.Gestures, toResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

// get handles GET /api/gestures/{id}.
func (h *GestureHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	g, err := h.store.Gestures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "gesture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load gesture")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(g))
}

// create handles POST /api/gestures. The configuration is validated by
// building a gesture definition before anything is persisted.
func (h *GestureHandler) create(w http.ResponseWriter, r *http.Request) {
	var req gestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.HandSide == "" {
		req.HandSide = "both"
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	cfg := &store.GestureConfig{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Kind:        store.GestureKind(req.Kind),
		Finger1:     req.Finger1,
		Finger2:     req.Finger2,
		MinDistance: req.MinDistance,
		MaxDistance: req.MaxDistance,
		HandSide:    req.HandSide,
		HoldMs:      req.HoldMs,
		Enabled:     enabled,
	}

	if _, err := app.BuildDefinition(cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Gestures().Create(cfg); err != nil {
		writeError(w, http.StatusConflict, "failed to create gesture")
		return
	}

	if h.registrar != nil && cfg.Enabled {
		if err := h.registrar.ApplyGesture(cfg); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to apply gesture")
			return
		}
	}

	writeJSON(w, http.StatusCreated, toResponse(cfg))
}

// update handles PUT /api/gestures/{id}. Like create, the merged
// configuration must build a valid definition before anything is persisted.
func (h *GestureHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	cfg, err := h.store.Gestures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "gesture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load gesture")
		return
	}
	previousName := cfg.Name

	var req updateGestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			writeError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		cfg.Name = *req.Name
	}
	if req.Kind != nil {
		cfg.Kind = store.GestureKind(*req.Kind)
	}
	if req.Finger1 != nil {
		cfg.Finger1 = *req.Finger1
	}
	if req.Finger2 != nil {
		cfg.Finger2 = *req.Finger2
	}
	if req.MinDistance != nil {
		cfg.MinDistance = *req.MinDistance
	}
	if req.MaxDistance != nil {
		cfg.MaxDistance = *req.MaxDistance
	}
	if req.HandSide != nil {
		cfg.HandSide = *req.HandSide
	}
	if req.HoldMs != nil {
		cfg.HoldMs = *req.HoldMs
	}
	if req.Enabled != nil {
		cfg.Enabled = *req.Enabled
	}

	if _, err := app.BuildDefinition(cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Gestures().Update(cfg); err != nil {
		writeError(w, http.StatusConflict, "failed to update gesture")
		return
	}

	// Re-apply live: the old registration (possibly under the old name) is
	// dropped and the updated configuration registered in its place.
	if h.registrar != nil {
		h.registrar.RemoveGesture(previousName)
		if cfg.Enabled {
			if err := h.registrar.ApplyGesture(cfg); err != nil {
				writeError(w, http.StatusInternalServerError, "failed to apply gesture")
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, toResponse(cfg))
}

// delete handles DELETE /api/gestures/{id}.
func (h *GestureHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	g, err := h.store.Gestures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "gesture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load gesture")
		return
	}

	if err := h.store.Gestures().Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete gesture")
		return
	}

	if h.registrar != nil {
		h.registrar.RemoveGesture(g.Name)
	}

	w.WriteHeader(http.StatusNoContent)
}
