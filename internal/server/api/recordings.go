package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// RecorderControl starts and stops session recording on the running pipeline.
type RecorderControl interface {
	StartRecording(recordingID string) error
	StopRecording()
	ActiveRecording() string
}

// RecordingHandler handles HTTP requests for recorded hand sessions. Creating
// a recording also starts capturing the live frame stream into it when a
// recorder control is configured.
type RecordingHandler struct {
	store   *store.Store
	control RecorderControl
}

// NewRecordingHandler creates a new RecordingHandler. The control may be nil,
// in which case recordings can only be managed, not captured.
func NewRecordingHandler(s *store.Store, control RecorderControl) *RecordingHandler {
	return &RecordingHandler{store: s, control: control}
}

// ServeHTTP routes collection and item requests.
// Expected paths: /api/recordings, /api/recordings/{id}, /api/recordings/{id}/stop
func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/recordings")
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

	id, rest, _ := strings.Cut(path, "/")
	if rest == "stop" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.stop(w, r, id)
		return
	}
	if rest != "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createRecordingRequest struct {
	Name string `json:"name"`
}

type recordingResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Recording bool   `json:"recording"`
	CreatedAt string `json:"created_at"`
}

type listRecordingsResponse struct {
	Recordings []recordingResponse `json:"recordings"`
}

func (h *RecordingHandler) toRecordingResponse(rec *store.Recording) recordingResponse {
	recording := h.control != nil && h.control.ActiveRecording() == rec.ID
	return recordingResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Recording: recording,
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/recordings.
func (h *RecordingHandler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.Recordings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list recordings")
		return
	}

	resp := listRecordingsResponse{Recordings: make([]recordingResponse, 0, len(recs))}
	for _, rec := range recs {
		resp.Recordings = append(resp.Recordings, h.toRecordingResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// get handles GET /api/recordings/{id}.
func (h *RecordingHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.store.Recordings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load recording")
		return
	}
	writeJSON(w, http.StatusOK, h.toRecordingResponse(rec))
}

// create handles POST /api/recordings: it creates the recording and starts
// capturing the live session into it.
func (h *RecordingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createRecordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if h.control != nil && h.control.ActiveRecording() != "" {
		writeError(w, http.StatusConflict, "a recording is already in progress")
		return
	}

	rec := &store.Recording{ID: uuid.NewString(), Name: req.Name}
	if err := h.store.Recordings().Create(rec); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create recording")
		return
	}

	if h.control != nil {
		if err := h.control.StartRecording(rec.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to start recording")
			return
		}
	}

	writeJSON(w, http.StatusCreated, h.toRecordingResponse(rec))
}

// stop handles POST /api/recordings/{id}/stop.
func (h *RecordingHandler) stop(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Recordings().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load recording")
		return
	}

	if h.control == nil || h.control.ActiveRecording() != id {
		writeError(w, http.StatusConflict, "recording is not in progress")
		return
	}

	h.control.StopRecording()
	w.WriteHeader(http.StatusNoContent)
}

// delete handles DELETE /api/recordings/{id}. Deleting the recording being
// captured stops the capture first.
func (h *RecordingHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if h.control != nil && h.control.ActiveRecording() == id {
		h.control.StopRecording()
	}

	if err := h.store.Recordings().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete recording")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
