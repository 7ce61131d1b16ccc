package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vortex/composer-api/internal/service"
	"github.com/vortex/composer-api/pkg/response"
)

// SessionHandler exposes the composer session lifecycle over HTTP.
type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create handles POST /api/v1/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, _ *http.Request) {
	id := h.svc.Create()
	response.JSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

type applyRequest struct {
	Commands []service.Command `json:"commands"`
}

// Apply handles POST /api/v1/sessions/{id}/commands.
func (h *SessionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Apply(id, req.Commands)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Content handles GET /api/v1/sessions/{id}/content.
func (h *SessionHandler) Content(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	snapshot, err := h.svc.Content(id)
	if err != nil {
		response.Error(w, http.StatusNotFound, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, snapshot)
}

// Delete handles DELETE /api/v1/sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.svc.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
