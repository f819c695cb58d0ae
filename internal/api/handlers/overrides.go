package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/calor-home/calor/internal/domain"
	"github.com/calor-home/calor/internal/service"
	"github.com/go-chi/chi/v5"
)

type OverrideHandler struct {
	rooms     *service.RoomService
	overrides *service.OverrideRegistry
	engine    *service.Engine
}

func NewOverrideHandler(rooms *service.RoomService, overrides *service.OverrideRegistry, engine *service.Engine) *OverrideHandler {
	return &OverrideHandler{rooms: rooms, overrides: overrides, engine: engine}
}

type setOverrideRequest struct {
	Mode            string `json:"mode"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// Set forces a mode for a room, then runs a cycle so the override takes
// effect immediately rather than on the next tick.
func (h *OverrideHandler) Set(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRoomError(w, err)
		return
	}

	var req setOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var duration *time.Duration
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			writeError(w, http.StatusBadRequest, "duration_minutes must be positive")
			return
		}
		d := time.Duration(*req.DurationMinutes) * time.Minute
		duration = &d
	}

	if err := h.overrides.Set(room.ID, domain.Mode(req.Mode), duration); err != nil {
		if errors.Is(err, service.ErrInvalidOverrideMode) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to set override")
		return
	}

	h.refresh(w, r)
}

// Clear removes a room's override and refreshes.
func (h *OverrideHandler) Clear(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRoomError(w, err)
		return
	}

	h.overrides.Clear(room.ID)
	h.refresh(w, r)
}

// ClearAll removes every override and refreshes.
func (h *OverrideHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.overrides.ClearAll()
	h.refresh(w, r)
}

func (h *OverrideHandler) refresh(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.RunCycle(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cycle failed")
		return
	}
	writeJSON(w, http.StatusOK, state)
}
