package handlers

import (
	"net/http"
	"time"

	"github.com/calor-home/calor/internal/service"
	"github.com/go-chi/chi/v5"
)

type StateHandler struct {
	rooms   *service.RoomService
	learner *service.LearnerService
	engine  *service.Engine
}

func NewStateHandler(rooms *service.RoomService, learner *service.LearnerService, engine *service.Engine) *StateHandler {
	return &StateHandler{rooms: rooms, learner: learner, engine: engine}
}

// GetHouse returns the aggregate and per-room state of the last cycle.
func (h *StateHandler) GetHouse(w http.ResponseWriter, r *http.Request) {
	state := h.engine.State()
	if state == nil {
		writeError(w, http.StatusServiceUnavailable, "no cycle has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Refresh runs one cycle now. Serialized with the timer: an in-flight
// cycle finishes first.
func (h *StateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.RunCycle(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cycle failed")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GetLearning returns the room's learning statistics and the prediction
// the model would make right now.
func (h *StateHandler) GetLearning(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRoomError(w, err)
		return
	}

	var outdoor *float64
	if house := h.engine.State(); house != nil {
		outdoor = house.OutdoorTemp
	}

	stats := h.learner.Stats(r.Context(), room.ID)
	prediction := h.learner.Predict(r.Context(), room.ID, outdoor, time.Now())

	writeJSON(w, http.StatusOK, map[string]any{
		"room_id":    room.ID,
		"stats":      stats,
		"prediction": prediction,
	})
}
