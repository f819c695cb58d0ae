package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calor-home/calor/internal/domain"
	"github.com/calor-home/calor/internal/service"
	"github.com/go-chi/chi/v5"
)

type RoomHandler struct {
	svc    *service.RoomService
	engine *service.Engine
}

func NewRoomHandler(svc *service.RoomService, engine *service.Engine) *RoomHandler {
	return &RoomHandler{svc: svc, engine: engine}
}

type roomRequest struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Targets   *domain.Targets `json:"targets,omitempty"`
	Sensor    string          `json:"sensor,omitempty"`
	Radiators []string        `json:"radiators"`
}

func (req *roomRequest) toRoom() *domain.Room {
	room := &domain.Room{
		ID:        req.ID,
		Name:      req.Name,
		Type:      domain.RoomType(req.Type),
		Sensor:    req.Sensor,
		Radiators: req.Radiators,
	}
	if req.Targets != nil {
		room.Targets = *req.Targets
	}
	return room
}

func writeRoomError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRoomIDMissing),
		errors.Is(err, service.ErrRoomNameMissing),
		errors.Is(err, service.ErrInvalidRoomType),
		errors.Is(err, service.ErrNoRadiators):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRoomAlreadyExist):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "room operation failed")
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room := req.toRoom()
	if err := h.svc.Create(r.Context(), room); err != nil {
		writeRoomError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room := req.toRoom()
	room.ID = chi.URLParam(r, "id")
	if err := h.svc.Update(r.Context(), room); err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRoomError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetState returns the room's resolved state from the last cycle.
func (h *RoomHandler) GetState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		writeRoomError(w, err)
		return
	}

	state, ok := h.engine.RoomState(id)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no cycle has completed for this room yet")
		return
	}
	writeJSON(w, http.StatusOK, state)
}
