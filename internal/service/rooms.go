package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/calor-home/calor/internal/domain"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomIDMissing    = errors.New("room id is required")
	ErrRoomNameMissing  = errors.New("room name is required")
	ErrInvalidRoomType  = errors.New("invalid room type")
	ErrNoRadiators      = errors.New("at least one radiator is required")
	ErrRoomAlreadyExist = errors.New("room already exists")
)

// RoomService validates room configuration at the boundary and owns the
// room store. The runtime engine only reads rooms.
type RoomService struct {
	store   domain.RoomStore
	history *HistoryStore
}

func NewRoomService(store domain.RoomStore, history *HistoryStore) *RoomService {
	return &RoomService{store: store, history: history}
}

func validateRoom(r *domain.Room) error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrRoomIDMissing
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrRoomNameMissing
	}
	if !domain.ValidRoomType(string(r.Type)) {
		return ErrInvalidRoomType
	}
	if len(r.Radiators) == 0 {
		return ErrNoRadiators
	}
	return nil
}

// Create stores a new room. Zero-valued targets are filled from the
// room type's defaults.
func (s *RoomService) Create(ctx context.Context, r *domain.Room) error {
	r.ID = NormalizeToken(r.ID)
	if err := validateRoom(r); err != nil {
		return err
	}

	if existing, err := s.store.GetByID(ctx, r.ID); err == nil && existing != nil {
		return ErrRoomAlreadyExist
	}

	defaults := domain.DefaultTargets(r.Type)
	if r.Targets.Comfort == 0 {
		r.Targets.Comfort = defaults.Comfort
	}
	if r.Targets.Eco == 0 {
		r.Targets.Eco = defaults.Eco
	}
	if r.Targets.Frost == 0 {
		r.Targets.Frost = defaults.Frost
	}

	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.store.Create(ctx, r)
}

func (s *RoomService) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.store.GetByID(ctx, NormalizeToken(id))
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	return s.store.List(ctx)
}

func (s *RoomService) Update(ctx context.Context, r *domain.Room) error {
	r.ID = NormalizeToken(r.ID)
	if err := validateRoom(r); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, r.ID); err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	return s.store.Update(ctx, r)
}

// Delete removes the room and drops its runtime temperature history.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	id = NormalizeToken(id)
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.history.Drop(id)
	return nil
}
