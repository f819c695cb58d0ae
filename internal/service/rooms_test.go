package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/calor-home/calor/internal/domain"
)

func newRoomService() (*RoomService, *fakeRoomStore) {
	store := newFakeRoomStore()
	return NewRoomService(store, NewHistoryStore(30*time.Minute)), store
}

func TestRoomService_CreateFillsDefaultTargets(t *testing.T) {
	svc, _ := newRoomService()

	room := &domain.Room{
		ID:        "SDB",
		Name:      "Salle de bain",
		Type:      domain.RoomBathroom,
		Radiators: []string{"climate.sdb"},
	}
	if err := svc.Create(context.Background(), room); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if room.ID != "sdb" {
		t.Errorf("id = %q, want normalized \"sdb\"", room.ID)
	}
	if room.Targets.Comfort != 22 || room.Targets.Eco != 17 || room.Targets.Frost != 7 {
		t.Errorf("targets = %+v, want bathroom defaults", room.Targets)
	}
}

func TestRoomService_CreateKeepsExplicitTargets(t *testing.T) {
	svc, _ := newRoomService()

	room := &domain.Room{
		ID:        "bureau",
		Name:      "Bureau",
		Type:      domain.RoomOffice,
		Targets:   domain.Targets{Comfort: 20.5, Eco: 16.5, Frost: 8},
		Radiators: []string{"climate.bureau"},
	}
	if err := svc.Create(context.Background(), room); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if room.Targets.Comfort != 20.5 {
		t.Errorf("explicit comfort target overwritten: %f", room.Targets.Comfort)
	}
}

func TestRoomService_Validation(t *testing.T) {
	svc, _ := newRoomService()
	ctx := context.Background()

	tests := []struct {
		name string
		room domain.Room
		want error
	}{
		{"missing id", domain.Room{Name: "X", Type: domain.RoomOther, Radiators: []string{"climate.x"}}, ErrRoomIDMissing},
		{"missing name", domain.Room{ID: "x", Type: domain.RoomOther, Radiators: []string{"climate.x"}}, ErrRoomNameMissing},
		{"bad type", domain.Room{ID: "x", Name: "X", Type: "garage_spatial", Radiators: []string{"climate.x"}}, ErrInvalidRoomType},
		{"no radiators", domain.Room{ID: "x", Name: "X", Type: domain.RoomOther}, ErrNoRadiators},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := tt.room
			if err := svc.Create(ctx, &room); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRoomService_CreateDuplicate(t *testing.T) {
	svc, _ := newRoomService()
	ctx := context.Background()

	room := domain.Room{ID: "bureau", Name: "Bureau", Type: domain.RoomOffice, Radiators: []string{"climate.bureau"}}
	first := room
	if err := svc.Create(ctx, &first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := room
	if err := svc.Create(ctx, &second); !errors.Is(err, ErrRoomAlreadyExist) {
		t.Errorf("err = %v, want ErrRoomAlreadyExist", err)
	}
}

func TestRoomService_DeleteDropsHistory(t *testing.T) {
	store := newFakeRoomStore(domain.Room{
		ID: "bureau", Name: "Bureau", Type: domain.RoomOffice, Radiators: []string{"climate.bureau"},
	})
	history := NewHistoryStore(30 * time.Minute)
	svc := NewRoomService(store, history)

	history.Record("bureau", time.Now(), 19.0)

	if err := svc.Delete(context.Background(), "bureau"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if history.SampleCount("bureau") != 0 {
		t.Error("room deletion must drop the temperature history")
	}
	if _, err := svc.GetByID(context.Background(), "bureau"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestRoomService_UpdateMissingRoom(t *testing.T) {
	svc, _ := newRoomService()

	room := domain.Room{ID: "fantome", Name: "Fantôme", Type: domain.RoomOther, Radiators: []string{"climate.x"}}
	if err := svc.Update(context.Background(), &room); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}
