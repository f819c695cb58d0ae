package service

import (
	"testing"
	"time"

	"github.com/calor-home/calor/internal/domain"
)

func testRoom() *domain.Room {
	return &domain.Room{
		ID:        "bureau",
		Name:      "Bureau",
		Type:      domain.RoomOffice,
		Targets:   domain.Targets{Comfort: 19, Eco: 17, Frost: 7},
		Radiators: []string{"climate.bureau"},
	}
}

func intentWith(absence, global bool, rooms ...string) domain.CalendarIntent {
	intent := domain.NewCalendarIntent()
	intent.Absence = absence
	intent.ComfortGlobal = global
	for _, r := range rooms {
		intent.ComfortRooms[r] = struct{}{}
	}
	return intent
}

func TestResolveMode_PriorityOrder(t *testing.T) {
	now := time.Now()
	room := testRoom()
	noOverrides := map[string]domain.Override{}

	tests := []struct {
		name       string
		overrides  map[string]domain.Override
		intent     domain.CalendarIntent
		occupied   bool
		wantMode   domain.Mode
		wantSource domain.Source
	}{
		{
			name:       "override beats everything",
			overrides:  map[string]domain.Override{"bureau": {Mode: domain.ModeComfort}},
			intent:     intentWith(true, false),
			occupied:   false,
			wantMode:   domain.ModeComfort,
			wantSource: domain.SourceOverride,
		},
		{
			name:       "absence beats occupancy and comfort",
			overrides:  noOverrides,
			intent:     intentWith(true, true, "bureau"),
			occupied:   true,
			wantMode:   domain.ModeFrost,
			wantSource: domain.SourceCalendar,
		},
		{
			name:       "nobody home beats comfort events",
			overrides:  noOverrides,
			intent:     intentWith(false, true, "bureau"),
			occupied:   false,
			wantMode:   domain.ModeEco,
			wantSource: domain.SourcePresence,
		},
		{
			name:       "room comfort event",
			overrides:  noOverrides,
			intent:     intentWith(false, false, "bureau"),
			occupied:   true,
			wantMode:   domain.ModeComfort,
			wantSource: domain.SourceCalendar,
		},
		{
			name:       "global comfort event",
			overrides:  noOverrides,
			intent:     intentWith(false, true),
			occupied:   true,
			wantMode:   domain.ModeComfort,
			wantSource: domain.SourceCalendar,
		},
		{
			name:       "default eco",
			overrides:  noOverrides,
			intent:     intentWith(false, false),
			occupied:   true,
			wantMode:   domain.ModeEco,
			wantSource: domain.SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, source := ResolveMode(room, tt.overrides, tt.intent, tt.occupied, now)
			if mode != tt.wantMode || source != tt.wantSource {
				t.Errorf("got (%s, %s), want (%s, %s)", mode, source, tt.wantMode, tt.wantSource)
			}
		})
	}
}

func TestResolveMode_ExpiredOverrideIgnored(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Minute)
	overrides := map[string]domain.Override{
		"bureau": {Mode: domain.ModeFrost, ExpiresAt: &expired},
	}

	mode, source := ResolveMode(testRoom(), overrides, intentWith(false, false), true, now)
	if mode != domain.ModeEco || source != domain.SourceDefault {
		t.Errorf("expired override must fall through, got (%s, %s)", mode, source)
	}
}

func TestResolveMode_MatchesRoomName(t *testing.T) {
	now := time.Now()
	room := testRoom()
	room.ID = "piece_1"
	room.Name = "Bureau"

	mode, _ := ResolveMode(room, nil, intentWith(false, false, "bureau"), true, now)
	if mode != domain.ModeComfort {
		t.Errorf("room name token should match comfort event, got %s", mode)
	}
}
