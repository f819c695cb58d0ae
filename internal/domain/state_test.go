package domain

import (
	"testing"
	"time"
)

func roomStates(modes ...Mode) map[string]RoomState {
	rooms := make(map[string]RoomState, len(modes))
	for i, m := range modes {
		rooms[string(rune('a'+i))] = RoomState{Mode: m}
	}
	return rooms
}

func TestDominantMode_MostFrequentWins(t *testing.T) {
	rooms := roomStates(ModeEco, ModeEco, ModeComfort)
	if got := DominantMode(rooms); got != ModeEco {
		t.Errorf("DominantMode = %s, want eco", got)
	}
}

func TestDominantMode_TieBreaksTowardWarmer(t *testing.T) {
	tests := []struct {
		name  string
		modes []Mode
		want  Mode
	}{
		{"comfort over eco", []Mode{ModeComfort, ModeEco}, ModeComfort},
		{"eco over frost", []Mode{ModeEco, ModeFrost}, ModeEco},
		{"frost over off", []Mode{ModeFrost, ModeOff}, ModeFrost},
		{"three-way tie", []Mode{ModeComfort, ModeEco, ModeFrost}, ModeComfort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantMode(roomStates(tt.modes...)); got != tt.want {
				t.Errorf("DominantMode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDominantMode_EmptyHouseDefaultsEco(t *testing.T) {
	if got := DominantMode(nil); got != ModeEco {
		t.Errorf("DominantMode = %s, want eco", got)
	}
}

func TestOverride_Expired(t *testing.T) {
	now := time.Now()

	if (Override{Mode: ModeComfort}).Expired(now) {
		t.Error("override without expiry never expires")
	}

	past := now.Add(-time.Minute)
	if !(Override{Mode: ModeComfort, ExpiresAt: &past}).Expired(now) {
		t.Error("past expiry must read as expired")
	}

	future := now.Add(time.Minute)
	if (Override{Mode: ModeComfort, ExpiresAt: &future}).Expired(now) {
		t.Error("future expiry must not read as expired")
	}
}
