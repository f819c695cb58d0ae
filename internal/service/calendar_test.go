package service

import (
	"testing"
	"time"

	"github.com/calor-home/calor/internal/domain"
)

func TestNormalizeTitle_Idempotent(t *testing.T) {
	titles := []string{"  Confort  Bureau ", "ABSENCE", "Confort - Salon", "confort"}
	for _, title := range titles {
		once := NormalizeTitle(title)
		twice := NormalizeTitle(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestParseIntent_CaseAndWhitespaceInsensitive(t *testing.T) {
	now := time.Now()
	active := func(title string) domain.CalendarEvent {
		return domain.CalendarEvent{
			Title: title,
			Start: now.Add(-time.Hour),
			End:   now.Add(time.Hour),
		}
	}

	for _, title := range []string{"confort bureau", "Confort Bureau", "  CONFORT  bureau  ", "Confort - Bureau"} {
		intent := ParseIntent([]domain.CalendarEvent{active(title)}, now)
		if !intent.WantsComfort("bureau") {
			t.Errorf("title %q did not resolve to comfort for bureau", title)
		}
	}
}

func TestParseIntent_Combination(t *testing.T) {
	now := time.Now()
	events := []domain.CalendarEvent{
		{Title: "Absence", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		{Title: "confort", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		{Title: "confort salon", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		{Title: "confort chambre", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		{Title: "dentist appointment", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
	}

	intent := ParseIntent(events, now)

	if !intent.Absence {
		t.Error("expected absence")
	}
	if !intent.ComfortGlobal {
		t.Error("expected global comfort")
	}
	if len(intent.ComfortRooms) != 2 {
		t.Errorf("expected 2 comfort rooms, got %d", len(intent.ComfortRooms))
	}
	if !intent.WantsComfort("salon") || !intent.WantsComfort("chambre") {
		t.Error("expected salon and chambre comfort rooms")
	}
}

func TestParseIntent_IgnoresInactiveEvents(t *testing.T) {
	now := time.Now()
	events := []domain.CalendarEvent{
		// Already over
		{Title: "absence", Start: now.Add(-3 * time.Hour), End: now.Add(-2 * time.Hour)},
		// Not started yet
		{Title: "confort", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
	}

	intent := ParseIntent(events, now)
	if intent.Absence || intent.ComfortGlobal {
		t.Error("inactive events must not contribute to intent")
	}
}

func TestNextComfortEvent_EarliestFutureWins(t *testing.T) {
	now := time.Now()
	room := &domain.Room{ID: "bureau", Name: "Bureau", Radiators: []string{"climate.bureau"}}

	events := []domain.CalendarEvent{
		{Title: "confort bureau", Start: now.Add(4 * time.Hour), End: now.Add(5 * time.Hour)},
		{Title: "confort", Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour)},
		// In progress: not a future event
		{Title: "confort bureau", Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		// Different room
		{Title: "confort salon", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
	}

	next := NextComfortEvent(events, room, now)
	if next == nil {
		t.Fatal("expected a next comfort event")
	}
	if !next.Start.Equal(now.Add(2 * time.Hour)) {
		t.Errorf("expected the global event in 2h, got start %v", next.Start)
	}
}

func TestNextComfortEvent_NoneFound(t *testing.T) {
	now := time.Now()
	room := &domain.Room{ID: "bureau", Name: "Bureau", Radiators: []string{"climate.bureau"}}

	events := []domain.CalendarEvent{
		{Title: "confort salon", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
		{Title: "absence", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
	}

	if next := NextComfortEvent(events, room, now); next != nil {
		t.Errorf("expected no event, got %+v", next)
	}
}

func TestNextComfortEvent_MatchesRoomIDToken(t *testing.T) {
	now := time.Now()
	room := &domain.Room{ID: "chambre_sud", Name: "Chambre Sud", Radiators: []string{"climate.sud"}}

	events := []domain.CalendarEvent{
		{Title: "Confort chambre_sud", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
	}

	if next := NextComfortEvent(events, room, now); next == nil {
		t.Error("expected the room id token to match")
	}
}
