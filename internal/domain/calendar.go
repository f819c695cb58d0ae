package domain

import "time"

// CalendarEvent is one scheduling entry from the household calendar.
// Titles carry the heating instructions: "absence", "confort", or
// "confort {room}".
type CalendarEvent struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CalendarIntent is the reduction of the currently-active events:
// whether the house is declared absent, whether comfort is requested
// everywhere, and which rooms are requested individually. Qualifying
// events combine; none takes priority over another.
type CalendarIntent struct {
	Absence       bool
	ComfortGlobal bool
	ComfortRooms  map[string]struct{}
}

func NewCalendarIntent() CalendarIntent {
	return CalendarIntent{ComfortRooms: make(map[string]struct{})}
}

// WantsComfort reports whether any of the given tokens (a room's
// normalized name or id) is named by a room-specific comfort event.
func (i CalendarIntent) WantsComfort(tokens ...string) bool {
	for _, t := range tokens {
		if _, ok := i.ComfortRooms[t]; ok {
			return true
		}
	}
	return false
}
