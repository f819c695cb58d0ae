package domain

import "time"

// Source names the rule that decided a room's mode.
type Source string

const (
	SourceCalendar     Source = "calendar"
	SourcePresence     Source = "presence"
	SourceOverride     Source = "override"
	SourceAnticipation Source = "anticipation"
	SourceDefault      Source = "default"
)

// Override is an operator-forced mode for one room. A nil ExpiresAt
// means it holds until cleared.
type Override struct {
	Mode      Mode       `json:"mode"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (o Override) Expired(now time.Time) bool {
	return o.ExpiresAt != nil && now.After(*o.ExpiresAt)
}

// RoomState is the outcome of one resolution cycle for one room.
type RoomState struct {
	RoomID         string     `json:"room_id"`
	Mode           Mode       `json:"mode"`
	Source         Source     `json:"source"`
	Target         float64    `json:"target"`
	Temperature    *float64   `json:"temperature,omitempty"`
	Rate           *float64   `json:"rate,omitempty"`
	LearnedRate    *float64   `json:"learned_rate,omitempty"`
	PreheatMinutes int        `json:"preheat_minutes"`
	PreheatActive  bool       `json:"preheat_active"`
	NextComfort    *time.Time `json:"next_comfort,omitempty"`
	SampleCount    int        `json:"sample_count"`
	AvgLearnedRate *float64   `json:"avg_learned_rate,omitempty"`
}

// HouseState aggregates one cycle's outcome across all rooms.
type HouseState struct {
	Mode        Mode                 `json:"mode"`
	Occupied    bool                 `json:"occupied"`
	OutdoorTemp *float64             `json:"outdoor_temp,omitempty"`
	Rooms       map[string]RoomState `json:"rooms"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// DominantMode is the most frequent mode across rooms, the warmer one
// winning ties. An empty house reads as eco.
func DominantMode(rooms map[string]RoomState) Mode {
	counts := make(map[Mode]int, len(rooms))
	for _, rs := range rooms {
		counts[rs.Mode]++
	}

	dominant := ModeEco
	best := 0
	for mode, n := range counts {
		if n > best || (n == best && mode.Warmer(dominant)) {
			dominant = mode
			best = n
		}
	}
	return dominant
}
