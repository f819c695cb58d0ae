package domain

import "time"

// Mode is the heating regime a room can be driven in.
type Mode string

const (
	ModeComfort Mode = "comfort"
	ModeEco     Mode = "eco"
	ModeFrost   Mode = "frost_protection"
	ModeOff     Mode = "off"
)

func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeComfort, ModeEco, ModeFrost, ModeOff:
		return true
	}
	return false
}

// warmth orders modes by the temperature they imply, for tie-breaking.
func (m Mode) warmth() int {
	switch m {
	case ModeComfort:
		return 3
	case ModeEco:
		return 2
	case ModeFrost:
		return 1
	default:
		return 0
	}
}

// Warmer reports whether m implies a higher temperature than other.
func (m Mode) Warmer(other Mode) bool {
	return m.warmth() > other.warmth()
}

// RoomType selects the default target temperatures for a room.
type RoomType string

const (
	RoomLiving       RoomType = "salon"
	RoomBedroom      RoomType = "chambre"
	RoomChildBedroom RoomType = "chambre_enfant"
	RoomOffice       RoomType = "bureau"
	RoomBathroom     RoomType = "salle_de_bain"
	RoomOther        RoomType = "autre"
)

func ValidRoomType(s string) bool {
	switch RoomType(s) {
	case RoomLiving, RoomBedroom, RoomChildBedroom, RoomOffice, RoomBathroom, RoomOther:
		return true
	}
	return false
}

// Targets holds the temperature setpoints for each heating regime.
type Targets struct {
	Comfort float64 `json:"comfort"`
	Eco     float64 `json:"eco"`
	Frost   float64 `json:"frost"`
}

// DefaultTargets returns the conventional setpoints for a room type.
// Unknown types get the generic defaults.
func DefaultTargets(t RoomType) Targets {
	switch t {
	case RoomLiving:
		return Targets{Comfort: 20, Eco: 17, Frost: 7}
	case RoomBedroom:
		return Targets{Comfort: 18, Eco: 16, Frost: 7}
	case RoomChildBedroom:
		return Targets{Comfort: 19, Eco: 17, Frost: 7}
	case RoomOffice:
		return Targets{Comfort: 19, Eco: 17, Frost: 7}
	case RoomBathroom:
		return Targets{Comfort: 22, Eco: 17, Frost: 7}
	default:
		return Targets{Comfort: 19, Eco: 17, Frost: 7}
	}
}

// Room is a configured heating zone: one optional external sensor and
// one or more radiators driven together.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      RoomType  `json:"type"`
	Targets   Targets   `json:"targets"`
	Sensor    string    `json:"sensor,omitempty"`
	Radiators []string  `json:"radiators"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TargetFor maps a resolved mode to the room's setpoint. Off keeps the
// frost setpoint so pipes never freeze.
func (r *Room) TargetFor(m Mode) float64 {
	switch m {
	case ModeComfort:
		return r.Targets.Comfort
	case ModeEco:
		return r.Targets.Eco
	default:
		return r.Targets.Frost
	}
}
