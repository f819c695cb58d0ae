package domain

import (
	"context"
	"time"
)

type RoomStore interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id string) error
}

type RateObservationStore interface {
	// Append stores an observation and prunes the oldest rows beyond the
	// per-room retention cap.
	Append(ctx context.Context, obs *RateObservation) error
	ListByRoom(ctx context.Context, roomID string) ([]RateObservation, error)
}

// TrackerState is what the presence source reports for one tracker.
type TrackerState string

const (
	TrackerHome    TrackerState = "home"
	TrackerAway    TrackerState = "not_home"
	TrackerUnknown TrackerState = "unknown"
)

// CalendarSource lists events active now or starting within the lookahead
// horizon. A transport failure surfaces as an error; callers treat it as
// an empty list for the cycle.
type CalendarSource interface {
	Events(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
}

type PresenceSource interface {
	TrackerState(ctx context.Context, trackerID string) (TrackerState, error)
}

// TemperatureSource reads a temperature entity. A nil value with nil
// error means the entity exists but reports unknown/unavailable.
type TemperatureSource interface {
	Temperature(ctx context.Context, entityID string) (*float64, error)
	// RadiatorTemperature reads a radiator's internal sensor, the
	// fallback when a room has no working external sensor.
	RadiatorTemperature(ctx context.Context, entityID string) (*float64, error)
}

type Actuator interface {
	SetTargetTemperature(ctx context.Context, entityID string, target float64) error
}
