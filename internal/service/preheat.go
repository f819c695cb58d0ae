package service

import (
	"time"

	"github.com/calor-home/calor/internal/domain"
)

// PreheatPlanner turns a temperature gap and a heating rate into a
// start-ahead estimate, and decides whether anticipatory heating must
// begin now to meet the next scheduled comfort period.
type PreheatPlanner struct {
	securityFactor float64
	minMinutes     int
	defaultRate    float64
}

func NewPreheatPlanner(securityFactor float64, minMinutes int, defaultRate float64) *PreheatPlanner {
	return &PreheatPlanner{
		securityFactor: securityFactor,
		minMinutes:     minMinutes,
		defaultRate:    defaultRate,
	}
}

// EstimateMinutes predicts how long the room needs to climb from
// current to target. An unknown current temperature yields the minimum
// preheat time, never zero: missing data must not read as already warm.
// A nil or non-positive rate falls back to the conservative default.
func (p *PreheatPlanner) EstimateMinutes(current *float64, target float64, rate *float64) int {
	if current == nil {
		return p.minMinutes
	}

	delta := target - *current
	if delta <= 0 {
		return 0
	}

	effectiveRate := p.defaultRate
	if rate != nil && *rate > 0 {
		effectiveRate = *rate
	}

	raw := (delta / effectiveRate) * 60
	withMargin := int(raw * p.securityFactor)
	if withMargin < p.minMinutes {
		return p.minMinutes
	}
	return withMargin
}

// ShouldTrigger reports whether anticipation must start now for the
// room's next comfort event. False when no future comfort event exists
// or the event has already begun; in-progress events belong to normal
// mode resolution.
func (p *PreheatPlanner) ShouldTrigger(events []domain.CalendarEvent, room *domain.Room, preheatMinutes int, now time.Time) bool {
	next := NextComfortEvent(events, room, now)
	if next == nil {
		return false
	}

	minutesUntil := next.Start.Sub(now).Minutes()
	return minutesUntil > 0 && minutesUntil <= float64(preheatMinutes)
}
