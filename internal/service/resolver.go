package service

import (
	"time"

	"github.com/calor-home/calor/internal/domain"
)

// ResolveMode applies the fixed priority order for one room against a
// cycle's snapshot of overrides, calendar intent and occupancy. First
// match wins, nothing combines:
//
//  1. unexpired override
//  2. absence event → frost protection, house-wide
//  3. nobody home → eco
//  4. room-specific comfort event
//  5. global comfort event
//  6. default eco
func ResolveMode(
	room *domain.Room,
	overrides map[string]domain.Override,
	intent domain.CalendarIntent,
	occupied bool,
	now time.Time,
) (domain.Mode, domain.Source) {
	if o, ok := overrides[room.ID]; ok && !o.Expired(now) {
		return o.Mode, domain.SourceOverride
	}

	if intent.Absence {
		return domain.ModeFrost, domain.SourceCalendar
	}

	if !occupied {
		return domain.ModeEco, domain.SourcePresence
	}

	if intent.WantsComfort(NormalizeToken(room.Name), NormalizeToken(room.ID)) {
		return domain.ModeComfort, domain.SourceCalendar
	}

	if intent.ComfortGlobal {
		return domain.ModeComfort, domain.SourceCalendar
	}

	return domain.ModeEco, domain.SourceDefault
}
