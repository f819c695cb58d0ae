package service

import (
	"strings"
	"time"

	"github.com/calor-home/calor/internal/domain"
)

const (
	eventAbsence = "absence"
	eventComfort = "confort"
)

// NormalizeTitle lowers and trims an event title and collapses the
// " - " separator so "Confort - Salon" matches "confort salon".
func NormalizeTitle(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	return strings.ReplaceAll(s, " - ", " ")
}

// NormalizeToken canonicalizes a room name or id for membership tests.
func NormalizeToken(token string) string {
	return strings.TrimSpace(strings.ToLower(token))
}

// ParseIntent reduces the events active at now into a CalendarIntent.
// Unrecognized titles are ignored; qualifying events combine via OR /
// set union with no priority among them.
func ParseIntent(events []domain.CalendarEvent, now time.Time) domain.CalendarIntent {
	intent := domain.NewCalendarIntent()

	for _, ev := range events {
		if ev.Start.IsZero() || ev.End.IsZero() {
			continue
		}
		if now.Before(ev.Start) || now.After(ev.End) {
			continue
		}

		title := NormalizeTitle(ev.Title)
		switch {
		case title == eventAbsence:
			intent.Absence = true
		case title == eventComfort:
			intent.ComfortGlobal = true
		case strings.HasPrefix(title, eventComfort+" "):
			token := strings.TrimSpace(title[len(eventComfort)+1:])
			if token != "" {
				intent.ComfortRooms[token] = struct{}{}
			}
		}
	}

	return intent
}

// NextComfortEvent finds the earliest strictly-future comfort event
// relevant to the room: global "confort" or "confort {name|id}".
// Returns nil when no such event exists.
func NextComfortEvent(events []domain.CalendarEvent, room *domain.Room, now time.Time) *domain.CalendarEvent {
	name := NormalizeToken(room.Name)
	id := NormalizeToken(room.ID)

	var next *domain.CalendarEvent
	for i := range events {
		ev := &events[i]
		title := NormalizeTitle(ev.Title)

		relevant := title == eventComfort ||
			title == eventComfort+" "+name ||
			title == eventComfort+" "+id
		if !relevant {
			continue
		}
		if ev.Start.IsZero() || !ev.Start.After(now) {
			continue
		}
		if next == nil || ev.Start.Before(next.Start) {
			next = ev
		}
	}
	return next
}
