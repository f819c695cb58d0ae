package service

import (
	"context"
	"errors"
	"testing"

	"github.com/calor-home/calor/internal/domain"
)

// fakePresenceSource implements domain.PresenceSource from a fixed map.
type fakePresenceSource struct {
	states map[string]domain.TrackerState
	errs   map[string]error
}

func (f *fakePresenceSource) TrackerState(ctx context.Context, trackerID string) (domain.TrackerState, error) {
	if err := f.errs[trackerID]; err != nil {
		return domain.TrackerUnknown, err
	}
	if s, ok := f.states[trackerID]; ok {
		return s, nil
	}
	return domain.TrackerUnknown, nil
}

func TestPresence_AnyTrackerHomeMeansOccupied(t *testing.T) {
	source := &fakePresenceSource{states: map[string]domain.TrackerState{
		"device_tracker.alice": domain.TrackerAway,
		"device_tracker.bob":   domain.TrackerHome,
	}}
	svc := NewPresenceService(source, []string{"device_tracker.alice", "device_tracker.bob"}, testLogger())

	if !svc.Occupied(context.Background()) {
		t.Error("one tracker home must mean occupied")
	}
}

func TestPresence_NobodyHome(t *testing.T) {
	source := &fakePresenceSource{states: map[string]domain.TrackerState{
		"device_tracker.alice": domain.TrackerAway,
	}}
	svc := NewPresenceService(source, []string{"device_tracker.alice"}, testLogger())

	if svc.Occupied(context.Background()) {
		t.Error("away tracker must not mean occupied")
	}
}

func TestPresence_EmptyTrackerSetIsNotOccupied(t *testing.T) {
	svc := NewPresenceService(&fakePresenceSource{}, nil, testLogger())
	if svc.Occupied(context.Background()) {
		t.Error("no trackers must fail toward eco, not comfort")
	}
}

func TestPresence_UnreadableTrackerExcluded(t *testing.T) {
	source := &fakePresenceSource{
		states: map[string]domain.TrackerState{"device_tracker.bob": domain.TrackerHome},
		errs:   map[string]error{"device_tracker.alice": errors.New("unreachable")},
	}
	svc := NewPresenceService(source, []string{"device_tracker.alice", "device_tracker.bob"}, testLogger())

	if !svc.Occupied(context.Background()) {
		t.Error("a broken tracker must not mask a present one")
	}
}

func TestPresence_UnknownStateExcluded(t *testing.T) {
	source := &fakePresenceSource{states: map[string]domain.TrackerState{
		"device_tracker.alice": domain.TrackerUnknown,
	}}
	svc := NewPresenceService(source, []string{"device_tracker.alice"}, testLogger())

	if svc.Occupied(context.Background()) {
		t.Error("unknown tracker state must not count as present")
	}
}
