package service

import (
	"errors"
	"sync"
	"time"

	"github.com/calor-home/calor/internal/domain"
)

var ErrInvalidOverrideMode = errors.New("invalid override mode")

// OverrideRegistry holds operator-forced modes per room. Writes are
// atomic with respect to a running cycle: the engine reads a snapshot
// once per cycle, so a command lands entirely before or entirely after
// that cycle's resolution.
type OverrideRegistry struct {
	mu        sync.RWMutex
	overrides map[string]domain.Override
}

func NewOverrideRegistry() *OverrideRegistry {
	return &OverrideRegistry{overrides: make(map[string]domain.Override)}
}

// Set forces a mode for a room, optionally expiring after duration.
func (r *OverrideRegistry) Set(roomID string, mode domain.Mode, duration *time.Duration) error {
	if !domain.ValidMode(string(mode)) {
		return ErrInvalidOverrideMode
	}

	var expiry *time.Time
	if duration != nil && *duration > 0 {
		t := time.Now().Add(*duration)
		expiry = &t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[roomID] = domain.Override{Mode: mode, ExpiresAt: expiry}
	return nil
}

// Clear removes the override for one room. Returns whether one existed.
func (r *OverrideRegistry) Clear(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.overrides[roomID]
	delete(r.overrides, roomID)
	return ok
}

// ClearAll removes every override.
func (r *OverrideRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides = make(map[string]domain.Override)
}

// Get returns the room's override if present, pruning it when expired.
func (r *OverrideRegistry) Get(roomID string, now time.Time) (domain.Override, bool) {
	r.mu.RLock()
	o, ok := r.overrides[roomID]
	r.mu.RUnlock()
	if !ok {
		return domain.Override{}, false
	}
	if o.Expired(now) {
		r.mu.Lock()
		delete(r.overrides, roomID)
		r.mu.Unlock()
		return domain.Override{}, false
	}
	return o, true
}

// Snapshot returns the unexpired overrides as of now. The engine takes
// one snapshot per cycle.
func (r *OverrideRegistry) Snapshot(now time.Time) map[string]domain.Override {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := make(map[string]domain.Override, len(r.overrides))
	for roomID, o := range r.overrides {
		if o.Expired(now) {
			delete(r.overrides, roomID)
			continue
		}
		snap[roomID] = o
	}
	return snap
}
