package service

import (
	"sync"
	"time"
)

// historyRetentionFactor keeps samples beyond the derivative window so
// the oldest in-window sample always has a predecessor margin.
const historyRetentionFactor = 2

type tempSample struct {
	at    time.Time
	value float64
}

// HistoryStore holds the per-room rolling temperature buffers the rate
// estimator derives from. Record and Rate run only from within a cycle;
// the lock exists because room deletion drops a buffer from the command
// path.
type HistoryStore struct {
	mu      sync.Mutex
	window  time.Duration
	samples map[string][]tempSample
}

func NewHistoryStore(window time.Duration) *HistoryStore {
	return &HistoryStore{
		window:  window,
		samples: make(map[string][]tempSample),
	}
}

// Record appends a reading for the room and evicts samples older than
// the retention horizon (window × factor).
func (h *HistoryStore) Record(roomID string, at time.Time, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := append(h.samples[roomID], tempSample{at: at, value: value})

	cutoff := at.Add(-h.window * historyRetentionFactor)
	start := 0
	for start < len(buf) && buf[start].at.Before(cutoff) {
		start++
	}
	h.samples[roomID] = buf[start:]
}

// Rate derives the heating rate in °C/h from the oldest and newest
// samples inside the derivative window. Nil when fewer than two samples
// span the window or no time elapsed between them: an unknown rate is
// never fabricated, clamping is the preheat planner's concern.
func (h *HistoryStore) Rate(roomID string, now time.Time) *float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.samples[roomID]
	cutoff := now.Add(-h.window)

	start := 0
	for start < len(buf) && buf[start].at.Before(cutoff) {
		start++
	}
	inWindow := buf[start:]
	if len(inWindow) < 2 {
		return nil
	}

	oldest := inWindow[0]
	newest := inWindow[len(inWindow)-1]
	elapsed := newest.at.Sub(oldest.at).Hours()
	if elapsed <= 0 {
		return nil
	}

	rate := (newest.value - oldest.value) / elapsed
	return &rate
}

// SampleCount reports how many samples are currently retained for the
// room, across the whole retention horizon.
func (h *HistoryStore) SampleCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples[roomID])
}

// Drop discards a room's buffer, used when the room is removed.
func (h *HistoryStore) Drop(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.samples, roomID)
}
