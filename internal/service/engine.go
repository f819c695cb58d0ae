package service

import (
	"context"
	"sync"
	"time"

	"github.com/calor-home/calor/internal/domain"
	"go.uber.org/zap"
)

// calendarLookahead bounds how far ahead events are fetched; preheat
// never needs to see further than a day out.
const calendarLookahead = 24 * time.Hour

// cycleTimeout bounds one full pass, collaborator I/O included.
const cycleTimeout = 2 * time.Minute

// EngineDeps groups the collaborators and sub-services the cycle engine
// drives. Everything is injected; the engine owns no hidden globals.
type EngineDeps struct {
	Rooms       *RoomService
	Presence    *PresenceService
	Learner     *LearnerService
	Planner     *PreheatPlanner
	Overrides   *OverrideRegistry
	History     *HistoryStore
	Calendar    domain.CalendarSource
	Thermometer domain.TemperatureSource
	Actuator    domain.Actuator
}

// Engine runs one full resolution pass over all rooms per tick and
// serves the last computed house state. Cycles never overlap: a due
// tick waits for the in-flight cycle to finish.
type Engine struct {
	deps          EngineDeps
	outdoorSensor string
	logger        *zap.Logger

	cycleMu sync.Mutex // serializes RunCycle

	stateMu   sync.RWMutex
	lastState *domain.HouseState

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewEngine(deps EngineDeps, interval time.Duration, outdoorSensor string, logger *zap.Logger) *Engine {
	return &Engine{
		deps:          deps,
		outdoorSensor: outdoorSensor,
		logger:        logger,
		interval:      interval,
		stopCh:        make(chan struct{}),
	}
}

// Start runs the engine on a periodic schedule in a background goroutine.
func (e *Engine) Start() {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		e.logger.Info("heating engine started", zap.Duration("interval", e.interval))

		// First pass immediately so state exists before the first tick.
		e.runOnce()

		for {
			select {
			case <-ticker.C:
				e.runOnce()
			case <-e.stopCh:
				e.logger.Info("heating engine stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the engine.
func (e *Engine) Stop() {
	close(e.stopCh)
	e.wg.Wait()
}

func (e *Engine) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()
	if _, err := e.RunCycle(ctx); err != nil {
		e.logger.Error("cycle failed", zap.Error(err))
	}
}

// State returns the house state from the last completed cycle, or nil
// before the first one finishes.
func (e *Engine) State() *domain.HouseState {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.lastState
}

// RoomState returns the last computed state for one room.
func (e *Engine) RoomState(roomID string) (domain.RoomState, bool) {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	if e.lastState == nil {
		return domain.RoomState{}, false
	}
	rs, ok := e.lastState.Rooms[NormalizeToken(roomID)]
	return rs, ok
}

// RunCycle performs one full pass over all rooms: refresh inputs,
// resolve modes, plan preheat, drive radiators, publish state. It is
// non-reentrant; timer ticks and forced refreshes share the same path
// and the same semantics. Only a room-list load failure aborts a cycle;
// every other failure degrades to an unknown input for the room it hit.
func (e *Engine) RunCycle(ctx context.Context) (*domain.HouseState, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	now := time.Now()

	rooms, err := e.deps.Rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	events := e.fetchEvents(ctx, now)
	intent := ParseIntent(events, now)
	occupied := e.deps.Presence.Occupied(ctx)
	outdoor := e.readOutdoor(ctx)
	overrides := e.deps.Overrides.Snapshot(now)

	house := &domain.HouseState{
		Occupied:    occupied,
		OutdoorTemp: outdoor,
		Rooms:       make(map[string]domain.RoomState, len(rooms)),
		UpdatedAt:   now,
	}

	for i := range rooms {
		room := &rooms[i]
		house.Rooms[room.ID] = e.processRoom(ctx, room, events, intent, occupied, outdoor, overrides, now)
	}

	house.Mode = domain.DominantMode(house.Rooms)

	e.stateMu.Lock()
	e.lastState = house
	e.stateMu.Unlock()

	return house, nil
}

func (e *Engine) processRoom(
	ctx context.Context,
	room *domain.Room,
	events []domain.CalendarEvent,
	intent domain.CalendarIntent,
	occupied bool,
	outdoor *float64,
	overrides map[string]domain.Override,
	now time.Time,
) domain.RoomState {
	current := e.readTemperature(ctx, room)
	if current != nil {
		e.deps.History.Record(room.ID, now, *current)
	}
	measured := e.deps.History.Rate(room.ID, now)
	learned := e.deps.Learner.Predict(ctx, room.ID, outdoor, now)

	// Best available rate: live measurement first, learned model as
	// fallback, planner default last.
	rate := measured
	if rate == nil {
		rate = learned
	}

	mode, source := ResolveMode(room, overrides, intent, occupied, now)
	target := room.TargetFor(mode)

	// Preheat is always estimated against the comfort target.
	preheatMinutes := e.deps.Planner.EstimateMinutes(current, room.Targets.Comfort, rate)
	preheatActive := e.deps.Planner.ShouldTrigger(events, room, preheatMinutes, now)

	// Anticipation escalates eco to comfort ahead of a scheduled comfort
	// period. It never defeats an override or a forced absence.
	if preheatActive && mode == domain.ModeEco && source != domain.SourceOverride {
		mode = domain.ModeComfort
		source = domain.SourceAnticipation
		target = room.Targets.Comfort
	}

	// A comfort phase with a valid measured climb is a learning sample.
	if mode == domain.ModeComfort && measured != nil && *measured > 0 {
		e.deps.Learner.Record(ctx, room.ID, *measured, outdoor, now)
	}

	e.driveRadiators(ctx, room, target)

	var nextComfort *time.Time
	if next := NextComfortEvent(events, room, now); next != nil {
		nextComfort = &next.Start
	}

	stats := e.deps.Learner.Stats(ctx, room.ID)

	return domain.RoomState{
		RoomID:         room.ID,
		Mode:           mode,
		Source:         source,
		Target:         target,
		Temperature:    current,
		Rate:           rate,
		LearnedRate:    learned,
		PreheatMinutes: preheatMinutes,
		PreheatActive:  preheatActive,
		NextComfort:    nextComfort,
		SampleCount:    stats.Samples,
		AvgLearnedRate: stats.AvgRate,
	}
}

func (e *Engine) fetchEvents(ctx context.Context, now time.Time) []domain.CalendarEvent {
	events, err := e.deps.Calendar.Events(ctx, now, now.Add(calendarLookahead))
	if err != nil {
		// Unreachable calendar means no schedule this cycle, not a
		// cycle failure.
		e.logger.Warn("failed to fetch calendar events", zap.Error(err))
		return nil
	}
	return events
}

// readTemperature prefers the room's external sensor and falls back to
// the radiators' internal sensors.
func (e *Engine) readTemperature(ctx context.Context, room *domain.Room) *float64 {
	if room.Sensor != "" {
		temp, err := e.deps.Thermometer.Temperature(ctx, room.Sensor)
		if err != nil {
			e.logger.Warn("sensor unreadable",
				zap.String("room", room.ID),
				zap.String("sensor", room.Sensor),
				zap.Error(err))
		} else if temp != nil {
			return temp
		}
	}

	for _, radiator := range room.Radiators {
		temp, err := e.deps.Thermometer.RadiatorTemperature(ctx, radiator)
		if err != nil {
			e.logger.Warn("radiator sensor unreadable",
				zap.String("room", room.ID),
				zap.String("radiator", radiator),
				zap.Error(err))
			continue
		}
		if temp != nil {
			return temp
		}
	}
	return nil
}

func (e *Engine) readOutdoor(ctx context.Context) *float64 {
	if e.outdoorSensor == "" {
		return nil
	}
	temp, err := e.deps.Thermometer.Temperature(ctx, e.outdoorSensor)
	if err != nil {
		e.logger.Warn("outdoor sensor unreadable", zap.Error(err))
		return nil
	}
	return temp
}

// driveRadiators writes the target to every radiator in the room.
// Failures are logged and retried on the next cycle; one radiator's
// failure does not stop the others.
func (e *Engine) driveRadiators(ctx context.Context, room *domain.Room, target float64) {
	for _, radiator := range room.Radiators {
		if err := e.deps.Actuator.SetTargetTemperature(ctx, radiator, target); err != nil {
			e.logger.Error("failed to set radiator target",
				zap.String("room", room.ID),
				zap.String("radiator", radiator),
				zap.Float64("target", target),
				zap.Error(err))
		}
	}
}
