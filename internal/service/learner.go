package service

import (
	"context"
	"time"

	"github.com/calor-home/calor/internal/domain"
	"go.uber.org/zap"
)

const (
	// Minimum samples before a prediction is made; below this the
	// caller falls back to the live measured rate.
	learnMinSamples = 5

	// Valid heating-rate band. Cooling or barely-heating phases and
	// unrealistic spikes are not learned from.
	learnRateMin = 0.3
	learnRateMax = 5.0
)

// LearnerService records completed heating-phase rates and predicts a
// room's rate from historically similar conditions.
type LearnerService struct {
	store  domain.RateObservationStore
	logger *zap.Logger
}

func NewLearnerService(store domain.RateObservationStore, logger *zap.Logger) *LearnerService {
	return &LearnerService{store: store, logger: logger}
}

// Record stores one observation when the measured rate is inside the
// valid band. Persistence failures are logged, never escalated: a lost
// sample costs prediction quality, not correctness.
func (s *LearnerService) Record(ctx context.Context, roomID string, rate float64, outdoorTemp *float64, now time.Time) {
	if rate <= learnRateMin || rate > learnRateMax {
		return
	}

	obs := &domain.RateObservation{
		RoomID:      roomID,
		Rate:        rate,
		OutdoorTemp: outdoorTemp,
		Hour:        now.Hour(),
		RecordedAt:  now,
	}
	if err := s.store.Append(ctx, obs); err != nil {
		s.logger.Warn("failed to persist rate observation",
			zap.String("room", roomID), zap.Error(err))
		return
	}
	s.logger.Debug("recorded heating rate",
		zap.String("room", roomID),
		zap.Float64("rate", rate),
		zap.Int("hour", obs.Hour))
}

// Predict returns a similarity-weighted average of the room's recorded
// rates, or nil while fewer than learnMinSamples exist. Samples from the
// same time-of-day period weigh more; so do samples taken under a close
// outdoor temperature when both sides are known.
func (s *LearnerService) Predict(ctx context.Context, roomID string, outdoorTemp *float64, now time.Time) *float64 {
	samples, err := s.store.ListByRoom(ctx, roomID)
	if err != nil {
		// Unreadable storage is an empty dataset, not a failure.
		s.logger.Warn("failed to load rate observations",
			zap.String("room", roomID), zap.Error(err))
		return nil
	}
	if len(samples) < learnMinSamples {
		return nil
	}

	hour := now.Hour()
	var weightedSum, weightTotal float64

	for _, sample := range samples {
		weight := 1.0

		if sameDayPeriod(hour, sample.Hour) {
			weight *= 1.5
		}

		if outdoorTemp != nil && sample.OutdoorTemp != nil {
			diff := *outdoorTemp - *sample.OutdoorTemp
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff <= 5:
				weight *= 1.5
			case diff <= 10:
				weight *= 1.0
			default:
				weight *= 0.5
			}
		}

		weightedSum += sample.Rate * weight
		weightTotal += weight
	}

	if weightTotal <= 0 {
		return nil
	}
	predicted := weightedSum / weightTotal
	return &predicted
}

// Stats summarizes a room's observations for the exposed state.
func (s *LearnerService) Stats(ctx context.Context, roomID string) domain.LearningStats {
	samples, err := s.store.ListByRoom(ctx, roomID)
	if err != nil || len(samples) == 0 {
		return domain.LearningStats{}
	}

	sum := samples[0].Rate
	min := samples[0].Rate
	max := samples[0].Rate
	for _, sample := range samples[1:] {
		sum += sample.Rate
		if sample.Rate < min {
			min = sample.Rate
		}
		if sample.Rate > max {
			max = sample.Rate
		}
	}
	avg := sum / float64(len(samples))

	return domain.LearningStats{
		Samples: len(samples),
		AvgRate: &avg,
		MinRate: &min,
		MaxRate: &max,
	}
}

// sameDayPeriod buckets hours into night (22-6), morning (6-12),
// afternoon (12-18) and evening (18-22).
func sameDayPeriod(h1, h2 int) bool {
	return dayPeriod(h1) == dayPeriod(h2)
}

func dayPeriod(h int) int {
	switch {
	case h >= 6 && h < 12:
		return 1
	case h >= 12 && h < 18:
		return 2
	case h >= 18 && h < 22:
		return 3
	default:
		return 0
	}
}
