package service

import (
	"context"

	"github.com/calor-home/calor/internal/domain"
	"go.uber.org/zap"
)

// PresenceService reduces the configured trackers to a single
// house-occupied boolean.
type PresenceService struct {
	source   domain.PresenceSource
	trackers []string
	logger   *zap.Logger
}

func NewPresenceService(source domain.PresenceSource, trackers []string, logger *zap.Logger) *PresenceService {
	return &PresenceService{source: source, trackers: trackers, logger: logger}
}

// Occupied is the OR across all trackers. Unknown or unreadable trackers
// are excluded from the OR; an empty tracker set is not occupied, which
// fails toward eco rather than frost protection.
func (s *PresenceService) Occupied(ctx context.Context) bool {
	for _, id := range s.trackers {
		state, err := s.source.TrackerState(ctx, id)
		if err != nil {
			s.logger.Warn("tracker unreadable", zap.String("tracker", id), zap.Error(err))
			continue
		}
		if state == domain.TrackerHome {
			return true
		}
	}
	return false
}
