package store

import (
	"context"

	"github.com/calor-home/calor/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxObservationsPerRoom caps the learned-rate dataset so storage stays
// bounded; the oldest rows beyond the cap are pruned on insert.
const maxObservationsPerRoom = 100

type RateObservationStore struct {
	db *pgxpool.Pool
}

func NewRateObservationStore(db *pgxpool.Pool) *RateObservationStore {
	return &RateObservationStore{db: db}
}

func (s *RateObservationStore) Append(ctx context.Context, obs *domain.RateObservation) error {
	if _, err := s.db.Exec(ctx,
		`INSERT INTO rate_observations (room_id, rate, outdoor_temp, hour, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		obs.RoomID, obs.Rate, obs.OutdoorTemp, obs.Hour, obs.RecordedAt,
	); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx,
		`DELETE FROM rate_observations
		 WHERE room_id = $1 AND id NOT IN (
			SELECT id FROM rate_observations
			WHERE room_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		 )`,
		obs.RoomID, maxObservationsPerRoom,
	)
	return err
}

func (s *RateObservationStore) ListByRoom(ctx context.Context, roomID string) ([]domain.RateObservation, error) {
	rows, err := s.db.Query(ctx,
		`SELECT room_id, rate, outdoor_temp, hour, recorded_at
		 FROM rate_observations WHERE room_id = $1
		 ORDER BY recorded_at ASC`,
		roomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []domain.RateObservation
	for rows.Next() {
		var o domain.RateObservation
		if err := rows.Scan(&o.RoomID, &o.Rate, &o.OutdoorTemp, &o.Hour, &o.RecordedAt); err != nil {
			return nil, err
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}
