package store

import (
	"context"
	"errors"

	"github.com/calor-home/calor/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomStore struct {
	db *pgxpool.Pool
}

func NewRoomStore(db *pgxpool.Pool) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) Create(ctx context.Context, r *domain.Room) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO rooms (id, name, type, comfort_temp, eco_temp, frost_temp, sensor, radiators, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.ID, r.Name, r.Type, r.Targets.Comfort, r.Targets.Eco, r.Targets.Frost, r.Sensor, r.Radiators, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (s *RoomStore) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var r domain.Room
	err := s.db.QueryRow(ctx,
		`SELECT id, name, type, comfort_temp, eco_temp, frost_temp, sensor, radiators, created_at, updated_at
		 FROM rooms WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Name, &r.Type, &r.Targets.Comfort, &r.Targets.Eco, &r.Targets.Frost, &r.Sensor, &r.Radiators, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoomStore) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, type, comfort_temp, eco_temp, frost_temp, sensor, radiators, created_at, updated_at
		 FROM rooms ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var r domain.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Targets.Comfort, &r.Targets.Eco, &r.Targets.Frost, &r.Sensor, &r.Radiators, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (s *RoomStore) Update(ctx context.Context, r *domain.Room) error {
	_, err := s.db.Exec(ctx,
		`UPDATE rooms
		 SET name = $2, type = $3, comfort_temp = $4, eco_temp = $5, frost_temp = $6, sensor = $7, radiators = $8, updated_at = $9
		 WHERE id = $1`,
		r.ID, r.Name, r.Type, r.Targets.Comfort, r.Targets.Eco, r.Targets.Frost, r.Sensor, r.Radiators, r.UpdatedAt,
	)
	return err
}

func (s *RoomStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}
