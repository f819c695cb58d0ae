package domain

import "time"

// RateObservation is one completed heating-phase measurement: the rate a
// room climbed at, under the conditions it climbed in.
type RateObservation struct {
	RoomID      string    `json:"room_id"`
	Rate        float64   `json:"rate"`
	OutdoorTemp *float64  `json:"outdoor_temp,omitempty"`
	Hour        int       `json:"hour"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// LearningStats summarizes a room's recorded observations.
type LearningStats struct {
	Samples int      `json:"samples"`
	AvgRate *float64 `json:"avg_rate,omitempty"`
	MinRate *float64 `json:"min_rate,omitempty"`
	MaxRate *float64 `json:"max_rate,omitempty"`
}
