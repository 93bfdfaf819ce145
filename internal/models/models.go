package models

import (
	"time"

	"github.com/lib/pq"
)

// ShotRecord is one settled shot in the shot journal.
type ShotRecord struct {
	ID          int64         `db:"id" json:"id"`
	TableID     string        `db:"table_id" json:"table_id"`
	ShotNumber  int           `db:"shot_number" json:"shot_number"`
	Angle       float64       `db:"angle" json:"angle"`
	Power       float64       `db:"power" json:"power"`
	Frames      int           `db:"frames" json:"frames"`
	Pocketed    pq.Int64Array `db:"pocketed" json:"pocketed"`
	BallHits    int           `db:"ball_hits" json:"ball_hits"`
	CushionHits int           `db:"cushion_hits" json:"cushion_hits"`
	StartedAt   time.Time     `db:"started_at" json:"started_at"`
	SettledAt   time.Time     `db:"settled_at" json:"settled_at"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}
