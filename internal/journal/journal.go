package journal

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/playmatatu/billiards/internal/models"
	"github.com/playmatatu/billiards/internal/session"
)

const defaultListLimit = 50

// Journal appends settled shots to Postgres. Entries are write-once; a
// table is never rebuilt from them.
type Journal struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Journal {
	return &Journal{db: db}
}

// RecordShot implements session.ShotRecorder.
func (j *Journal) RecordShot(ctx context.Context, shot session.ShotSummary) error {
	pocketed := make([]int64, len(shot.Pocketed))
	for i, id := range shot.Pocketed {
		pocketed[i] = int64(id)
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO shots (table_id, shot_number, angle, power, frames, pocketed, ball_hits, cushion_hits, started_at, settled_at, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW())`,
		shot.SessionID, shot.ShotNumber, shot.Angle, shot.Power, shot.Frames,
		pq.Array(pocketed), shot.BallHits, shot.CushionHits, shot.StartedAt, shot.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert shot %d for table %s: %w", shot.ShotNumber, shot.SessionID, err)
	}
	return nil
}

// ListShots returns the most recent shots of a table, newest first.
func (j *Journal) ListShots(ctx context.Context, tableID string, limit int) ([]models.ShotRecord, error) {
	limit = clampLimit(limit)

	shots := []models.ShotRecord{}
	err := j.db.SelectContext(ctx, &shots,
		`SELECT id, table_id, shot_number, angle, power, frames, pocketed, ball_hits, cushion_hits, started_at, settled_at, created_at
		 FROM shots WHERE table_id = $1 ORDER BY shot_number DESC LIMIT $2`,
		tableID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list shots for table %s: %w", tableID, err)
	}
	return shots, nil
}

// clampLimit keeps a requested page size within (0, defaultListLimit].
func clampLimit(limit int) int {
	if limit <= 0 || limit > defaultListLimit {
		return defaultListLimit
	}
	return limit
}
