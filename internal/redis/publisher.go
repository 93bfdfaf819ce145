package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/playmatatu/billiards/internal/session"
	"github.com/redis/go-redis/v9"
)

// TableEventsChannel carries table events between server instances and any
// other consumer (leaderboards, replays).
const TableEventsChannel = "table_events"

const EventShotSettled = "shot_settled"

// lastShotTTL bounds how long the latest shot of a table stays readable.
const lastShotTTL = time.Hour

// TableEvent is the envelope published on TableEventsChannel.
type TableEvent struct {
	Type    string          `json:"type"`
	TableID string          `json:"table_id"`
	Data    json.RawMessage `json:"data"`
}

// Publisher publishes settled shots to Redis. It implements
// session.ShotRecorder.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func lastShotKey(tableID string) string {
	return "table:" + tableID + ":last_shot"
}

// EncodeShotEvent returns the shot itself (stored as the last shot) and the
// TableEvent envelope published for it.
func EncodeShotEvent(shot session.ShotSummary) (data, payload []byte, err error) {
	data, err = json.Marshal(shot)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal shot: %w", err)
	}
	payload, err = json.Marshal(TableEvent{
		Type:    EventShotSettled,
		TableID: shot.SessionID,
		Data:    data,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, payload, nil
}

// RecordShot publishes the shot and keeps it as the table's latest shot.
func (p *Publisher) RecordShot(ctx context.Context, shot session.ShotSummary) error {
	data, payload, err := EncodeShotEvent(shot)
	if err != nil {
		return err
	}

	pipe := p.rdb.TxPipeline()
	pipe.SetEx(ctx, lastShotKey(shot.SessionID), data, lastShotTTL)
	pipe.Publish(ctx, TableEventsChannel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish shot for table %s: %w", shot.SessionID, err)
	}
	return nil
}

// LastShot returns the most recent settled shot of a table, if any.
func (p *Publisher) LastShot(ctx context.Context, tableID string) (*session.ShotSummary, error) {
	data, err := p.rdb.Get(ctx, lastShotKey(tableID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var shot session.ShotSummary
	if err := json.Unmarshal(data, &shot); err != nil {
		return nil, fmt.Errorf("decode last shot: %w", err)
	}
	return &shot, nil
}
