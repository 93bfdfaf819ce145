package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	billiardsredis "github.com/playmatatu/billiards/internal/redis"
	"github.com/playmatatu/billiards/internal/session"
	"github.com/redis/go-redis/v9"
)

// StartEventSubscriber relays table events published by any server
// instance to the clients connected here. It stops when ctx is cancelled.
func StartEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; table event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, billiardsredis.TableEventsChannel)
	ch := pubsub.Channel()

	// Closing the subscription closes ch and ends the relay loop.
	go func() {
		<-ctx.Done()
		pubsub.Close()
	}()

	go func() {
		log.Printf("[WS] %s subscriber started", billiardsredis.TableEventsChannel)
		for msg := range ch {
			if err := hub.relayEvent([]byte(msg.Payload)); err != nil {
				log.Printf("[WS] %v", err)
			}
		}
		log.Printf("[WS] %s subscriber stopped", billiardsredis.TableEventsChannel)
	}()
}

// relayEvent decodes one published TableEvent and broadcasts it to its table.
func (h *Hub) relayEvent(payload []byte) error {
	var event billiardsredis.TableEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("invalid event payload: %w", err)
	}

	switch event.Type {
	case billiardsredis.EventShotSettled:
		var shot session.ShotSummary
		if err := json.Unmarshal(event.Data, &shot); err != nil {
			return fmt.Errorf("invalid shot payload for table %s: %w", event.TableID, err)
		}
		h.BroadcastToTable(event.TableID, newShotMessage(shot))
		return nil

	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
}

// TableClosed tells every client of a table that it has been closed.
func (h *Hub) TableClosed(tableID string) {
	h.BroadcastToTable(tableID, map[string]interface{}{"type": "table_closed", "table_id": tableID})
}
