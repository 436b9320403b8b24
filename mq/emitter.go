package mq

import (
	"context"
	"encoding/json"
	"log"

	"fitgrid/models"
	"fitgrid/rdx"
	"fitgrid/search"
)

const indexingChannel = "indexing-events"

// Emit publishes an indexing event to Redis; the indexing worker picks it up
// asynchronously. Failures are logged, never propagated to the caller.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), indexingChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}

// StartIndexingWorker subscribes to the indexing channel and keeps the Redis
// search index in sync with entity writes. Run it in its own goroutine.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, indexingChannel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}

		if err := search.IndexDatainRedis(ctx, event); err != nil {
			log.Printf("[IndexingWorker] IndexDatainRedis error: %v", err)
		}
	}
}
