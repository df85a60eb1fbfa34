// Package events publishes domain events to the redis "broadcast" channel.
// Publishing is best-effort: failures are logged and never surfaced to the
// request that triggered them, and a nil client disables publishing.
package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) {
	if p == nil || p.rdb == nil {
		return
	}
	body := map[string]any{
		"type":    eventType,
		"payload": payload,
	}
	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("meloob: marshal event %s: %v", eventType, err)
		return
	}
	if err := p.rdb.Publish(ctx, "broadcast", string(data)).Err(); err != nil {
		log.Printf("meloob: publish event %s: %v", eventType, err)
	}
}
