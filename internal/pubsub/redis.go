package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisBroker shares events between instances over a Redis pub/sub channel.
type RedisBroker struct {
	client  *redis.Client
	channel string
	origin  string
}

type envelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// NewRedisBroker creates a broker on channel. Each broker has its own origin
// so that it can skip the events it published itself.
func NewRedisBroker(client *redis.Client, channel string) *RedisBroker {
	return &RedisBroker{
		client:  client,
		channel: channel,
		origin:  uuid.New().String(),
	}
}

// Publish sends event to the other instances.
func (b *RedisBroker) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(envelope{Origin: b.origin, Event: event})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Topic, err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event to redis: %w", event.Topic, err)
	}
	return nil
}

// Relay forwards events published by other instances into hub until ctx is done.
func (b *RedisBroker) Relay(ctx context.Context, hub *Hub) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to redis channel %s: %w", b.channel, err)
	}
	log.Printf("Relaying order events from redis channel %s", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.deliver(ctx, []byte(msg.Payload), hub)
		}
	}
}

func (b *RedisBroker) deliver(ctx context.Context, payload []byte, hub *Hub) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		log.Printf("Ignoring malformed event from redis: %v", err)
		return
	}
	if env.Origin == b.origin {
		return
	}
	_ = hub.Publish(ctx, env.Event)
}
