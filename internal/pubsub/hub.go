package pubsub

import (
	"context"
	"log"
	"sync"
)

const defaultBuffer = 16

// Hub delivers events to the subscriptions of this process.
// Publishing never blocks: an event is dropped for a subscriber whose buffer is full.
type Hub struct {
	mu     sync.RWMutex
	subs   map[Topic]map[*Subscription]struct{}
	buffer int
}

// NewHub creates a hub whose subscriptions buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[Topic]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers interest in topic. A nil filter matches every event.
func (h *Hub) Subscribe(topic Topic, filter Filter) *Subscription {
	sub := &Subscription{
		hub:    h,
		topic:  topic,
		filter: filter,
		events: make(chan Event, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	return sub
}

// Publish hands event to every matching subscriber of its topic.
func (h *Hub) Publish(_ context.Context, event Event) error {
	if event.Order == nil {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[event.Topic] {
		if sub.filter != nil && !sub.filter(event.Order) {
			continue
		}
		select {
		case sub.events <- event:
		default:
			log.Printf("Dropping %s event for order %s: subscriber is not keeping up", event.Topic, event.Order.ID)
		}
	}
	return nil
}

// Subscribers returns the number of open subscriptions on topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[sub.topic], sub)
	close(sub.events)
}

// Subscription is one subscriber's view of a topic.
type Subscription struct {
	hub    *Hub
	topic  Topic
	filter Filter
	events chan Event
	once   sync.Once
}

// Events yields matching events until the subscription is closed.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}
