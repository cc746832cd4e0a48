// Package pubsub fans order events out to live subscribers.
package pubsub

import (
	"context"
	"errors"
	"time"

	"eats/internal/models"
)

// Topic names a stream of order events.
type Topic string

const (
	// TopicPendingOrder carries newly created orders to their restaurant owner.
	TopicPendingOrder Topic = "pendingOrder"
	// TopicCookedOrder carries orders that became Cooked to every driver.
	TopicCookedOrder Topic = "cookedOrder"
	// TopicOrderUpdate carries every change of an order to its parties.
	TopicOrderUpdate Topic = "orderUpdate"
)

// Event is one order notification. Order is a full snapshot including items.
type Event struct {
	Topic Topic         `json:"topic"`
	Order *models.Order `json:"order"`
	At    time.Time     `json:"at"`
}

// NewEvent stamps an event for order on topic.
func NewEvent(topic Topic, order *models.Order) Event {
	return Event{Topic: topic, Order: order, At: time.Now().UTC()}
}

// Publisher accepts events for delivery.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Tee publishes every event to each of its publishers in order.
type Tee []Publisher

func (t Tee) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range t {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Filter decides whether a subscriber receives an order event.
type Filter func(order *models.Order) bool

// OwnedBy matches orders of restaurants owned by ownerID.
func OwnedBy(ownerID string) Filter {
	return func(order *models.Order) bool {
		return order.OwnerID() == ownerID
	}
}

// PartyOf matches the order orderID, as long as userID is one of its parties.
func PartyOf(orderID, userID string) Filter {
	return func(order *models.Order) bool {
		return order.ID == orderID && order.IsParty(userID)
	}
}
