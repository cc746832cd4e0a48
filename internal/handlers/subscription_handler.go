package handlers

import (
	"log"

	"eats/internal/middleware"
	"eats/internal/models"
	"eats/internal/pubsub"
	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SubscriptionHandler streams order events over websockets.
// Each connection holds one subscription that is closed when the connection ends.
type SubscriptionHandler struct {
	hub    *pubsub.Hub
	orders *services.OrderService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(hub *pubsub.Hub, orders *services.OrderService) *SubscriptionHandler {
	return &SubscriptionHandler{hub: hub, orders: orders}
}

// RegisterRoutes registers the websocket subscription routes.
func (h *SubscriptionHandler) RegisterRoutes(router fiber.Router) {
	subs := router.Group("/subscriptions")
	subs.Get("/pendingOrder", middleware.RequireRoles(models.RoleOwner),
		h.subscribe(pubsub.TopicPendingOrder, func(c *fiber.Ctx, user *models.User) (pubsub.Filter, error) {
			return pubsub.OwnedBy(user.ID), nil
		}))
	subs.Get("/cookedOrder", middleware.RequireRoles(models.RoleDriver),
		h.subscribe(pubsub.TopicCookedOrder, func(*fiber.Ctx, *models.User) (pubsub.Filter, error) {
			return nil, nil
		}))
	subs.Get("/orderUpdate", middleware.RequireRoles(models.RoleAny),
		h.subscribe(pubsub.TopicOrderUpdate, h.orderUpdateFilter))
}

// orderUpdateFilter only lets parties of the requested order subscribe to it.
func (h *SubscriptionHandler) orderUpdateFilter(c *fiber.Ctx, user *models.User) (pubsub.Filter, error) {
	orderID := c.Query("orderId")
	if orderID == "" {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:   "orderId",
			Tag:     "required",
			Message: "Field 'orderId' failed on the 'required' tag",
		}}}
	}
	if _, err := h.orders.SeeOrder(c.UserContext(), user, orderID); err != nil {
		return nil, err
	}
	return pubsub.PartyOf(orderID, user.ID), nil
}

type filterFunc func(c *fiber.Ctx, user *models.User) (pubsub.Filter, error)

func (h *SubscriptionHandler) subscribe(topic pubsub.Topic, filterFor filterFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		filter, err := filterFor(c, middleware.CurrentUser(c))
		if err != nil {
			return fail(c, "subscribe to "+string(topic), err)
		}
		return websocket.New(func(conn *websocket.Conn) {
			h.stream(conn, topic, filter)
		})(c)
	}
}

func (h *SubscriptionHandler) stream(conn *websocket.Conn, topic pubsub.Topic, filter pubsub.Filter) {
	sub := h.hub.Subscribe(topic, filter)
	defer sub.Close()

	// The client never sends anything meaningful; reading only detects disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := conn.WriteJSON(event.Order); err != nil {
				log.Printf("Error writing %s event to subscriber: %v", topic, err)
				return
			}
		}
	}
}
