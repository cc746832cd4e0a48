package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"eats/internal/mail"
	"eats/internal/models"
	"eats/internal/pubsub"
	"eats/internal/repositories"
)

// CreateOrderItemInput selects one dish and the names of its chosen options.
type CreateOrderItemInput struct {
	DishID  string   `json:"dishId" validate:"required"`
	Options []string `json:"options"`
}

// CreateOrderInput is the body of createOrder.
type CreateOrderInput struct {
	RestaurantID string                 `json:"restaurantId" validate:"required"`
	Items        []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// EditOrderInput is the body of editOrder.
type EditOrderInput struct {
	OrderID string        `json:"orderId" validate:"required"`
	Status  models.Status `json:"status" validate:"required,oneof=Pending Cooking Cooked PickedUp Delivered"`
}

// OrderService runs the order lifecycle: placement, status transitions and driver assignment.
type OrderService struct {
	orders      repositories.OrderRepository
	restaurants repositories.RestaurantRepository
	dishes      repositories.DishRepository
	events      pubsub.Publisher
	mailer      mail.Sender
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orders repositories.OrderRepository,
	restaurants repositories.RestaurantRepository,
	dishes repositories.DishRepository,
	events pubsub.Publisher,
	mailer mail.Sender,
) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		dishes:      dishes,
		events:      events,
		mailer:      mailer,
	}
}

// CreateOrder places a Pending order for customer. Every line is resolved and
// priced before anything is written; the order and its items are stored together.
// The total is the sum of the selected options' extra prices.
func (s *OrderService) CreateOrder(ctx context.Context, customer *models.User, in CreateOrderInput) (*models.Order, error) {
	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, lookup(err, "restaurant %s not found", in.RestaurantID)
	}
	if restaurant.OwnerID == customer.ID {
		return nil, newError(ErrForbidden, "you can't order from your own restaurant")
	}
	if len(in.Items) == 0 {
		return nil, newError(ErrValidation, "an order needs at least one item")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		dish, err := s.dishes.GetByID(ctx, line.DishID)
		if err != nil {
			return nil, lookup(err, "dish %s not found", line.DishID)
		}
		if dish.RestaurantID != restaurant.ID {
			return nil, newError(ErrNotFound, "dish %s not found in restaurant %s", line.DishID, restaurant.ID)
		}

		selected := make([]string, 0, len(line.Options))
		seen := make(map[string]bool, len(line.Options))
		for _, name := range line.Options {
			if seen[name] {
				continue
			}
			option, ok := dish.Option(name)
			if !ok {
				return nil, newError(ErrInvalidOption, "dish %s has no option %q", dish.Name, name)
			}
			seen[name] = true
			selected = append(selected, option.Name)
			total += option.ExtraPrice
		}
		items = append(items, models.OrderItem{DishID: dish.ID, Options: selected})
	}

	order := &models.Order{
		RestaurantID: restaurant.ID,
		CustomerID:   customer.ID,
		Items:        items,
		TotalPrice:   total,
		Status:       models.StatusPending,
	}
	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Restaurant = restaurant

	s.publish(ctx, pubsub.TopicPendingOrder, order)
	s.sendBill(ctx, customer, restaurant, order)
	return order, nil
}

// EditOrder moves an order to a new status on behalf of its restaurant owner or assigned driver.
func (s *OrderService) EditOrder(ctx context.Context, actor *models.User, in EditOrderInput) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, lookup(err, "order %s not found", in.OrderID)
	}
	if !canEdit(actor, order) {
		return nil, newError(ErrForbidden, "you can't edit this order")
	}
	if !models.CanTransition(actor.Role, order.Status, in.Status) {
		return nil, newError(ErrInvalidTransition, "a %s can't move an order from %s to %s", actor.Role, order.Status, in.Status)
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, order.Status, in.Status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, newError(ErrInvalidTransition, "order %s is no longer %s", order.ID, order.Status)
	}
	order.Status = in.Status
	order.UpdatedAt = time.Now()

	s.publish(ctx, pubsub.TopicOrderUpdate, order)
	if order.Status == models.StatusCooked {
		s.publish(ctx, pubsub.TopicCookedOrder, order)
	}
	return order, nil
}

// TakeOrder assigns driver to an order that has no driver yet.
func (s *OrderService) TakeOrder(ctx context.Context, driver *models.User, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, lookup(err, "order %s not found", orderID)
	}
	if order.DriverID != nil {
		return nil, newError(ErrAlreadyTaken, "this order already has a driver")
	}

	assigned, err := s.orders.AssignDriver(ctx, order.ID, driver.ID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, newError(ErrAlreadyTaken, "this order already has a driver")
	}
	order.DriverID = &driver.ID
	order.UpdatedAt = time.Now()

	s.publish(ctx, pubsub.TopicOrderUpdate, order)
	return order, nil
}

// SeeAllOrders lists the orders visible to actor, optionally only those in status.
func (s *OrderService) SeeAllOrders(ctx context.Context, actor *models.User, status *models.Status) ([]models.Order, error) {
	if status != nil && !status.Valid() {
		return nil, newError(ErrValidation, "unknown order status %q", *status)
	}

	var (
		orders []models.Order
		err    error
	)
	switch actor.Role {
	case models.RoleCustomer:
		orders, err = s.orders.ListByCustomer(ctx, actor.ID, status)
	case models.RoleDriver:
		orders, err = s.orders.ListByDriver(ctx, actor.ID, status)
	case models.RoleOwner:
		orders, err = s.orders.ListByOwner(ctx, actor.ID, status)
	default:
		return nil, newError(ErrForbidden, "unknown role %s", actor.Role)
	}
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// SeeOrder returns an order to one of its parties.
func (s *OrderService) SeeOrder(ctx context.Context, actor *models.User, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, lookup(err, "order %s not found", orderID)
	}
	if !order.IsParty(actor.ID) {
		return nil, newError(ErrForbidden, "you can't see this order")
	}
	return order, nil
}

func canEdit(actor *models.User, order *models.Order) bool {
	switch actor.Role {
	case models.RoleOwner:
		return order.OwnerID() == actor.ID
	case models.RoleDriver:
		return order.DriverID != nil && *order.DriverID == actor.ID
	default:
		return false
	}
}

func (s *OrderService) publish(ctx context.Context, topic pubsub.Topic, order *models.Order) {
	if err := s.events.Publish(ctx, pubsub.NewEvent(topic, order)); err != nil {
		log.Printf("Error publishing %s event for order %s: %v", topic, order.ID, err)
	}
}

func (s *OrderService) sendBill(ctx context.Context, customer *models.User, restaurant *models.Restaurant, order *models.Order) {
	msg := mail.Message{
		To:       customer.Email,
		Template: mail.TemplateBilling,
		Vars: map[string]string{
			"username":   customer.Username,
			"restaurant": restaurant.Name,
			"orderDate":  order.CreatedAt.Format("2006-01-02 15:04"),
			"orderId":    order.ID,
		},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("Error sending bill for order %s: %v", order.ID, err)
	}
}
