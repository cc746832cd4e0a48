package services_test

import (
	"context"
	"errors"
	"testing"

	"eats/internal/mail"
	"eats/internal/models"
	"eats/internal/pubsub"
	"eats/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderWorld struct {
	*fixture
	owner      *models.User
	customer   *models.User
	driver     *models.User
	restaurant *models.Restaurant
	dish       *models.Dish
}

func newOrderWorld(t *testing.T) *orderWorld {
	t.Helper()
	f := newFixture(t)
	w := &orderWorld{
		fixture:  f,
		owner:    f.user(t, models.RoleOwner),
		customer: f.user(t, models.RoleCustomer),
		driver:   f.user(t, models.RoleDriver),
	}
	w.restaurant = f.restaurant(t, w.owner, "R1")
	w.dish = f.dish(t, w.owner, w.restaurant, "M1", 10, models.DishOption{Name: "extra", ExtraPrice: 2})
	return w
}

func (w *orderWorld) place(t *testing.T) *models.Order {
	t.Helper()
	order, err := w.orders.CreateOrder(context.Background(), w.customer, services.CreateOrderInput{
		RestaurantID: w.restaurant.ID,
		Items:        []services.CreateOrderItemInput{{DishID: w.dish.ID, Options: []string{"extra"}}},
	})
	require.NoError(t, err)
	return order
}

func (w *orderWorld) status(t *testing.T, orderID string) models.Status {
	t.Helper()
	var order models.Order
	require.NoError(t, w.db.First(&order, "id = ?", orderID).Error)
	return order.Status
}

func (w *orderWorld) advance(t *testing.T, actor *models.User, orderID string, to models.Status) {
	t.Helper()
	_, err := w.orders.EditOrder(context.Background(), actor, services.EditOrderInput{OrderID: orderID, Status: to})
	require.NoError(t, err)
}

func TestOrderService_CreateOrder_TotalIsOptionPricesOnly(t *testing.T) {
	w := newOrderWorld(t)

	order := w.place(t)

	assert.Equal(t, 2.0, order.TotalPrice)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, w.customer.ID, order.CustomerID)
	assert.Nil(t, order.DriverID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, []string{"extra"}, order.Items[0].Options)

	stored, err := w.orders.SeeOrder(context.Background(), w.customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, stored.TotalPrice)
	assert.Len(t, stored.Items, 1)
}

func TestOrderService_CreateOrder_SumsAcrossLines(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	combo := w.fixture.dish(t, w.owner, w.restaurant, "M2", 8,
		models.DishOption{Name: "cheese", ExtraPrice: 1.5},
		models.DishOption{Name: "bacon", ExtraPrice: 3},
	)

	order, err := w.orders.CreateOrder(ctx, w.customer, services.CreateOrderInput{
		RestaurantID: w.restaurant.ID,
		Items: []services.CreateOrderItemInput{
			{DishID: w.dish.ID, Options: []string{"extra"}},
			{DishID: combo.ID, Options: []string{"cheese", "bacon", "cheese"}},
			{DishID: combo.ID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 6.5, order.TotalPrice)
	assert.Len(t, order.Items, 3)
}

func TestOrderService_CreateOrder_InvalidOptionPersistsNothing(t *testing.T) {
	w := newOrderWorld(t)

	_, err := w.orders.CreateOrder(context.Background(), w.customer, services.CreateOrderInput{
		RestaurantID: w.restaurant.ID,
		Items: []services.CreateOrderItemInput{
			{DishID: w.dish.ID, Options: []string{"extra"}},
			{DishID: w.dish.ID, Options: []string{"gold leaf"}},
		},
	})

	assert.ErrorIs(t, err, services.ErrInvalidOption)
	assert.Zero(t, w.count(t, &models.Order{}))
	assert.Zero(t, w.count(t, &models.OrderItem{}))
	assert.Empty(t, w.events.topics())
}

func TestOrderService_CreateOrder_NotFound(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	elsewhere := w.fixture.restaurant(t, w.owner, "R2")
	foreign := w.fixture.dish(t, w.owner, elsewhere, "Other", 5)

	_, err := w.orders.CreateOrder(ctx, w.customer, services.CreateOrderInput{
		RestaurantID: "missing",
		Items:        []services.CreateOrderItemInput{{DishID: w.dish.ID}},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = w.orders.CreateOrder(ctx, w.customer, services.CreateOrderInput{
		RestaurantID: w.restaurant.ID,
		Items:        []services.CreateOrderItemInput{{DishID: "missing"}},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = w.orders.CreateOrder(ctx, w.customer, services.CreateOrderInput{
		RestaurantID: w.restaurant.ID,
		Items:        []services.CreateOrderItemInput{{DishID: foreign.ID}},
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Zero(t, w.count(t, &models.Order{}))
}

func TestOrderService_CreateOrder_OwnRestaurantForbidden(t *testing.T) {
	w := newOrderWorld(t)

	_, err := w.orders.CreateOrder(context.Background(), w.owner, services.CreateOrderInput{
		RestaurantID: w.restaurant.ID,
		Items:        []services.CreateOrderItemInput{{DishID: w.dish.ID}},
	})
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Zero(t, w.count(t, &models.Order{}))
}

func TestOrderService_CreateOrder_PublishesAndBills(t *testing.T) {
	var sent []mail.Message
	mailer := new(MockSender)
	mailer.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = append(sent, args.Get(1).(mail.Message)) }).
		Return(errors.New("mail is down"))
	f := newFixtureWith(t, newTestDB(t), mailer)
	owner := f.user(t, models.RoleOwner)
	customer := f.user(t, models.RoleCustomer)
	r := f.restaurant(t, owner, "R1")
	d := f.dish(t, owner, r, "M1", 10)

	order, err := f.orders.CreateOrder(context.Background(), customer, services.CreateOrderInput{
		RestaurantID: r.ID,
		Items:        []services.CreateOrderItemInput{{DishID: d.ID}},
	})
	require.NoError(t, err, "billing mail failures must not fail the order")

	assert.Equal(t, []pubsub.Topic{pubsub.TopicPendingOrder}, f.events.topics())
	assert.Equal(t, owner.ID, f.events.events[0].Order.OwnerID())

	require.Len(t, sent, 1)
	assert.Equal(t, mail.TemplateBilling, sent[0].Template)
	assert.Equal(t, customer.Email, sent[0].To)
	assert.Equal(t, "R1", sent[0].Vars["restaurant"])
	assert.Equal(t, order.ID, sent[0].Vars["orderId"])
}

func TestOrderService_FullLifecycle(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	order := w.place(t)

	w.advance(t, w.owner, order.ID, models.StatusCooking)
	w.advance(t, w.owner, order.ID, models.StatusCooked)

	_, err := w.orders.EditOrder(ctx, w.owner, services.EditOrderInput{OrderID: order.ID, Status: models.StatusPending})
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	assert.Equal(t, models.StatusCooked, w.status(t, order.ID))

	taken, err := w.orders.TakeOrder(ctx, w.driver, order.ID)
	require.NoError(t, err)
	require.NotNil(t, taken.DriverID)
	assert.Equal(t, w.driver.ID, *taken.DriverID)

	w.advance(t, w.driver, order.ID, models.StatusPickedUp)
	w.advance(t, w.driver, order.ID, models.StatusDelivered)
	assert.Equal(t, models.StatusDelivered, w.status(t, order.ID))

	assert.Equal(t, []pubsub.Topic{
		pubsub.TopicPendingOrder,
		pubsub.TopicOrderUpdate,
		pubsub.TopicOrderUpdate, pubsub.TopicCookedOrder,
		pubsub.TopicOrderUpdate,
		pubsub.TopicOrderUpdate,
		pubsub.TopicOrderUpdate,
	}, w.events.topics())
}

func TestOrderService_EditOrder_RejectedTransitionsLeaveStatus(t *testing.T) {
	statuses := []models.Status{
		models.StatusPending, models.StatusCooking, models.StatusCooked, models.StatusPickedUp, models.StatusDelivered,
	}
	for _, actorRole := range []models.Role{models.RoleOwner, models.RoleDriver} {
		for _, from := range statuses {
			for _, to := range statuses {
				if models.CanTransition(actorRole, from, to) {
					continue
				}
				w := newOrderWorld(t)
				order := w.place(t)
				_, err := w.orders.TakeOrder(context.Background(), w.driver, order.ID)
				require.NoError(t, err)
				require.NoError(t, w.db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", from).Error)

				actor := w.owner
				if actorRole == models.RoleDriver {
					actor = w.driver
				}
				_, err = w.orders.EditOrder(context.Background(), actor, services.EditOrderInput{OrderID: order.ID, Status: to})
				assert.ErrorIs(t, err, services.ErrInvalidTransition, "%s: %s -> %s", actorRole, from, to)
				assert.Equal(t, from, w.status(t, order.ID), "%s: %s -> %s", actorRole, from, to)
			}
		}
	}
}

func TestOrderService_EditOrder_Forbidden(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	order := w.place(t)
	otherOwner := w.user(t, models.RoleOwner)
	otherDriver := w.user(t, models.RoleDriver)

	for _, actor := range []*models.User{w.customer, otherOwner, w.driver} {
		_, err := w.orders.EditOrder(ctx, actor, services.EditOrderInput{OrderID: order.ID, Status: models.StatusCooking})
		assert.ErrorIs(t, err, services.ErrForbidden, actor.Username)
	}

	_, err := w.orders.TakeOrder(ctx, w.driver, order.ID)
	require.NoError(t, err)
	_, err = w.orders.EditOrder(ctx, otherDriver, services.EditOrderInput{OrderID: order.ID, Status: models.StatusPickedUp})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = w.orders.EditOrder(ctx, w.owner, services.EditOrderInput{OrderID: "missing", Status: models.StatusCooking})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, models.StatusPending, w.status(t, order.ID))
}

func TestOrderService_TakeOrder_AlreadyTaken(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	order := w.place(t)
	second := w.user(t, models.RoleDriver)

	_, err := w.orders.TakeOrder(ctx, w.driver, order.ID)
	require.NoError(t, err)

	_, err = w.orders.TakeOrder(ctx, second, order.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyTaken)
	_, err = w.orders.TakeOrder(ctx, w.driver, order.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyTaken)

	_, err = w.orders.TakeOrder(ctx, second, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_SeeAllOrders_ScopedByRole(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	first := w.place(t)
	second := w.place(t)
	w.advance(t, w.owner, second.ID, models.StatusCooking)
	_, err := w.orders.TakeOrder(ctx, w.driver, first.ID)
	require.NoError(t, err)

	otherCustomer := w.user(t, models.RoleCustomer)
	otherOwner := w.user(t, models.RoleOwner)

	tests := []struct {
		name   string
		actor  *models.User
		status *models.Status
		want   int
	}{
		{"customer sees own", w.customer, nil, 2},
		{"other customer sees none", otherCustomer, nil, 0},
		{"owner sees restaurant orders", w.owner, nil, 2},
		{"other owner sees none", otherOwner, nil, 0},
		{"driver sees assigned", w.driver, nil, 1},
		{"status filter", w.owner, statusPtr(models.StatusCooking), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := w.orders.SeeAllOrders(ctx, tt.actor, tt.status)
			require.NoError(t, err)
			assert.Len(t, orders, tt.want)
		})
	}

	_, err = w.orders.SeeAllOrders(ctx, w.owner, statusPtr("Cancelled"))
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestOrderService_SeeOrder(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	order := w.place(t)

	for _, party := range []*models.User{w.customer, w.owner} {
		got, err := w.orders.SeeOrder(ctx, party, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	}

	_, err := w.orders.SeeOrder(ctx, w.driver, order.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = w.orders.SeeOrder(ctx, w.customer, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func statusPtr(s models.Status) *models.Status {
	return &s
}
