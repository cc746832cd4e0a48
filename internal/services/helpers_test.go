package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"eats/internal/mail"
	"eats/internal/models"
	"eats/internal/pubsub"
	"eats/internal/repositories"
	"eats/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

// MockSender is a mock implementation of mail.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []pubsub.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event pubsub.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) topics() []pubsub.Topic {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]pubsub.Topic, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.Topic)
	}
	return topics
}

type fixture struct {
	db          *gorm.DB
	mailer      *MockSender
	events      *recordingPublisher
	userRepo    *repositories.GORMUserRepository
	auth        *services.AuthService
	users       *services.UserService
	restaurants *services.RestaurantService
	categories  *services.CategoryService
	dishes      *services.DishService
	orders      *services.OrderService
	payments    *services.PaymentService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := repositories.Open("sqlite", dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repositories.Migrate(db))
	return db
}

// newFixture wires every service against a fresh database. The mailer accepts any message.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	mailer := new(MockSender)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Maybe()
	return newFixtureWith(t, db, mailer)
}

func newFixtureWith(t *testing.T, db *gorm.DB, mailer *MockSender) *fixture {
	t.Helper()
	events := &recordingPublisher{}

	userRepo := repositories.NewGORMUserRepository(db)
	restaurantRepo := repositories.NewGORMRestaurantRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	dishRepo := repositories.NewGORMDishRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	paymentRepo := repositories.NewGORMPaymentRepository(db)

	auth := services.NewAuthService(userRepo, testJWTSecret, time.Hour)
	return &fixture{
		db:          db,
		mailer:      mailer,
		events:      events,
		userRepo:    userRepo,
		auth:        auth,
		users:       services.NewUserService(userRepo, auth, mailer),
		restaurants: services.NewRestaurantService(restaurantRepo, categoryRepo),
		categories:  services.NewCategoryService(categoryRepo, restaurantRepo),
		dishes:      services.NewDishService(dishRepo, restaurantRepo),
		orders:      services.NewOrderService(orderRepo, restaurantRepo, dishRepo, events, mailer),
		payments:    services.NewPaymentService(paymentRepo, restaurantRepo, 0),
	}
}

// user inserts an account directly, skipping password hashing.
func (f *fixture) user(t *testing.T, role models.Role) *models.User {
	t.Helper()
	id := uuid.New().String()
	u := &models.User{
		ID:       id,
		Email:    id[:8] + "@example.com",
		Username: string(role) + "-" + id[:8],
		Password: "unused",
		Role:     role,
	}
	require.NoError(t, f.userRepo.CreateWithVerification(context.Background(), u, nil))
	return u
}

func (f *fixture) restaurant(t *testing.T, owner *models.User, name string) *models.Restaurant {
	t.Helper()
	r, err := f.restaurants.CreateRestaurant(context.Background(), owner, services.CreateRestaurantInput{
		Name:         name,
		Address:      "1 Main Street",
		CategoryName: "Korean BBQ",
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) dish(t *testing.T, owner *models.User, restaurant *models.Restaurant, name string, price float64, options ...models.DishOption) *models.Dish {
	t.Helper()
	d, err := f.dishes.CreateDish(context.Background(), owner, services.CreateDishInput{
		RestaurantID: restaurant.ID,
		Name:         name,
		Price:        price,
		Options:      options,
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
