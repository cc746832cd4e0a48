package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"eats/internal/config"
	"eats/internal/eventlog"
	"eats/internal/handlers"
	"eats/internal/mail"
	"eats/internal/middleware"
	"eats/internal/pubsub"
	"eats/internal/repositories"
	"eats/internal/services"
	"eats/internal/worker"
	"eats/pkg/rabbitmq"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// App is the wired process: HTTP server, background workers and their connections.
type App struct {
	Fiber *fiber.App

	hub        *pubsub.Hub
	promotions *worker.PromotionWorker
	broker     *pubsub.RedisBroker
	dispatcher *mail.Dispatcher
	closers    []func() error
}

// NewApp connects every configured collaborator and registers all routes.
// RabbitMQ, Redis, Kafka and Mailgun are optional; without them mail is only
// logged and order events stay inside this process.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{}

	// --- Database ---
	db, err := repositories.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	if err := repositories.Migrate(db); err != nil {
		a.Close()
		return nil, err
	}

	// --- Mail ---
	var delivery mail.Sender = mail.LogSender{}
	if cfg.Mail.APIKey != "" {
		delivery = mail.NewMailgun(cfg.Mail.APIKey, cfg.Mail.Domain, cfg.Mail.From, cfg.Mail.BaseURL)
	} else {
		log.Println("MAILGUN_API_KEY not set, mails will only be logged")
	}
	mailer := delivery
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queues: []string{cfg.RabbitMQ.MailQueue}})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.closers = append(a.closers, mqClient.Close)
		mailer = mail.NewQueueSender(mqClient, cfg.RabbitMQ.MailQueue)
		a.dispatcher = mail.NewDispatcher(mqClient, cfg.RabbitMQ.MailQueue, delivery)
	}

	// --- Order events ---
	a.hub = pubsub.NewHub(0)
	events := pubsub.Tee{a.hub}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			rdb.Close()
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		a.broker = pubsub.NewRedisBroker(rdb, cfg.Redis.Channel)
		events = append(events, a.broker)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := eventlog.NewKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			a.Close()
			return nil, err
		}
		recorder := eventlog.NewKafkaRecorder(producer, cfg.Kafka.Topic)
		a.closers = append(a.closers, recorder.Close)
		events = append(events, recorder)
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	restaurantRepo := repositories.NewGORMRestaurantRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	dishRepo := repositories.NewGORMDishRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	paymentRepo := repositories.NewGORMPaymentRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	userService := services.NewUserService(userRepo, authService, mailer)
	restaurantService := services.NewRestaurantService(restaurantRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo, restaurantRepo)
	dishService := services.NewDishService(dishRepo, restaurantRepo)
	orderService := services.NewOrderService(orderRepo, restaurantRepo, dishRepo, events, mailer)
	paymentService := services.NewPaymentService(paymentRepo, restaurantRepo, cfg.Promotion.Duration)

	a.promotions = worker.NewPromotionWorker(paymentService, cfg.Promotion.SweepInterval)

	// --- Fiber ---
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"rabbitmq": cfg.RabbitMQ.URL != "",
			"redis":    cfg.Redis.Addr != "",
			"kafka":    len(cfg.Kafka.Brokers) > 0,
		})
	})
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1", middleware.Identify(authService))
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)
	handlers.NewRestaurantHandler(restaurantService, categoryService, dishService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewPaymentHandler(paymentService).RegisterRoutes(apiV1)
	handlers.NewSubscriptionHandler(a.hub, orderService).RegisterRoutes(apiV1)

	a.Fiber = app
	return a, nil
}

// Start launches the background workers. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	go a.promotions.Run(ctx)

	if a.broker != nil {
		go func() {
			if err := a.broker.Relay(ctx, a.hub); err != nil {
				log.Printf("Redis relay stopped: %v", err)
			}
		}()
	}
	if a.dispatcher != nil {
		if err := a.dispatcher.Start(); err != nil {
			log.Printf("Failed to start mail dispatcher: %v", err)
		}
	}
}

// Close releases every connection in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
	a.closers = nil
}
