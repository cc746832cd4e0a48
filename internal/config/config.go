// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RabbitMQ  RabbitMQConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Mail      MailConfig
	Promotion PromotionConfig
}

type ServerConfig struct {
	Port string `validate:"required"`
}

type DatabaseConfig struct {
	Driver string `validate:"required,oneof=postgres sqlite"`
	DSN    string `validate:"required"`
}

type JWTConfig struct {
	Secret string        `validate:"required"`
	TTL    time.Duration `validate:"gt=0"`
}

// RabbitMQConfig enables the queued mail sender when URL is set.
type RabbitMQConfig struct {
	URL       string
	MailQueue string `validate:"required"`
}

// RedisConfig enables cross-instance event fan-out when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int    `validate:"gte=0"`
	Channel  string `validate:"required"`
}

// KafkaConfig enables the order event log when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string `validate:"required"`
}

// MailConfig enables Mailgun delivery when APIKey is set.
type MailConfig struct {
	APIKey  string
	Domain  string `validate:"required_with=APIKey"`
	From    string `validate:"required"`
	BaseURL string
}

type PromotionConfig struct {
	SweepInterval time.Duration `validate:"gt=0"`
	Duration      time.Duration `validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "eats.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("MAIL_QUEUE", "mail_queue")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CHANNEL", "eats:orders")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "order-events")
	v.SetDefault("MAILGUN_API_KEY", "")
	v.SetDefault("MAILGUN_DOMAIN", "")
	v.SetDefault("MAILGUN_BASE_URL", "")
	v.SetDefault("MAIL_FROM", "Eats <no-reply@eats.local>")
	v.SetDefault("PROMOTION_SWEEP_INTERVAL", "10s")
	v.SetDefault("PROMOTION_DURATION", "168h")
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: v.GetString("APP_PORT")},
		Database: DatabaseConfig{
			Driver: v.GetString("DATABASE_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:       v.GetString("RABBITMQ_URL"),
			MailQueue: v.GetString("MAIL_QUEUE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Channel:  v.GetString("REDIS_CHANNEL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Mail: MailConfig{
			APIKey:  v.GetString("MAILGUN_API_KEY"),
			Domain:  v.GetString("MAILGUN_DOMAIN"),
			From:    v.GetString("MAIL_FROM"),
			BaseURL: v.GetString("MAILGUN_BASE_URL"),
		},
		Promotion: PromotionConfig{
			SweepInterval: v.GetDuration("PROMOTION_SWEEP_INTERVAL"),
			Duration:      v.GetDuration("PROMOTION_DURATION"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
