package middleware_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"eats/internal/middleware"
	"eats/internal/models"
	"eats/internal/repositories"
	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	owner := &models.User{ID: "o", Role: models.RoleOwner}
	customer := &models.User{ID: "c", Role: models.RoleCustomer}
	driver := &models.User{ID: "d", Role: models.RoleDriver}

	tests := []struct {
		name     string
		required []models.Role
		identity *models.User
		want     bool
	}{
		{"public with identity", nil, customer, true},
		{"public anonymous", []models.Role{}, nil, true},
		{"owner required anonymous", []models.Role{models.RoleOwner}, nil, false},
		{"any with customer", []models.Role{models.RoleAny}, customer, true},
		{"any anonymous", []models.Role{models.RoleAny}, nil, false},
		{"owner required driver", []models.Role{models.RoleOwner}, driver, false},
		{"owner required owner", []models.Role{models.RoleOwner}, owner, true},
		{"one of several", []models.Role{models.RoleOwner, models.RoleDriver}, driver, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, middleware.Authorize(tt.required, tt.identity))
		})
	}
}

func setupApp(t *testing.T) (*fiber.App, map[models.Role]string) {
	t.Helper()
	db, err := repositories.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()))
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repositories.NewGORMUserRepository(db)
	auth := services.NewAuthService(userRepo, "test_jwt_secret", time.Hour)

	tokens := map[models.Role]string{}
	for _, role := range []models.Role{models.RoleOwner, models.RoleCustomer, models.RoleDriver} {
		user := &models.User{Email: string(role) + "@example.com", Username: string(role), Role: role}
		require.NoError(t, userRepo.CreateWithVerification(context.Background(), user, nil))
		token, err := auth.IssueToken(user)
		require.NoError(t, err)
		tokens[role] = token
	}

	app := fiber.New()
	app.Use(middleware.Identify(auth))
	app.Get("/owner", middleware.RequireRoles(models.RoleOwner), func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentUser(c).Username)
	})
	app.Get("/any", middleware.RequireRoles(models.RoleAny), func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentUser(c).Username)
	})
	app.Get("/public", func(c *fiber.Ctx) error {
		if middleware.CurrentUser(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(middleware.CurrentUser(c).Username)
	})
	return app, tokens
}

func TestRequireRoles_StatusCodes(t *testing.T) {
	app, tokens := setupApp(t)

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"anonymous on owner route", "/owner", "", "", fiber.StatusUnauthorized},
		{"invalid token on owner route", "/owner", "Authorization", "Bearer garbage", fiber.StatusUnauthorized},
		{"driver on owner route", "/owner", "Authorization", "Bearer " + tokens[models.RoleDriver], fiber.StatusForbidden},
		{"owner on owner route", "/owner", "Authorization", "Bearer " + tokens[models.RoleOwner], fiber.StatusOK},
		{"legacy token header", "/owner", "token", tokens[models.RoleOwner], fiber.StatusOK},
		{"customer on any route", "/any", "Authorization", "Bearer " + tokens[models.RoleCustomer], fiber.StatusOK},
		{"anonymous on any route", "/any", "", "", fiber.StatusUnauthorized},
		{"anonymous on public route", "/public", "", "", fiber.StatusOK},
		{"invalid token on public route", "/public", "Authorization", "Bearer garbage", fiber.StatusOK},
		{"query token", "/any?token=" + tokens[models.RoleDriver], "", "", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
