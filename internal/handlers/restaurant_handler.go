package handlers

import (
	"eats/internal/middleware"
	"eats/internal/models"
	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RestaurantHandler handles HTTP requests for restaurants, categories and dishes.
type RestaurantHandler struct {
	restaurants *services.RestaurantService
	categories  *services.CategoryService
	dishes      *services.DishService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(restaurants *services.RestaurantService, categories *services.CategoryService, dishes *services.DishService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurants: restaurants,
		categories:  categories,
		dishes:      dishes,
	}
}

// RegisterRoutes registers the catalog routes.
func (h *RestaurantHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/seeAllRestaurants", h.HandleSeeAllRestaurants)
	router.Get("/seeRestaurant/:id", h.HandleSeeRestaurant)
	router.Get("/searchRestaurants", h.HandleSearchRestaurants)
	router.Get("/seeAllCategories", h.HandleSeeAllCategories)
	router.Get("/seeCategory/:slug", h.HandleSeeCategory)

	owner := middleware.RequireRoles(models.RoleOwner)
	router.Post("/createRestaurant", owner, h.HandleCreateRestaurant)
	router.Post("/editRestaurant", owner, h.HandleEditRestaurant)
	router.Post("/deleteRestaurant", owner, h.HandleDeleteRestaurant)
	router.Get("/seeMyRestaurants", owner, h.HandleSeeMyRestaurants)
	router.Post("/createDish", owner, h.HandleCreateDish)
	router.Post("/editDish", owner, h.HandleEditDish)
	router.Post("/deleteDish", owner, h.HandleDeleteDish)
}

// HandleCreateRestaurant opens a restaurant for the calling owner.
// @Summary Create a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRestaurantInput true "restaurant"
// @Success 201 {object} Output
// @Router /createRestaurant [post]
func (h *RestaurantHandler) HandleCreateRestaurant(c *fiber.Ctx) error {
	var in services.CreateRestaurantInput
	if err := bind(c, &in); err != nil {
		return fail(c, "create restaurant", err)
	}
	restaurant, err := h.restaurants.CreateRestaurant(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "create restaurant", err)
	}
	return respond(c, fiber.StatusCreated, "Restaurant created", restaurant)
}

// HandleEditRestaurant updates a restaurant of the calling owner.
// @Summary Edit a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EditRestaurantInput true "changes"
// @Success 200 {object} Output
// @Router /editRestaurant [post]
func (h *RestaurantHandler) HandleEditRestaurant(c *fiber.Ctx) error {
	var in services.EditRestaurantInput
	if err := bind(c, &in); err != nil {
		return fail(c, "edit restaurant", err)
	}
	restaurant, err := h.restaurants.EditRestaurant(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "edit restaurant", err)
	}
	return respond(c, fiber.StatusOK, "Restaurant updated", restaurant)
}

// RestaurantIDInput identifies a restaurant.
type RestaurantIDInput struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
}

// HandleDeleteRestaurant removes a restaurant of the calling owner.
// @Summary Delete a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RestaurantIDInput true "restaurant"
// @Success 200 {object} Output
// @Router /deleteRestaurant [post]
func (h *RestaurantHandler) HandleDeleteRestaurant(c *fiber.Ctx) error {
	var in RestaurantIDInput
	if err := bind(c, &in); err != nil {
		return fail(c, "delete restaurant", err)
	}
	if err := h.restaurants.DeleteRestaurant(c.UserContext(), middleware.CurrentUser(c), in.RestaurantID); err != nil {
		return fail(c, "delete restaurant", err)
	}
	return respond(c, fiber.StatusOK, "Restaurant deleted", nil)
}

// HandleSeeAllRestaurants lists restaurants, promoted ones first.
// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Param page query int false "page, from 1"
// @Success 200 {object} Output
// @Router /seeAllRestaurants [get]
func (h *RestaurantHandler) HandleSeeAllRestaurants(c *fiber.Ctx) error {
	page, err := h.restaurants.SeeAllRestaurants(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return fail(c, "load restaurants", err)
	}
	return respond(c, fiber.StatusOK, "", page)
}

// HandleSeeRestaurant returns a restaurant with its menu.
// @Summary See a restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "restaurant id"
// @Success 200 {object} Output
// @Router /seeRestaurant/{id} [get]
func (h *RestaurantHandler) HandleSeeRestaurant(c *fiber.Ctx) error {
	restaurant, err := h.restaurants.SeeRestaurant(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "find restaurant", err)
	}
	return respond(c, fiber.StatusOK, "", restaurant)
}

// HandleSearchRestaurants finds restaurants by name.
// @Summary Search restaurants
// @Tags restaurants
// @Produce json
// @Param query query string true "part of the name"
// @Param page query int false "page, from 1"
// @Success 200 {object} Output
// @Router /searchRestaurants [get]
func (h *RestaurantHandler) HandleSearchRestaurants(c *fiber.Ctx) error {
	page, err := h.restaurants.SearchRestaurants(c.UserContext(), c.Query("query"), c.QueryInt("page", 1))
	if err != nil {
		return fail(c, "search for restaurants", err)
	}
	return respond(c, fiber.StatusOK, "", page)
}

// HandleSeeMyRestaurants lists the calling owner's restaurants.
// @Summary List my restaurants
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Output
// @Router /seeMyRestaurants [get]
func (h *RestaurantHandler) HandleSeeMyRestaurants(c *fiber.Ctx) error {
	restaurants, err := h.restaurants.SeeMyRestaurants(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, "load restaurants", err)
	}
	return respond(c, fiber.StatusOK, "", restaurants)
}

// HandleSeeAllCategories lists categories with their restaurant counts.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} Output
// @Router /seeAllCategories [get]
func (h *RestaurantHandler) HandleSeeAllCategories(c *fiber.Ctx) error {
	categories, err := h.categories.SeeAllCategories(c.UserContext())
	if err != nil {
		return fail(c, "load categories", err)
	}
	return respond(c, fiber.StatusOK, "", categories)
}

// HandleSeeCategory returns a category and a page of its restaurants.
// @Summary See a category
// @Tags categories
// @Produce json
// @Param slug path string true "category slug"
// @Param page query int false "page, from 1"
// @Success 200 {object} Output
// @Router /seeCategory/{slug} [get]
func (h *RestaurantHandler) HandleSeeCategory(c *fiber.Ctx) error {
	page, err := h.categories.SeeCategory(c.UserContext(), c.Params("slug"), c.QueryInt("page", 1))
	if err != nil {
		return fail(c, "load category", err)
	}
	return respond(c, fiber.StatusOK, "", page)
}

// HandleCreateDish adds a dish to a restaurant of the calling owner.
// @Summary Create a dish
// @Tags dishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDishInput true "dish"
// @Success 201 {object} Output
// @Router /createDish [post]
func (h *RestaurantHandler) HandleCreateDish(c *fiber.Ctx) error {
	var in services.CreateDishInput
	if err := bind(c, &in); err != nil {
		return fail(c, "create dish", err)
	}
	dish, err := h.dishes.CreateDish(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "create dish", err)
	}
	return respond(c, fiber.StatusCreated, "Dish created", dish)
}

// HandleEditDish updates a dish of the calling owner.
// @Summary Edit a dish
// @Tags dishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EditDishInput true "changes"
// @Success 200 {object} Output
// @Router /editDish [post]
func (h *RestaurantHandler) HandleEditDish(c *fiber.Ctx) error {
	var in services.EditDishInput
	if err := bind(c, &in); err != nil {
		return fail(c, "edit dish", err)
	}
	dish, err := h.dishes.EditDish(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "edit dish", err)
	}
	return respond(c, fiber.StatusOK, "Dish updated", dish)
}

// DishIDInput identifies a dish.
type DishIDInput struct {
	DishID string `json:"dishId" validate:"required"`
}

// HandleDeleteDish removes a dish of the calling owner.
// @Summary Delete a dish
// @Tags dishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DishIDInput true "dish"
// @Success 200 {object} Output
// @Router /deleteDish [post]
func (h *RestaurantHandler) HandleDeleteDish(c *fiber.Ctx) error {
	var in DishIDInput
	if err := bind(c, &in); err != nil {
		return fail(c, "delete dish", err)
	}
	if err := h.dishes.DeleteDish(c.UserContext(), middleware.CurrentUser(c), in.DishID); err != nil {
		return fail(c, "delete dish", err)
	}
	return respond(c, fiber.StatusOK, "Dish deleted", nil)
}
