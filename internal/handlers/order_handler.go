package handlers

import (
	"eats/internal/middleware"
	"eats/internal/models"
	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	authenticated := middleware.RequireRoles(models.RoleAny)
	router.Post("/createOrder", middleware.RequireRoles(models.RoleCustomer), h.HandleCreateOrder)
	router.Get("/seeAllOrders", authenticated, h.HandleSeeAllOrders)
	router.Get("/seeOrder/:id", authenticated, h.HandleSeeOrder)
	router.Post("/editOrder", authenticated, h.HandleEditOrder)
	router.Post("/takeOrder", middleware.RequireRoles(models.RoleDriver), h.HandleTakeOrder)
}

// HandleCreateOrder places an order for the calling customer.
// @Summary Create an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateOrderInput true "order"
// @Success 201 {object} Output
// @Router /createOrder [post]
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var in services.CreateOrderInput
	if err := bind(c, &in); err != nil {
		return fail(c, "create order", err)
	}
	order, err := h.service.CreateOrder(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "create order", err)
	}
	return respond(c, fiber.StatusCreated, "Order created", order)
}

// HandleSeeAllOrders lists the caller's orders, optionally by status.
// @Summary List my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, Cooking, Cooked, PickedUp or Delivered"
// @Success 200 {object} Output
// @Router /seeAllOrders [get]
func (h *OrderHandler) HandleSeeAllOrders(c *fiber.Ctx) error {
	var status *models.Status
	if s := c.Query("status"); s != "" {
		st := models.Status(s)
		status = &st
	}
	orders, err := h.service.SeeAllOrders(c.UserContext(), middleware.CurrentUser(c), status)
	if err != nil {
		return fail(c, "load orders", err)
	}
	return respond(c, fiber.StatusOK, "", orders)
}

// HandleSeeOrder returns one order to one of its parties.
// @Summary See an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "order id"
// @Success 200 {object} Output
// @Router /seeOrder/{id} [get]
func (h *OrderHandler) HandleSeeOrder(c *fiber.Ctx) error {
	order, err := h.service.SeeOrder(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return fail(c, "load order", err)
	}
	return respond(c, fiber.StatusOK, "", order)
}

// HandleEditOrder moves an order to a new status.
// @Summary Change an order's status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EditOrderInput true "new status"
// @Success 200 {object} Output
// @Router /editOrder [post]
func (h *OrderHandler) HandleEditOrder(c *fiber.Ctx) error {
	var in services.EditOrderInput
	if err := bind(c, &in); err != nil {
		return fail(c, "edit order", err)
	}
	order, err := h.service.EditOrder(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "edit order", err)
	}
	return respond(c, fiber.StatusOK, "Order updated", order)
}

// OrderIDInput identifies an order.
type OrderIDInput struct {
	OrderID string `json:"orderId" validate:"required"`
}

// HandleTakeOrder assigns the calling driver to an order.
// @Summary Take an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OrderIDInput true "order"
// @Success 200 {object} Output
// @Router /takeOrder [post]
func (h *OrderHandler) HandleTakeOrder(c *fiber.Ctx) error {
	var in OrderIDInput
	if err := bind(c, &in); err != nil {
		return fail(c, "take order", err)
	}
	order, err := h.service.TakeOrder(c.UserContext(), middleware.CurrentUser(c), in.OrderID)
	if err != nil {
		return fail(c, "take order", err)
	}
	return respond(c, fiber.StatusOK, "Order taken", order)
}
