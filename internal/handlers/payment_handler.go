package handlers

import (
	"eats/internal/middleware"
	"eats/internal/models"
	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for promotion payments.
type PaymentHandler struct {
	service *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers the payment routes.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	owner := middleware.RequireRoles(models.RoleOwner)
	router.Post("/createPayment", owner, h.HandleCreatePayment)
	router.Get("/seeAllPayments", owner, h.HandleSeeAllPayments)
}

// HandleCreatePayment records a payment and promotes the restaurant.
// @Summary Pay for a promotion
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePaymentInput true "payment"
// @Success 201 {object} Output
// @Router /createPayment [post]
func (h *PaymentHandler) HandleCreatePayment(c *fiber.Ctx) error {
	var in services.CreatePaymentInput
	if err := bind(c, &in); err != nil {
		return fail(c, "create payment", err)
	}
	payment, err := h.service.CreatePayment(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "create payment", err)
	}
	return respond(c, fiber.StatusCreated, "Payment created", payment)
}

// HandleSeeAllPayments lists the calling owner's payments.
// @Summary List my payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Output
// @Router /seeAllPayments [get]
func (h *PaymentHandler) HandleSeeAllPayments(c *fiber.Ctx) error {
	payments, err := h.service.SeeAllPayments(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, "load payments", err)
	}
	return respond(c, fiber.StatusOK, "", payments)
}
