package handlers

import (
	"eats/internal/middleware"
	"eats/internal/models"
	"eats/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers the account routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/createAccount", h.HandleCreateAccount)
	router.Post("/login", h.HandleLogin)
	router.Post("/verifyEmail", h.HandleVerifyEmail)
	router.Post("/sendPasswordReset", h.HandleSendPasswordReset)

	authenticated := middleware.RequireRoles(models.RoleAny)
	router.Get("/seeMe", authenticated, h.HandleSeeMe)
	router.Get("/seeProfile/:id", authenticated, h.HandleSeeProfile)
	router.Post("/editProfile", authenticated, h.HandleEditProfile)
	router.Post("/resetPassword", authenticated, h.HandleResetPassword)
}

// HandleCreateAccount registers a new account.
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body services.CreateAccountInput true "account"
// @Success 201 {object} Output
// @Router /createAccount [post]
func (h *UserHandler) HandleCreateAccount(c *fiber.Ctx) error {
	var in services.CreateAccountInput
	if err := bind(c, &in); err != nil {
		return fail(c, "create account", err)
	}
	user, err := h.users.CreateAccount(c.UserContext(), in)
	if err != nil {
		return fail(c, "create account", err)
	}
	return respond(c, fiber.StatusCreated, "Account created", user)
}

// LoginInput is the body of login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin exchanges credentials for a token.
// @Summary Log in
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body LoginInput true "credentials"
// @Success 200 {object} Output
// @Router /login [post]
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var in LoginInput
	if err := bind(c, &in); err != nil {
		return fail(c, "log in", err)
	}
	token, err := h.users.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return fail(c, "log in", err)
	}
	return respond(c, fiber.StatusOK, "Login successful", fiber.Map{"token": token})
}

// HandleSeeMe returns the caller's account.
// @Summary See my account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Output
// @Router /seeMe [get]
func (h *UserHandler) HandleSeeMe(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, "", middleware.CurrentUser(c))
}

// HandleSeeProfile returns any account by id.
// @Summary See a profile
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} Output
// @Router /seeProfile/{id} [get]
func (h *UserHandler) HandleSeeProfile(c *fiber.Ctx) error {
	user, err := h.users.SeeProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "find user", err)
	}
	return respond(c, fiber.StatusOK, "", user)
}

// HandleEditProfile updates the caller's account.
// @Summary Edit my profile
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EditProfileInput true "changes"
// @Success 200 {object} Output
// @Router /editProfile [post]
func (h *UserHandler) HandleEditProfile(c *fiber.Ctx) error {
	var in services.EditProfileInput
	if err := bind(c, &in); err != nil {
		return fail(c, "update profile", err)
	}
	user, err := h.users.EditProfile(c.UserContext(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, "update profile", err)
	}
	return respond(c, fiber.StatusOK, "Profile updated", user)
}

// VerifyEmailInput is the body of verifyEmail.
type VerifyEmailInput struct {
	Code string `json:"code" validate:"required"`
}

// HandleVerifyEmail consumes an email verification code.
// @Summary Verify an email address
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body VerifyEmailInput true "code"
// @Success 200 {object} Output
// @Router /verifyEmail [post]
func (h *UserHandler) HandleVerifyEmail(c *fiber.Ctx) error {
	var in VerifyEmailInput
	if err := bind(c, &in); err != nil {
		return fail(c, "verify email", err)
	}
	if err := h.users.VerifyEmail(c.UserContext(), in.Code); err != nil {
		return fail(c, "verify email", err)
	}
	return respond(c, fiber.StatusOK, "Email verified", nil)
}

// HandleResetPassword sets a new password on the caller's account.
// @Summary Reset my password
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ResetPasswordInput true "new password"
// @Success 200 {object} Output
// @Router /resetPassword [post]
func (h *UserHandler) HandleResetPassword(c *fiber.Ctx) error {
	var in services.ResetPasswordInput
	if err := bind(c, &in); err != nil {
		return fail(c, "reset password", err)
	}
	if err := h.users.ResetPassword(c.UserContext(), middleware.CurrentUser(c), in); err != nil {
		return fail(c, "reset password", err)
	}
	return respond(c, fiber.StatusOK, "Password changed", nil)
}

// SendPasswordResetInput is the body of sendPasswordReset.
type SendPasswordResetInput struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleSendPasswordReset mails password reset instructions.
// @Summary Send a password reset mail
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body SendPasswordResetInput true "email"
// @Success 200 {object} Output
// @Router /sendPasswordReset [post]
func (h *UserHandler) HandleSendPasswordReset(c *fiber.Ctx) error {
	var in SendPasswordResetInput
	if err := bind(c, &in); err != nil {
		return fail(c, "send password reset", err)
	}
	if err := h.users.SendPasswordReset(c.UserContext(), in.Email); err != nil {
		return fail(c, "send password reset", err)
	}
	return respond(c, fiber.StatusOK, "Password reset mail sent", nil)
}
