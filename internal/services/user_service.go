package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"eats/internal/mail"
	"eats/internal/models"
	"eats/internal/repositories"

	"github.com/google/uuid"
)

// CreateAccountInput is the body of createAccount.
type CreateAccountInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Username string      `json:"username" validate:"omitempty,min=2,max=100"`
	Password string      `json:"password" validate:"required,min=4,max=72"`
	Role     models.Role `json:"role" validate:"required,oneof=Owner Customer Driver"`
}

// EditProfileInput is the body of editProfile. Empty fields are left unchanged.
type EditProfileInput struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=2,max=100"`
	Password string `json:"password" validate:"omitempty,min=4,max=72"`
}

// ResetPasswordInput is the body of resetPassword.
type ResetPasswordInput struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required,min=4,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UserService handles account management.
type UserService struct {
	users  repositories.UserRepository
	auth   *AuthService
	mailer mail.Sender
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository, auth *AuthService, mailer mail.Sender) *UserService {
	return &UserService{
		users:  users,
		auth:   auth,
		mailer: mailer,
	}
}

// CreateAccount registers a new account and sends its verification code.
func (s *UserService) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.User, error) {
	if !in.Role.IsAccountRole() {
		return nil, newError(ErrValidation, "role must be one of Owner, Customer, Driver")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	user := &models.User{
		Email:    email,
		Username: username,
		Password: hashed,
		Role:     in.Role,
	}
	verification := &models.Verification{Code: newVerificationCode()}
	if err := s.users.CreateWithVerification(ctx, user, verification); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.sendVerification(ctx, user, verification)
	return user, nil
}

// Login checks the credentials and returns a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repositories.ErrNotFound) {
		return "", newError(ErrInvalidCredentials, "invalid credentials")
	}
	if err != nil {
		return "", err
	}
	if !s.auth.CheckPassword(user.Password, password) {
		return "", newError(ErrInvalidCredentials, "invalid credentials")
	}
	return s.auth.IssueToken(user)
}

// SeeProfile returns the account with the given id.
func (s *UserService) SeeProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "user %s not found", id)
	}
	return user, nil
}

// EditProfile updates the caller's account. A new email must be verified again.
func (s *UserService) EditProfile(ctx context.Context, caller *models.User, in EditProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, lookup(err, "user %s not found", caller.ID)
	}

	if in.Username != "" {
		user.Username = strings.TrimSpace(in.Username)
	}
	if in.Password != "" {
		hashed, err := s.auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || email == user.Email {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to edit profile: %w", err)
		}
		return user, nil
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	user.Email = email
	user.EmailVerified = false
	verification := &models.Verification{Code: newVerificationCode()}
	if err := s.users.UpdateWithVerification(ctx, user, verification); err != nil {
		return nil, fmt.Errorf("failed to edit profile: %w", err)
	}
	s.sendVerification(ctx, user, verification)
	return user, nil
}

// VerifyEmail consumes a verification code.
func (s *UserService) VerifyEmail(ctx context.Context, code string) error {
	verification, err := s.users.GetVerificationByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return lookup(err, "verification code not found")
	}
	if err := s.users.Verify(ctx, verification); err != nil {
		return lookup(err, "verification code not found")
	}
	return nil
}

// ResetPassword sets a new password on the caller's own account.
func (s *UserService) ResetPassword(ctx context.Context, caller *models.User, in ResetPasswordInput) error {
	if in.Password != in.ConfirmPassword {
		return newError(ErrValidation, "passwords do not match")
	}
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return lookup(err, "user %s not found", caller.ID)
	}
	if user.Username != in.Username {
		return newError(ErrForbidden, "you can only reset your own password")
	}

	hashed, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// SendPasswordReset mails password reset instructions to the account's owner.
func (s *UserService) SendPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return lookup(err, "no account registered with %s", email)
	}
	msg := mail.Message{
		To:       user.Email,
		Template: mail.TemplatePasswordReset,
		Vars:     map[string]string{"username": user.Username},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send password reset mail: %w", err)
	}
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return newError(ErrAlreadyExists, "there is a user with that email already")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

// sendVerification is best-effort: the code stays valid when mail delivery fails.
func (s *UserService) sendVerification(ctx context.Context, user *models.User, verification *models.Verification) {
	msg := mail.Message{
		To:       user.Email,
		Template: mail.TemplateEmailVerification,
		Vars:     map[string]string{"username": user.Username, "code": verification.Code},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("Error sending verification mail to user %s: %v", user.ID, err)
	}
}

func newVerificationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
