package repositories

import (
	"context"

	"eats/internal/models"
)

// UserRepository defines the interface for account data access.
type UserRepository interface {
	CreateWithVerification(ctx context.Context, user *models.User, verification *models.Verification) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// UpdateWithVerification saves user and replaces its pending verification code.
	UpdateWithVerification(ctx context.Context, user *models.User, verification *models.Verification) error
	GetVerificationByCode(ctx context.Context, code string) (*models.Verification, error)
	// Verify marks the verification's user as verified and consumes the code.
	Verify(ctx context.Context, verification *models.Verification) error
}
