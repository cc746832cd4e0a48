package repositories

import (
	"context"
	"fmt"

	"eats/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// CreateWithVerification inserts a user together with its first verification code.
func (r *GORMUserRepository) CreateWithVerification(ctx context.Context, user *models.User, verification *models.Verification) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if verification == nil {
			return nil
		}
		if verification.ID == "" {
			verification.ID = uuid.New().String()
		}
		verification.UserID = user.ID
		if err := tx.Create(verification).Error; err != nil {
			return fmt.Errorf("failed to create verification: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user "+id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFound(err, "user with email "+email)
	}
	return &user, nil
}

// Update saves every field of user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func (r *GORMUserRepository) UpdateWithVerification(ctx context.Context, user *models.User, verification *models.Verification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return fmt.Errorf("failed to update user %s: %w", user.ID, err)
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Verification{}).Error; err != nil {
			return fmt.Errorf("failed to clear verification of user %s: %w", user.ID, err)
		}
		if verification.ID == "" {
			verification.ID = uuid.New().String()
		}
		verification.UserID = user.ID
		if err := tx.Create(verification).Error; err != nil {
			return fmt.Errorf("failed to create verification: %w", err)
		}
		return nil
	})
}

func (r *GORMUserRepository) GetVerificationByCode(ctx context.Context, code string) (*models.Verification, error) {
	var verification models.Verification
	if err := r.db.WithContext(ctx).First(&verification, "code = ?", code).Error; err != nil {
		return nil, notFound(err, "verification code")
	}
	return &verification, nil
}

func (r *GORMUserRepository) Verify(ctx context.Context, verification *models.Verification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", verification.UserID).Update("email_verified", true)
		if res.Error != nil {
			return fmt.Errorf("failed to verify user %s: %w", verification.UserID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %s: %w", verification.UserID, ErrNotFound)
		}
		if err := tx.Delete(&models.Verification{}, "id = ?", verification.ID).Error; err != nil {
			return fmt.Errorf("failed to delete verification: %w", err)
		}
		return nil
	})
}
