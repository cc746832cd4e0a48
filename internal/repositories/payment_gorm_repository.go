package repositories

import (
	"context"
	"fmt"
	"time"

	"eats/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

func (r *GORMPaymentRepository) CreateAndPromote(ctx context.Context, payment *models.Payment, until time.Time) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		res := tx.Model(&models.Restaurant{}).Where("id = ?", payment.RestaurantID).
			Updates(map[string]interface{}{"is_promoted": true, "promoted_until": until})
		if res.Error != nil {
			return fmt.Errorf("failed to promote restaurant %s: %w", payment.RestaurantID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("restaurant %s: %w", payment.RestaurantID, ErrNotFound)
		}
		return nil
	})
}

func (r *GORMPaymentRepository) ListByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of user %s: %w", userID, err)
	}
	return payments, nil
}

func (r *GORMPaymentRepository) ClearExpiredPromotions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("is_promoted = ? AND promoted_until < ?", true, now).
		Updates(map[string]interface{}{"is_promoted": false, "promoted_until": nil})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear expired promotions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
