package repositories

import (
	"context"
	"time"

	"eats/internal/models"
)

// PaymentRepository defines the interface for payment and promotion data access.
type PaymentRepository interface {
	// CreateAndPromote records the payment and promotes its restaurant until the given time.
	CreateAndPromote(ctx context.Context, payment *models.Payment, until time.Time) error
	ListByUser(ctx context.Context, userID string) ([]models.Payment, error)
	// ClearExpiredPromotions un-promotes every restaurant promoted until before now.
	ClearExpiredPromotions(ctx context.Context, now time.Time) (int64, error)
}
