package repositories

import (
	"context"

	"eats/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are never deleted.
type OrderRepository interface {
	// CreateWithItems inserts the order and all of its items atomically.
	CreateWithItems(ctx context.Context, order *models.Order) error
	// GetByID loads the order with its restaurant and items.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID string, status *models.Status) ([]models.Order, error)
	ListByDriver(ctx context.Context, driverID string, status *models.Status) ([]models.Order, error)
	ListByOwner(ctx context.Context, ownerID string, status *models.Status) ([]models.Order, error)
	// UpdateStatus moves the order from -> to. It reports false when the order
	// was no longer in status from.
	UpdateStatus(ctx context.Context, id string, from, to models.Status) (bool, error)
	// AssignDriver sets the driver if none is set yet and reports whether it did.
	AssignDriver(ctx context.Context, id, driverID string) (bool, error)
}
