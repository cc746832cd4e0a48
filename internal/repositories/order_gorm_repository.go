package repositories

import (
	"context"
	"fmt"
	"time"

	"eats/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

func (r *GORMOrderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Restaurant", "Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if len(order.Items) == 0 {
			return nil
		}
		if err := tx.Create(&order.Items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		return nil
	})
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.withRelations(r.db.WithContext(ctx)).First(&order, "orders.id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "order "+id)
	}
	return &order, nil
}

func (r *GORMOrderRepository) ListByCustomer(ctx context.Context, customerID string, status *models.Status) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Where("orders.customer_id = ?", customerID)
	return r.list(q, status)
}

func (r *GORMOrderRepository) ListByDriver(ctx context.Context, driverID string, status *models.Status) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Where("orders.driver_id = ?", driverID)
	return r.list(q, status)
}

// ListByOwner returns the orders of every restaurant owned by ownerID.
func (r *GORMOrderRepository) ListByOwner(ctx context.Context, ownerID string, status *models.Status) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Select("orders.*").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("restaurants.owner_id = ?", ownerID)
	return r.list(q, status)
}

func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *GORMOrderRepository) AssignDriver(ctx context.Context, id, driverID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND driver_id IS NULL", id).
		Updates(map[string]interface{}{"driver_id": driverID, "updated_at": time.Now()})
	if res.Error != nil {
		return false, fmt.Errorf("failed to assign driver to order %s: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *GORMOrderRepository) list(q *gorm.DB, status *models.Status) ([]models.Order, error) {
	if status != nil {
		q = q.Where("orders.status = ?", *status)
	}
	var orders []models.Order
	if err := r.withRelations(q).Order("orders.created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Restaurant").Preload("Items")
}
