package services

import (
	"context"
	"fmt"
	"time"

	"eats/internal/models"
	"eats/internal/repositories"
)

// DefaultPromotionDuration is how long a payment keeps its restaurant promoted.
const DefaultPromotionDuration = 7 * 24 * time.Hour

// CreatePaymentInput is the body of createPayment.
type CreatePaymentInput struct {
	RestaurantID  string `json:"restaurantId" validate:"required"`
	TransactionID string `json:"transactionId" validate:"required,max=100"`
}

// PaymentService records promotion payments and expires promotions.
type PaymentService struct {
	payments    repositories.PaymentRepository
	restaurants repositories.RestaurantRepository
	duration    time.Duration
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService. A non-positive duration uses DefaultPromotionDuration.
func NewPaymentService(payments repositories.PaymentRepository, restaurants repositories.RestaurantRepository, duration time.Duration) *PaymentService {
	if duration <= 0 {
		duration = DefaultPromotionDuration
	}
	return &PaymentService{
		payments:    payments,
		restaurants: restaurants,
		duration:    duration,
		now:         time.Now,
	}
}

// CreatePayment records owner's payment and promotes the restaurant from now on.
func (s *PaymentService) CreatePayment(ctx context.Context, owner *models.User, in CreatePaymentInput) (*models.Payment, error) {
	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, lookup(err, "restaurant %s not found", in.RestaurantID)
	}
	if restaurant.OwnerID != owner.ID {
		return nil, newError(ErrForbidden, "you are not allowed to do this")
	}

	payment := &models.Payment{
		TransactionID: in.TransactionID,
		UserID:        owner.ID,
		RestaurantID:  restaurant.ID,
	}
	if err := s.payments.CreateAndPromote(ctx, payment, s.now().Add(s.duration)); err != nil {
		return nil, lookup(err, "restaurant %s not found", in.RestaurantID)
	}
	return payment, nil
}

// SeeAllPayments lists owner's payments, newest first.
func (s *PaymentService) SeeAllPayments(ctx context.Context, owner *models.User) ([]models.Payment, error) {
	payments, err := s.payments.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// SweepExpiredPromotions un-promotes every restaurant whose promotion has ended.
func (s *PaymentService) SweepExpiredPromotions(ctx context.Context) (int64, error) {
	cleared, err := s.payments.ClearExpiredPromotions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep promotions: %w", err)
	}
	return cleared, nil
}
