package services

import (
	"context"
	"fmt"
	"strings"

	"eats/internal/models"
	"eats/internal/repositories"
)

// CreateDishInput is the body of createDish.
type CreateDishInput struct {
	RestaurantID string              `json:"restaurantId" validate:"required"`
	Name         string              `json:"name" validate:"required,min=2,max=100"`
	Price        float64             `json:"price" validate:"gte=0"`
	ImageURL     string              `json:"imageUrl" validate:"omitempty,url"`
	Description  string              `json:"description" validate:"max=500"`
	Options      []models.DishOption `json:"options" validate:"dive"`
}

// EditDishInput is the body of editDish. Nil fields are left unchanged.
type EditDishInput struct {
	DishID      string               `json:"dishId" validate:"required"`
	Name        *string              `json:"name" validate:"omitempty,min=2,max=100"`
	Price       *float64             `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string              `json:"imageUrl" validate:"omitempty,url"`
	Description *string              `json:"description" validate:"omitempty,max=500"`
	Options     *[]models.DishOption `json:"options"`
}

// DishService handles menu operations.
type DishService struct {
	dishes      repositories.DishRepository
	restaurants repositories.RestaurantRepository
}

// NewDishService creates a new DishService.
func NewDishService(dishes repositories.DishRepository, restaurants repositories.RestaurantRepository) *DishService {
	return &DishService{
		dishes:      dishes,
		restaurants: restaurants,
	}
}

// CreateDish adds a dish to a restaurant of owner.
func (s *DishService) CreateDish(ctx context.Context, owner *models.User, in CreateDishInput) (*models.Dish, error) {
	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, lookup(err, "restaurant %s not found", in.RestaurantID)
	}
	if restaurant.OwnerID != owner.ID {
		return nil, newError(ErrForbidden, "you can't add dishes to a restaurant that you don't own")
	}
	options, err := checkOptions(in.Options)
	if err != nil {
		return nil, err
	}

	dish := &models.Dish{
		RestaurantID: restaurant.ID,
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		Description:  in.Description,
		Options:      options,
	}
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}
	return dish, nil
}

// EditDish updates a dish of one of owner's restaurants.
func (s *DishService) EditDish(ctx context.Context, owner *models.User, in EditDishInput) (*models.Dish, error) {
	dish, err := s.owned(ctx, owner, in.DishID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		dish.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		dish.Price = *in.Price
	}
	if in.ImageURL != nil {
		dish.ImageURL = *in.ImageURL
	}
	if in.Description != nil {
		dish.Description = *in.Description
	}
	if in.Options != nil {
		options, err := checkOptions(*in.Options)
		if err != nil {
			return nil, err
		}
		dish.Options = options
	}

	if err := s.dishes.Update(ctx, dish); err != nil {
		return nil, fmt.Errorf("failed to edit dish: %w", err)
	}
	return dish, nil
}

// DeleteDish removes a dish of one of owner's restaurants.
func (s *DishService) DeleteDish(ctx context.Context, owner *models.User, dishID string) error {
	if _, err := s.owned(ctx, owner, dishID); err != nil {
		return err
	}
	if err := s.dishes.Delete(ctx, dishID); err != nil {
		return lookup(err, "dish %s not found", dishID)
	}
	return nil
}

func (s *DishService) owned(ctx context.Context, owner *models.User, dishID string) (*models.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, dishID)
	if err != nil {
		return nil, lookup(err, "dish %s not found", dishID)
	}
	restaurant, err := s.restaurants.GetByID(ctx, dish.RestaurantID)
	if err != nil {
		return nil, lookup(err, "dish %s not found", dishID)
	}
	if restaurant.OwnerID != owner.ID {
		return nil, newError(ErrForbidden, "you can't change dishes of a restaurant that you don't own")
	}
	return dish, nil
}

// checkOptions trims option names and rejects duplicates and negative prices.
func checkOptions(options []models.DishOption) ([]models.DishOption, error) {
	checked := make([]models.DishOption, 0, len(options))
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			return nil, newError(ErrValidation, "option names must not be empty")
		}
		if seen[name] {
			return nil, newError(ErrValidation, "option %q is declared twice", name)
		}
		if o.ExtraPrice < 0 {
			return nil, newError(ErrValidation, "option %q has a negative extra price", name)
		}
		seen[name] = true
		checked = append(checked, models.DishOption{Name: name, ExtraPrice: o.ExtraPrice})
	}
	return checked, nil
}
