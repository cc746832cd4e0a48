package services

import (
	"context"
	"fmt"
	"strings"

	"eats/internal/models"
	"eats/internal/repositories"
)

// PageSize is the number of restaurants per listing page.
const PageSize = 25

// CreateRestaurantInput is the body of createRestaurant.
type CreateRestaurantInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Address      string `json:"address" validate:"required,max=255"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	CategoryName string `json:"categoryName" validate:"required,max=50"`
}

// EditRestaurantInput is the body of editRestaurant. Empty fields are left unchanged.
type EditRestaurantInput struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	Name         string `json:"name" validate:"omitempty,min=2,max=100"`
	Address      string `json:"address" validate:"omitempty,max=255"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	CategoryName string `json:"categoryName" validate:"omitempty,max=50"`
}

// RestaurantPage is one page of a restaurant listing.
type RestaurantPage struct {
	Results      []models.Restaurant `json:"results"`
	TotalPages   int                 `json:"totalPages"`
	TotalResults int64               `json:"totalResults"`
}

func newRestaurantPage(restaurants []models.Restaurant, total int64) *RestaurantPage {
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return &RestaurantPage{
		Results:      restaurants,
		TotalPages:   int((total + PageSize - 1) / PageSize),
		TotalResults: total,
	}
}

func page(number int) repositories.Page {
	if number < 1 {
		number = 1
	}
	return repositories.Page{Number: number, Size: PageSize}
}

// RestaurantService handles restaurant catalog operations.
type RestaurantService struct {
	restaurants repositories.RestaurantRepository
	categories  repositories.CategoryRepository
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(restaurants repositories.RestaurantRepository, categories repositories.CategoryRepository) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		categories:  categories,
	}
}

// CreateRestaurant opens a restaurant owned by owner, creating its category when needed.
func (s *RestaurantService) CreateRestaurant(ctx context.Context, owner *models.User, in CreateRestaurantInput) (*models.Restaurant, error) {
	category, err := s.category(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	restaurant := &models.Restaurant{
		Name:       strings.TrimSpace(in.Name),
		Address:    strings.TrimSpace(in.Address),
		ImageURL:   in.ImageURL,
		CategoryID: &category.ID,
		OwnerID:    owner.ID,
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	restaurant.Category = category
	return restaurant, nil
}

// EditRestaurant updates a restaurant of owner.
func (s *RestaurantService) EditRestaurant(ctx context.Context, owner *models.User, in EditRestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.owned(ctx, owner, in.RestaurantID, "edit")
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		restaurant.Name = strings.TrimSpace(in.Name)
	}
	if in.Address != "" {
		restaurant.Address = strings.TrimSpace(in.Address)
	}
	if in.ImageURL != "" {
		restaurant.ImageURL = in.ImageURL
	}
	if in.CategoryName != "" {
		category, err := s.category(ctx, in.CategoryName)
		if err != nil {
			return nil, err
		}
		restaurant.CategoryID = &category.ID
		restaurant.Category = category
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to edit restaurant: %w", err)
	}
	return restaurant, nil
}

// DeleteRestaurant removes a restaurant of owner together with its menu.
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, owner *models.User, restaurantID string) error {
	if _, err := s.owned(ctx, owner, restaurantID, "delete"); err != nil {
		return err
	}
	if err := s.restaurants.Delete(ctx, restaurantID); err != nil {
		return lookup(err, "restaurant %s not found", restaurantID)
	}
	return nil
}

func (s *RestaurantService) SeeAllRestaurants(ctx context.Context, pageNumber int) (*RestaurantPage, error) {
	restaurants, total, err := s.restaurants.List(ctx, page(pageNumber))
	if err != nil {
		return nil, err
	}
	return newRestaurantPage(restaurants, total), nil
}

// SeeRestaurant returns a restaurant with its menu.
func (s *RestaurantService) SeeRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.GetWithDishes(ctx, restaurantID)
	if err != nil {
		return nil, lookup(err, "restaurant %s not found", restaurantID)
	}
	return restaurant, nil
}

// SearchRestaurants matches restaurant names containing query, ignoring case.
func (s *RestaurantService) SearchRestaurants(ctx context.Context, query string, pageNumber int) (*RestaurantPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, newError(ErrValidation, "query must not be empty")
	}
	restaurants, total, err := s.restaurants.Search(ctx, query, page(pageNumber))
	if err != nil {
		return nil, err
	}
	return newRestaurantPage(restaurants, total), nil
}

func (s *RestaurantService) SeeMyRestaurants(ctx context.Context, owner *models.User) ([]models.Restaurant, error) {
	restaurants, err := s.restaurants.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return restaurants, nil
}

func (s *RestaurantService) category(ctx context.Context, name string) (*models.Category, error) {
	normalized, slug := NormalizeCategory(name)
	if slug == "" {
		return nil, newError(ErrValidation, "category name must not be empty")
	}
	return s.categories.GetOrCreate(ctx, normalized, slug)
}

// owned loads a restaurant and checks that owner owns it.
func (s *RestaurantService) owned(ctx context.Context, owner *models.User, restaurantID, action string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, lookup(err, "restaurant %s not found", restaurantID)
	}
	if restaurant.OwnerID != owner.ID {
		return nil, newError(ErrForbidden, "you can't %s a restaurant that you don't own", action)
	}
	return restaurant, nil
}
