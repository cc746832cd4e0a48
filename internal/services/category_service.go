package services

import (
	"context"
	"strings"

	"eats/internal/models"
	"eats/internal/repositories"
)

// NormalizeCategory lower-cases name, trims it and collapses inner whitespace.
// The slug is the normalized name with spaces replaced by dashes.
func NormalizeCategory(name string) (normalized, slug string) {
	normalized = strings.Join(strings.Fields(strings.ToLower(name)), " ")
	slug = strings.ReplaceAll(normalized, " ", "-")
	return normalized, slug
}

// CategoryPage is a category together with one page of its restaurants.
type CategoryPage struct {
	Category *models.Category `json:"category"`
	*RestaurantPage
}

// CategoryService handles category lookups.
type CategoryService struct {
	categories  repositories.CategoryRepository
	restaurants repositories.RestaurantRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories repositories.CategoryRepository, restaurants repositories.RestaurantRepository) *CategoryService {
	return &CategoryService{
		categories:  categories,
		restaurants: restaurants,
	}
}

// SeeAllCategories lists every category with its restaurant count.
func (s *CategoryService) SeeAllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// SeeCategory returns the category with slug and one page of its restaurants.
func (s *CategoryService) SeeCategory(ctx context.Context, slug string, pageNumber int) (*CategoryPage, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, lookup(err, "category %s not found", slug)
	}
	restaurants, total, err := s.restaurants.ListByCategory(ctx, category.ID, page(pageNumber))
	if err != nil {
		return nil, err
	}
	category.RestaurantCount = total
	return &CategoryPage{Category: category, RestaurantPage: newRestaurantPage(restaurants, total)}, nil
}
