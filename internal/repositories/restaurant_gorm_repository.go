package repositories

import (
	"context"
	"fmt"
	"strings"

	"eats/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRestaurantRepository is a GORM implementation of RestaurantRepository.
type GORMRestaurantRepository struct {
	db *gorm.DB
}

// NewGORMRestaurantRepository creates a new instance of GORMRestaurantRepository.
func NewGORMRestaurantRepository(db *gorm.DB) *GORMRestaurantRepository {
	return &GORMRestaurantRepository{
		db: db,
	}
}

// Create creates a new restaurant in the database.
func (r *GORMRestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("Category", "Dishes").Create(restaurant).Error; err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

// GetByID retrieves a single restaurant with its category.
func (r *GORMRestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).Preload("Category").First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "restaurant "+id)
	}
	return &restaurant, nil
}

func (r *GORMRestaurantRepository) GetWithDishes(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Dishes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&restaurant, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "restaurant "+id)
	}
	return &restaurant, nil
}

// Update writes the editable restaurant columns. Promotion columns and
// associations are left untouched.
func (r *GORMRestaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	res := r.db.WithContext(ctx).Model(restaurant).
		Select("name", "address", "image_url", "category_id").
		Updates(restaurant)
	if res.Error != nil {
		return fmt.Errorf("failed to update restaurant: %w", res.Error)
	}
	return nil
}

// Delete deletes a restaurant and its menu in one transaction.
func (r *GORMRestaurantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Dish{}).Error; err != nil {
			return fmt.Errorf("failed to delete dishes of restaurant %s: %w", id, err)
		}
		res := tx.Delete(&models.Restaurant{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete restaurant: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// List returns a page of restaurants, promoted ones first.
func (r *GORMRestaurantRepository) List(ctx context.Context, page Page) ([]models.Restaurant, int64, error) {
	return r.paginate(ctx, r.db.WithContext(ctx).Model(&models.Restaurant{}), page)
}

// Search matches restaurant names case-insensitively.
func (r *GORMRestaurantRepository) Search(ctx context.Context, query string, page Page) ([]models.Restaurant, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	return r.paginate(ctx, q, page)
}

func (r *GORMRestaurantRepository) ListByCategory(ctx context.Context, categoryID string, page Page) ([]models.Restaurant, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("category_id = ?", categoryID)
	return r.paginate(ctx, q, page)
}

func (r *GORMRestaurantRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Preload("Category").
		Where("owner_id = ?", ownerID).Order("created_at").Find(&restaurants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants of owner %s: %w", ownerID, err)
	}
	return restaurants, nil
}

func (r *GORMRestaurantRepository) paginate(ctx context.Context, q *gorm.DB, page Page) ([]models.Restaurant, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	var restaurants []models.Restaurant
	err := q.Session(&gorm.Session{}).
		Preload("Category").
		Order("is_promoted DESC").Order("created_at").
		Offset(page.offset()).Limit(page.Size).
		Find(&restaurants).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, total, nil
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) GetOrCreate(ctx context.Context, name, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where(models.Category{Slug: slug}).
		Attrs(models.Category{ID: uuid.New().String(), Name: name}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create category %s: %w", slug, err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, notFound(err, "category "+slug)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var counts []struct {
		CategoryID string
		Total      int64
	}
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count restaurants per category: %w", err)
	}

	byCategory := make(map[string]int64, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Total
	}
	for i := range categories {
		categories[i].RestaurantCount = byCategory[categories[i].ID]
	}
	return categories, nil
}

// GORMDishRepository is a GORM implementation of DishRepository.
type GORMDishRepository struct {
	db *gorm.DB
}

// NewGORMDishRepository creates a new instance of GORMDishRepository.
func NewGORMDishRepository(db *gorm.DB) *GORMDishRepository {
	return &GORMDishRepository{db: db}
}

func (r *GORMDishRepository) Create(ctx context.Context, dish *models.Dish) error {
	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(dish).Error; err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}
	return nil
}

func (r *GORMDishRepository) GetByID(ctx context.Context, id string) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "dish "+id)
	}
	return &dish, nil
}

func (r *GORMDishRepository) Update(ctx context.Context, dish *models.Dish) error {
	if err := r.db.WithContext(ctx).Save(dish).Error; err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}
	return nil
}

func (r *GORMDishRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Dish{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete dish: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("dish %s: %w", id, ErrNotFound)
	}
	return nil
}
