package models

import "time"

// Category groups restaurants, e.g. "korean bbq" with slug "korean-bbq".
type Category struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string    `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
	Slug            string    `json:"slug" gorm:"uniqueIndex;type:varchar(50)"`
	ImageURL        string    `json:"imageUrl"`
	RestaurantCount int64     `json:"restaurantCount" gorm:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Restaurant is owned by exactly one Owner account.
type Restaurant struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string     `json:"name" gorm:"type:varchar(100);index"`
	Address       string     `json:"address"`
	ImageURL      string     `json:"imageUrl"`
	CategoryID    *string    `json:"categoryId" gorm:"type:varchar(36);index"`
	Category      *Category  `json:"category,omitempty"`
	OwnerID       string     `json:"ownerId" gorm:"type:varchar(36);index"`
	IsPromoted    bool       `json:"isPromoted" gorm:"default:false;index"`
	PromotedUntil *time.Time `json:"promotedUntil"`
	Dishes        []Dish     `json:"dishes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
