package models

import "time"

// Payment records a promotion purchase for a restaurant.
type Payment struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TransactionID string    `json:"transactionId" gorm:"type:varchar(100)"`
	UserID        string    `json:"userId" gorm:"type:varchar(36);index"`
	RestaurantID  string    `json:"restaurantId" gorm:"type:varchar(36);index"`
	CreatedAt     time.Time `json:"createdAt"`
}
