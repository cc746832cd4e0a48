package models

import "time"

// OrderItem is a single line of an order. It is immutable once created.
type OrderItem struct {
	ID      string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID string   `json:"orderId" gorm:"type:varchar(36);index"`
	DishID  string   `json:"dishId" gorm:"type:varchar(36)"`
	Options []string `json:"options" gorm:"type:text;serializer:json"`
}

// Order represents a customer order placed against a restaurant.
type Order struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID string      `json:"restaurantId" gorm:"type:varchar(36);index"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
	CustomerID   string      `json:"customerId" gorm:"type:varchar(36);index"`
	DriverID     *string     `json:"driverId" gorm:"type:varchar(36);index"`
	Items        []OrderItem `json:"items"`
	TotalPrice   float64     `json:"totalPrice"`
	Status       Status      `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// OwnerID returns the owner of the order's restaurant, or "" when it was not loaded.
func (o *Order) OwnerID() string {
	if o.Restaurant == nil {
		return ""
	}
	return o.Restaurant.OwnerID
}

// IsParty reports whether userID is the restaurant owner, the customer or the driver of the order.
func (o *Order) IsParty(userID string) bool {
	if userID == "" {
		return false
	}
	if o.CustomerID == userID || o.OwnerID() == userID {
		return true
	}
	return o.DriverID != nil && *o.DriverID == userID
}
