package models

import "time"

// DishOption is a named extra that can be selected when ordering a dish.
type DishOption struct {
	Name       string  `json:"name" validate:"required,min=1,max=50"`
	ExtraPrice float64 `json:"extraPrice" validate:"gte=0"`
}

// Dish is a menu item of a restaurant. Options keep their declared order.
type Dish struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID string       `json:"restaurantId" gorm:"type:varchar(36);index"`
	Name         string       `json:"name" gorm:"type:varchar(100)"`
	Price        float64      `json:"price"`
	ImageURL     string       `json:"imageUrl"`
	Description  string       `json:"description"`
	Options      []DishOption `json:"options" gorm:"type:text;serializer:json"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Option returns the option called name, if the dish has one.
func (d *Dish) Option(name string) (DishOption, bool) {
	for _, o := range d.Options {
		if o.Name == name {
			return o, true
		}
	}
	return DishOption{}, false
}
