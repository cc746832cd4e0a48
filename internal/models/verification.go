package models

import "time"

// Verification holds the pending email verification code of a user.
type Verification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code      string    `json:"code" gorm:"uniqueIndex;type:varchar(16)"`
	UserID    string    `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
}
