package model

import "time"

// Record is a loosely-structured data entry with a single optional image.
// It is independent of Product.
type Record struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    *string   `json:"imageUrl" gorm:"size:512"`
	CreatedAt   time.Time `json:"created_at"`
}
