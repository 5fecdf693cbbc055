package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. Images holds /uploads paths in the
// order the files were received; Attributes is the open key/value data the
// caller attached beyond the fixed fields.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"type:text;not null"`
	CurrentPrice  decimal.Decimal `json:"new_price" gorm:"type:decimal(20,2);not null"`
	PreviousPrice decimal.Decimal `json:"old_price" gorm:"type:decimal(20,2);default:0"`
	Images        StringList      `json:"images" gorm:"type:json"`
	Category      string          `json:"category" gorm:"size:255;not null;index"`
	Attributes    JSONMap         `json:"data" gorm:"type:json"`
	Available     bool            `json:"available" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
