package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusPending is the status every order starts in. Fulfillment is a
// collaborator concern and never advances it here.
const OrderStatusPending = "pending"

// Order records a placed order. Products is an opaque structured payload
// supplied by the caller.
type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Products  JSONList        `json:"products" gorm:"type:json"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Status    string          `json:"status" gorm:"size:50;default:'pending'"`
	CreatedAt time.Time       `json:"created_at"`
}
