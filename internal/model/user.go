package model

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"
)

// CartSlots is the fixed number of cart slots seeded at registration.
const CartSlots = 300

// Cart is the fixed-size cart placeholder: a mapping from slot index "0".."299"
// to a quantity count, stored as a JSON column.
type Cart map[string]int

// NewCart returns a cart with every slot zeroed.
func NewCart() Cart {
	c := make(Cart, CartSlots)
	for i := 0; i < CartSlots; i++ {
		c[strconv.Itoa(i)] = 0
	}
	return c
}

// Value implements driver.Valuer.
func (c Cart) Value() (driver.Value, error) {
	if c == nil {
		c = Cart{}
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *Cart) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// User represents a registered account. Users are created once at
// registration and never updated afterwards.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Cart         Cart      `json:"cartData" gorm:"type:json"`
	CreatedAt    time.Time `json:"created_at"`
}
