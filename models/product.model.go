package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a canonical catalog record. The catalog is
// read-only; carts copy the fields they need at add time.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category"`
	Badge       string          `json:"badge,omitempty"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	Description string          `json:"description,omitempty"`
	Features    []string        `json:"features,omitempty"`
}
