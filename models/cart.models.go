package models

import (
	"github.com/shopspring/decimal"
)

// LineItem represents one entry in a shopping cart. Title, image,
// description and price are snapshots taken from the catalog at add
// time; later catalog edits do not propagate into existing carts.
type LineItem struct {
	CartItemID  string            `json:"cart_item_id"`
	ProductID   string            `json:"product_id"`
	Title       string            `json:"title"`
	Image       string            `json:"image,omitempty"`
	Description string            `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Qty         int               `json:"qty"`
	Options     map[string]string `json:"options,omitempty"`
}

// Subtotal returns price times quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// OptionsEqual reports whether two option maps hold exactly the same
// keys and values. Two line items with the same product but different
// options are distinct entries and never merge.
func OptionsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
