// Package catalog holds the read-only product roster the storefront
// sells from. Carts resolve product ids against it at add time; it is
// never written to at runtime.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"coffeehouse/models"
)

// ErrProductNotFound is returned when a product id does not resolve
// against the catalog.
var ErrProductNotFound = errors.New("catalog: product not found")

// Sort keys accepted by SortBy. "featured" keeps catalog order.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
	SortRating    = "rating"
)

// Catalog is an immutable in-memory product lookup table.
type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// New builds a catalog from the given products. The slice is copied.
func New(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byID:     make(map[string]models.Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the catalog seeded with the CoffeeHouse roster.
func Default() *Catalog {
	return New(seedProducts)
}

// Get resolves a product id.
func (c *Catalog) Get(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns all products in catalog order.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Filter returns the products in the given category. An empty
// category or "all" returns everything.
func (c *Catalog) Filter(category string) []models.Product {
	if category == "" || category == "all" {
		return c.List()
	}
	var out []models.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search returns products whose title or description contains the
// query, case-insensitively. An empty query returns everything.
func (c *Catalog) Search(query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.List()
	}
	var out []models.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}

// SortBy orders products in place by the given key. Unknown keys and
// "featured" leave the order untouched.
func SortBy(products []models.Product, key string) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
