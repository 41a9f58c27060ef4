package catalog

import (
	"github.com/shopspring/decimal"

	"coffeehouse/models"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedProducts is the CoffeeHouse roster served by Default.
var seedProducts = []models.Product{
	{
		ID:          "ethiopian-single-origin",
		Title:       "Ethiopian Single Origin",
		Price:       price("24.99"),
		Category:    "single-origin",
		Badge:       "New",
		Rating:      4.8,
		Reviews:     127,
		Description: "Bright, fruity notes with wine-like acidity from Ethiopian highlands",
		Features:    []string{"Fruity notes", "Wine-like acidity", "Ethiopian highlands", "Light roast"},
	},
	{
		ID:          "colombian-blend",
		Title:       "Colombian Medium Blend",
		Price:       price("18.99"),
		Category:    "blends",
		Badge:       "Popular",
		Rating:      4.6,
		Reviews:     89,
		Description: "Well-balanced medium roast with nutty and chocolate notes",
		Features:    []string{"Medium roast", "Nutty notes", "Chocolate flavor", "Well-balanced"},
	},
	{
		ID:          "espresso-roast",
		Title:       "Italian Espresso Roast",
		Price:       price("22.99"),
		Category:    "espresso",
		Badge:       "Hot",
		Rating:      4.7,
		Reviews:     234,
		Description: "Dark Italian roast perfect for espresso machines",
		Features:    []string{"Dark roast", "Espresso perfect", "Italian style", "Rich flavor"},
	},
	{
		ID:          "decaf-house-blend",
		Title:       "Decaf House Blend",
		Price:       price("16.99"),
		Category:    "decaf",
		Badge:       "Sale",
		Rating:      4.5,
		Reviews:     156,
		Description: "Swiss water decaffeinated process preserves flavor",
		Features:    []string{"Decaffeinated", "Swiss water process", "Flavor preserved", "Smooth taste"},
	},
	{
		ID:          "organic-peru",
		Title:       "Organic Peru Single Origin",
		Price:       price("26.99"),
		Category:    "organic",
		Badge:       "Premium",
		Rating:      4.9,
		Reviews:     67,
		Description: "Certified organic with smooth, mild flavor profile",
		Features:    []string{"Certified organic", "Smooth flavor", "Mild profile", "Peru origin"},
	},
	{
		ID:          "guatemalan-antigua",
		Title:       "Guatemalan Antigua",
		Price:       price("21.99"),
		Category:    "single-origin",
		Badge:       "Limited",
		Rating:      4.8,
		Reviews:     45,
		Description: "Volcanic soil creates rich, complex flavor with spicy notes",
		Features:    []string{"Volcanic soil", "Complex flavor", "Spicy notes", "Limited edition"},
	},
	{
		ID:          "breakfast-blend",
		Title:       "Breakfast Blend",
		Price:       price("17.99"),
		Category:    "blends",
		Badge:       "Trending",
		Rating:      4.4,
		Reviews:     89,
		Description: "Smooth morning blend with caramel and vanilla undertones",
		Features:    []string{"Morning blend", "Caramel notes", "Vanilla undertones", "Smooth taste"},
	},
	{
		ID:          "french-roast-dark",
		Title:       "French Roast Dark",
		Price:       price("19.99"),
		Category:    "espresso",
		Badge:       "Pro",
		Rating:      4.6,
		Reviews:     112,
		Description: "Bold, smoky flavor perfect for French press brewing",
		Features:    []string{"Bold flavor", "Smoky notes", "French press", "Dark roast"},
	},
	{
		ID:          "sumatra-mandheling",
		Title:       "Sumatra Mandheling",
		Price:       price("23.99"),
		Category:    "single-origin",
		Badge:       "Rare",
		Rating:      4.8,
		Reviews:     78,
		Description: "Earthy, herbal notes with full body and low acidity",
		Features:    []string{"Earthy notes", "Herbal flavor", "Full body", "Low acidity"},
	},
	{
		ID:          "house-decaf-organic",
		Title:       "House Organic Decaf",
		Price:       price("18.99"),
		Category:    "decaf",
		Badge:       "Exclusive",
		Rating:      5.0,
		Reviews:     23,
		Description: "Organic decaffeinated blend with bright, clean taste",
		Features:    []string{"Organic decaf", "Bright taste", "Clean flavor", "Exclusive blend"},
	},
}
