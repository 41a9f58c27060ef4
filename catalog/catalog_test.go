package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeehouse/models"
)

func fixture() *Catalog {
	return New([]models.Product{
		{ID: "ethiopian", Title: "Ethiopian Single Origin", Price: decimal.RequireFromString("24.99"), Category: "single-origin", Rating: 4.8, Description: "Bright, fruity notes"},
		{ID: "colombian", Title: "Colombian Medium Blend", Price: decimal.RequireFromString("18.99"), Category: "blends", Rating: 4.6, Description: "Nutty and chocolate notes"},
		{ID: "espresso", Title: "Italian Espresso Roast", Price: decimal.RequireFromString("22.99"), Category: "espresso", Rating: 4.7, Description: "Dark Italian roast"},
	})
}

func TestGet(t *testing.T) {
	c := fixture()

	p, ok := c.Get("colombian")
	require.True(t, ok)
	assert.Equal(t, "Colombian Medium Blend", p.Title)

	_, ok = c.Get("unknown-id")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	c := fixture()

	assert.Len(t, c.Filter("all"), 3)
	assert.Len(t, c.Filter(""), 3)

	blends := c.Filter("blends")
	require.Len(t, blends, 1)
	assert.Equal(t, "colombian", blends[0].ID)

	assert.Empty(t, c.Filter("decaf"))
}

func TestSearchCaseInsensitive(t *testing.T) {
	c := fixture()

	byTitle := c.Search("ESPRESSO")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "espresso", byTitle[0].ID)

	byDescription := c.Search("fruity")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "ethiopian", byDescription[0].ID)

	assert.Len(t, c.Search("  "), 3, "blank query matches everything")
	assert.Empty(t, c.Search("tea"))
}

func TestSortBy(t *testing.T) {
	c := fixture()

	products := c.List()
	SortBy(products, SortPriceLow)
	assert.Equal(t, "colombian", products[0].ID)
	assert.Equal(t, "ethiopian", products[2].ID)

	SortBy(products, SortPriceHigh)
	assert.Equal(t, "ethiopian", products[0].ID)

	SortBy(products, SortName)
	assert.Equal(t, "colombian", products[0].ID)

	SortBy(products, SortRating)
	assert.Equal(t, "ethiopian", products[0].ID)

	ordered := c.List()
	SortBy(ordered, SortFeatured)
	assert.Equal(t, c.List(), ordered, "featured keeps catalog order")
}

func TestDefaultCatalogSeeded(t *testing.T) {
	c := Default()
	assert.Len(t, c.List(), 10)

	p, ok := c.Get("ethiopian-single-origin")
	require.True(t, ok)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("24.99")))
}
