package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"coffeehouse/catalog"
	"coffeehouse/models"
)

// ProductController serves the read-only product catalog.
type ProductController struct {
	Catalog *catalog.Catalog
}

// NewProductController creates a new ProductController
func NewProductController(cat *catalog.Catalog) *ProductController {
	return &ProductController{Catalog: cat}
}

// GetProducts lists products, honoring ?category=, ?search= and
// ?sort= query parameters.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	products := pc.Catalog.Filter(query.Get("category"))
	if search := query.Get("search"); search != "" {
		matched := pc.Catalog.Search(search)
		keep := make(map[string]bool, len(matched))
		for _, p := range matched {
			keep[p.ID] = true
		}
		filtered := products[:0]
		for _, p := range products {
			if keep[p.ID] {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	catalog.SortBy(products, query.Get("sort"))
	if products == nil {
		products = []models.Product{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	product, ok := pc.Catalog.Get(params["id"])
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}
