// Package wishlist keeps a per-user set of saved product ids.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"coffeehouse/catalog"
	"coffeehouse/models"
	"coffeehouse/storage"
)

// Catalog validates product ids before they enter a wishlist.
type Catalog interface {
	Get(id string) (models.Product, bool)
}

// Service persists each user's wishlist as an id list under its own
// key.
type Service struct {
	mu      sync.Mutex
	port    storage.Port
	catalog Catalog
}

// NewService returns a wishlist service over the given port.
func NewService(port storage.Port, cat Catalog) *Service {
	return &Service{port: port, catalog: cat}
}

// Toggle adds the product to the user's wishlist if absent and
// removes it if present. It reports whether the product ended up on
// the list.
func (s *Service) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if _, ok := s.catalog.Get(productID); !ok {
		return false, catalog.ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := storage.WishlistKey(userID)
	ids, err := s.loadLocked(ctx, key)
	if err != nil {
		return false, err
	}

	added := true
	for i, id := range ids {
		if id == productID {
			ids = append(ids[:i], ids[i+1:]...)
			added = false
			break
		}
	}
	if added {
		ids = append(ids, productID)
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return false, err
	}
	if err := s.port.Save(ctx, key, data); err != nil {
		return false, err
	}
	return added, nil
}

// List returns the user's saved product ids in insertion order.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, storage.WishlistKey(userID))
}

func (s *Service) loadLocked(ctx context.Context, key string) ([]string, error) {
	data, err := s.port.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
