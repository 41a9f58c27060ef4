package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"coffeehouse/storage"
)

// Manager hands out per-user stores, hydrating each from the port the
// first time it is requested and caching it for the rest of the
// process lifetime.
type Manager struct {
	mu      sync.Mutex
	port    storage.Port
	catalog Catalog
	stores  map[string]*Store
	log     zerolog.Logger
}

// NewManager returns a manager creating stores over the given port
// and catalog.
func NewManager(port storage.Port, cat Catalog, log zerolog.Logger) *Manager {
	return &Manager{
		port:    port,
		catalog: cat,
		stores:  make(map[string]*Store),
		log:     log,
	}
}

// For returns the store for userID, creating and hydrating it on
// first use.
func (m *Manager) For(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	if store, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return store, nil
	}
	store := NewStore(m.port, m.catalog, storage.CartKey(userID), m.log)
	m.stores[userID] = store
	m.mu.Unlock()

	if err := store.Hydrate(ctx); err != nil {
		m.mu.Lock()
		delete(m.stores, userID)
		m.mu.Unlock()
		return nil, err
	}
	return store, nil
}
