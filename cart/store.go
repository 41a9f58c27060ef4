// Package cart owns the line-item store: the ordered sequence of cart
// entries for one user, kept in memory and mirrored to the storage
// port on every mutation. Mutation and persist are atomic: a failed
// write rolls the in-memory change back.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"coffeehouse/catalog"
	"coffeehouse/models"
	"coffeehouse/storage"
)

// Catalog resolves product ids to canonical records. Satisfied by
// *catalog.Catalog.
type Catalog interface {
	Get(id string) (models.Product, bool)
}

// Store holds one user's cart. The mutex replaces the single UI
// thread of the original storefront: mutators never interleave.
type Store struct {
	mu      sync.Mutex
	key     string
	port    storage.Port
	catalog Catalog
	items   []models.LineItem
	log     zerolog.Logger
}

// NewStore returns an empty store persisting under key. Call Hydrate
// before first use to pick up a previously saved cart.
func NewStore(port storage.Port, cat Catalog, key string, log zerolog.Logger) *Store {
	return &Store{
		key:     key,
		port:    port,
		catalog: cat,
		log:     log.With().Str("cart", key).Logger(),
	}
}

// Hydrate loads the persisted mirror. A missing or unparseable mirror
// hydrates to an empty cart rather than failing.
func (s *Store) Hydrate(ctx context.Context) error {
	data, err := s.port.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	var items []models.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn().Err(err).Msg("cart mirror unparseable, starting empty")
		return nil
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Len returns the number of line items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// AddItem resolves productID against the catalog and either merges
// into an existing entry with the same product and options, or
// appends a new entry with a fresh cart item id. Quantities below one
// are treated as one.
func (s *Store) AddItem(ctx context.Context, productID string, qty int, options map[string]string) (models.LineItem, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return models.LineItem{}, catalog.ErrProductNotFound
	}
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := cloneItems(s.items)

	for i := range s.items {
		if s.items[i].ProductID == productID && models.OptionsEqual(s.items[i].Options, options) {
			s.items[i].Qty += qty
			if err := s.persistLocked(ctx, prev); err != nil {
				return models.LineItem{}, err
			}
			return s.items[i], nil
		}
	}

	item := models.LineItem{
		CartItemID:  uuid.NewString(),
		ProductID:   product.ID,
		Title:       product.Title,
		Image:       product.Image,
		Description: product.Description,
		Price:       product.Price,
		Qty:         qty,
		Options:     cloneOptions(options),
	}
	s.items = append(s.items, item)
	if err := s.persistLocked(ctx, prev); err != nil {
		return models.LineItem{}, err
	}
	return item, nil
}

// RemoveItem deletes the entry with the given cart item id. Removing
// an absent id is a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, cartItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, cartItemID)
}

// SetQuantity overwrites an entry's quantity. Zero or negative
// quantities remove the entry instead, keeping the qty >= 1
// invariant. Absent ids are a no-op.
func (s *Store) SetQuantity(ctx context.Context, cartItemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return s.removeLocked(ctx, cartItemID)
	}
	for i := range s.items {
		if s.items[i].CartItemID == cartItemID {
			prev := cloneItems(s.items)
			s.items[i].Qty = qty
			return s.persistLocked(ctx, prev)
		}
	}
	return nil
}

// PatchOptions shallow-merges partial into the entry's options.
// Absent ids are a no-op.
func (s *Store) PatchOptions(ctx context.Context, cartItemID string, partial map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].CartItemID == cartItemID {
			prev := cloneItems(s.items)
			if s.items[i].Options == nil {
				s.items[i].Options = make(map[string]string, len(partial))
			}
			for k, v := range partial {
				s.items[i].Options[k] = v
			}
			return s.persistLocked(ctx, prev)
		}
	}
	return nil
}

// Clear empties the cart and persists the empty sequence.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil
	}
	prev := s.items
	s.items = nil
	return s.persistLocked(ctx, prev)
}

func (s *Store) removeLocked(ctx context.Context, cartItemID string) error {
	for i := range s.items {
		if s.items[i].CartItemID == cartItemID {
			prev := cloneItems(s.items)
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persistLocked(ctx, prev)
		}
	}
	return nil
}

// persistLocked writes the current sequence to the mirror. On failure
// the sequence is restored to prev so memory never runs ahead of the
// mirror. Caller must hold s.mu.
func (s *Store) persistLocked(ctx context.Context, prev []models.LineItem) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.items = prev
		return err
	}
	if err := s.port.Save(ctx, s.key, data); err != nil {
		s.items = prev
		s.log.Error().Err(err).Msg("cart save failed, mutation rolled back")
		return err
	}
	return nil
}

func cloneItems(items []models.LineItem) []models.LineItem {
	if items == nil {
		return nil
	}
	out := make([]models.LineItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Options = cloneOptions(out[i].Options)
	}
	return out
}

func cloneOptions(options map[string]string) map[string]string {
	if options == nil {
		return nil
	}
	out := make(map[string]string, len(options))
	for k, v := range options {
		out[k] = v
	}
	return out
}
