// Package storage is the persistence boundary: a keyed blob store
// holding JSON-serialized state. The key layout mirrors the
// storefront's original storage keys (cart, users, orders, wishlist),
// with per-user state under suffixed keys.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Port is the injected persistence interface. Implementations must be
// safe for concurrent use.
type Port interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// ErrNotFound is returned by Load when no value exists for the key.
// Callers treat it as "empty", not as a hard failure.
var ErrNotFound = errors.New("storage: key not found")

// PersistenceError reports a failed write. Mutators that see one roll
// back their in-memory change so memory and mirror never diverge.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: persisting %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Well-known keys for shared state.
const (
	UsersKey      = "users"
	OrdersKey     = "orders"
	ContactKey    = "contact_messages"
	NewsletterKey = "newsletter"
)

// CartKey returns the storage key for one user's cart.
func CartKey(userID string) string { return "cart:" + userID }

// WishlistKey returns the storage key for one user's wishlist.
func WishlistKey(userID string) string { return "wishlist:" + userID }
