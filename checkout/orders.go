package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"coffeehouse/models"
	"coffeehouse/storage"
)

// ErrOrderNotFound is returned when an order id does not resolve.
var ErrOrderNotFound = errors.New("checkout: order not found")

// Orders is the append-only order list persisted under the orders
// key. The mutex serializes appends so concurrent checkouts cannot
// lose each other's writes within this process.
type Orders struct {
	mu   sync.Mutex
	port storage.Port
}

// NewOrders returns an order repository over the given port.
func NewOrders(port storage.Port) *Orders {
	return &Orders{port: port}
}

// Append records one order.
func (o *Orders) Append(ctx context.Context, order models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	orders, err := o.loadLocked(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return o.port.Save(ctx, storage.OrdersKey, data)
}

// List returns the orders placed under the given customer email, in
// placement order.
func (o *Orders) List(ctx context.Context, email string) ([]models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	orders, err := o.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Order
	for _, order := range orders {
		if strings.EqualFold(order.Customer.Email, email) {
			out = append(out, order)
		}
	}
	return out, nil
}

// Get resolves an order by id, for the confirmation view.
func (o *Orders) Get(ctx context.Context, id string) (models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	orders, err := o.loadLocked(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, order := range orders {
		if order.ID == id {
			return order, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (o *Orders) loadLocked(ctx context.Context) ([]models.Order, error) {
	data, err := o.port.Load(ctx, storage.OrdersKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
