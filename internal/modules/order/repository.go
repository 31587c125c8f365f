package order

import (
	"context"
	"time"
)

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder persists a new order with its lines.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order by UUID.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrders returns orders filtered by any combination of vendor,
	// restaurant, and status (empty string = no filter).
	ListOrders(ctx context.Context, vendorID, restaurantID, status string) ([]*Order, error)

	// ListOrdersByStatus returns all orders in a given status.
	ListOrdersByStatus(ctx context.Context, status OrderStatus) ([]*Order, error)

	// ListChangedSince returns orders touched after t, oldest first. Feeds
	// the polling change watcher.
	ListChangedSince(ctx context.Context, t time.Time) ([]*Order, error)

	// UpdateStatus advances an order to a new status.
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error

	// UpdateLines replaces an order's lines and snapshot totals.
	UpdateLines(ctx context.Context, o *Order) error

	// FlagIntegrity records the result of a totals verification.
	FlagIntegrity(ctx context.Context, id string, integrity IntegrityStatus) error

	// DeleteOrder hard-deletes an order. Explicit admin action only.
	DeleteOrder(ctx context.Context, id string) error
}
