package catalog

import "context"

// Repository defines the interface for catalog item storage.
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItemByID(ctx context.Context, id string) (*Item, error)
	ListItemsByVendor(ctx context.Context, vendorID string, status string) ([]*Item, error)
	UpdateItem(ctx context.Context, item *Item) error

	// IsItemTaxable reports the current taxable flag for an item. Used by
	// invoice generation when a legacy order line carries no taxable flag.
	IsItemTaxable(ctx context.Context, itemID string) (bool, error)
}
