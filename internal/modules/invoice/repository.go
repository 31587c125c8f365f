package invoice

import "context"

// Repository defines data access for invoices. Creation is conditional on
// absence: both invoice tables key on the order-derived id, and the insert
// is a single atomic create-if-absent, so concurrent generators cannot
// produce duplicates.
type Repository interface {
	// CreateVendorInvoiceIfAbsent inserts inv unless a vendor invoice
	// already exists for its order. Returns false when it already existed.
	CreateVendorInvoiceIfAbsent(ctx context.Context, inv *VendorInvoice) (bool, error)

	// CreateRestaurantInvoiceIfAbsent mirrors the vendor-side contract.
	CreateRestaurantInvoiceIfAbsent(ctx context.Context, inv *RestaurantInvoice) (bool, error)

	GetVendorInvoiceByOrder(ctx context.Context, orderID string) (*VendorInvoice, error)
	GetRestaurantInvoiceByOrder(ctx context.Context, orderID string) (*RestaurantInvoice, error)

	ListVendorInvoices(ctx context.Context, vendorID string) ([]*VendorInvoice, error)
	ListRestaurantInvoices(ctx context.Context, restaurantID string) ([]*RestaurantInvoice, error)

	// MarkVendorInvoicePaid flips payment status to PAID. One-way.
	MarkVendorInvoicePaid(ctx context.Context, orderID string) error
	MarkRestaurantInvoicePaid(ctx context.Context, orderID string) error

	// DeleteLegacyInvoices removes pre-migration invoices stored under
	// random ids that reference the same order, converging old data onto
	// the one-invoice-per-order invariant. Best-effort.
	DeleteLegacyInvoices(ctx context.Context, orderID string) error
}
