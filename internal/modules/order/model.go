package order

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of a marketplace order.
type OrderStatus string

const (
	StatusNew                     OrderStatus = "NEW"
	StatusPendingConfirmation     OrderStatus = "PENDING_CONFIRMATION"
	StatusPendingCustomerApproval OrderStatus = "PENDING_CUSTOMER_APPROVAL"
	StatusPendingFulfillment      OrderStatus = "PENDING_FULFILLMENT"
	StatusDeliveryInRoute         OrderStatus = "DELIVERY_IN_ROUTE"
	StatusFulfilled               OrderStatus = "FULFILLED"
	StatusRejected                OrderStatus = "REJECTED"
)

// IsPending reports whether the status is a pre-fulfillment working state.
func (s OrderStatus) IsPending() bool {
	switch s {
	case StatusNew, StatusPendingConfirmation, StatusPendingCustomerApproval,
		StatusPendingFulfillment, StatusDeliveryInRoute:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFulfilled || s == StatusRejected
}

// IntegrityStatus flags orders whose stored totals disagree with their lines.
// MISMATCH orders are surfaced for manual review, never auto-corrected.
type IntegrityStatus string

const (
	IntegrityOK       IntegrityStatus = "OK"
	IntegrityMismatch IntegrityStatus = "MISMATCH"
)

// OrderLine is one raw line of an order. Legacy lines carry only a name,
// price, and quantity; modern lines also snapshot the vendor price, taxable
// flag, and precomputed subtotal/tax at order time. Pointer fields are nil
// when the writing system predates them.
type OrderLine struct {
	ItemID       string   `json:"item_id,omitempty"`
	ItemName     string   `json:"item_name"`
	Unit         string   `json:"unit,omitempty"`
	Quantity     float64  `json:"quantity,omitempty"`
	Price        float64  `json:"price,omitempty"`
	VendorPrice  *float64 `json:"vendor_price,omitempty"`
	Taxable      *bool    `json:"taxable,omitempty"`
	LineSubtotal *float64 `json:"line_subtotal,omitempty"`
	LineTax      *float64 `json:"line_tax,omitempty"`
}

// UnitPrice resolves the price to charge for one unit: the vendor price when
// snapshotted, else the generic price, else 0.
func (l *OrderLine) UnitPrice() float64 {
	if l.VendorPrice != nil {
		return *l.VendorPrice
	}
	return l.Price
}

// EffectiveQty resolves the ordered quantity, defaulting to 1 when absent.
func (l *OrderLine) EffectiveQty() float64 {
	if l.Quantity <= 0 {
		return 1
	}
	return l.Quantity
}

// Order represents a buyer's purchase from one vendor. The monetary snapshot
// fields are nil on legacy records; once the order is FULFILLED a present
// snapshot is frozen ground truth for invoicing.
type Order struct {
	ID                uuid.UUID       `json:"id"`
	VendorID          uuid.UUID       `json:"vendor_id"`
	RestaurantID      uuid.UUID       `json:"restaurant_id"`
	Status            OrderStatus     `json:"status"`
	Integrity         IntegrityStatus `json:"integrity"`
	Lines             []OrderLine     `json:"lines"`
	SubtotalBeforeTax *float64        `json:"subtotal_before_tax,omitempty"`
	TotalTax          *float64        `json:"total_tax,omitempty"`
	GrandTotal        *float64        `json:"grand_total,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// HasMonetarySnapshot is the snapshot-detection predicate: an order carries a
// frozen monetary snapshot iff its subtotal-before-tax was written. Callers
// choose between the snapshot and legacy recomputation paths through this,
// never by inspecting fields directly.
func (o *Order) HasMonetarySnapshot() bool {
	return o.SubtotalBeforeTax != nil
}

// ItemCount sums the ordered quantities across all lines.
func (o *Order) ItemCount() float64 {
	var n float64
	for i := range o.Lines {
		n += o.Lines[i].EffectiveQty()
	}
	return n
}

// CreateOrderRequest is the payload the buyer-facing marketplace posts.
// Snapshot totals are optional; their absence marks a legacy-shaped order.
type CreateOrderRequest struct {
	VendorID          string      `json:"vendor_id"`
	RestaurantID      string      `json:"restaurant_id"`
	Lines             []OrderLine `json:"lines"`
	SubtotalBeforeTax *float64    `json:"subtotal_before_tax,omitempty"`
	TotalTax          *float64    `json:"total_tax,omitempty"`
	GrandTotal        *float64    `json:"grand_total,omitempty"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
