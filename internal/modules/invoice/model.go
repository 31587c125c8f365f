package invoice

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the payment state of an invoice. The transition
// is one-way: PENDING → PAID.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Line is a canonical, fully-taxed invoice line produced by the normalizer.
type Line struct {
	ItemID       string  `json:"item_id,omitempty"`
	ItemName     string  `json:"item_name"`
	Unit         string  `json:"unit,omitempty"`
	Quantity     float64 `json:"quantity"`
	Price        float64 `json:"price"`
	LineSubtotal float64 `json:"line_subtotal"`
	Taxable      bool    `json:"taxable"`
	LineTax      float64 `json:"line_tax"`
}

// VendorInvoice is the payout owed to a vendor for one fulfilled order. Its
// id equals the order id, which structurally prevents duplicates: generating
// twice collides on the primary key and the second write is a no-op.
type VendorInvoice struct {
	ID                uuid.UUID     `json:"id"`
	OrderID           uuid.UUID     `json:"order_id"`
	VendorID          uuid.UUID     `json:"vendor_id"`
	InvoiceNumber     string        `json:"invoice_number"`
	GrossAmount       float64       `json:"gross_amount"`
	CommissionPercent float64       `json:"commission_percent"`
	CommissionAmount  float64       `json:"commission_amount"`
	NetPayable        float64       `json:"net_payable"`
	TotalTax          float64       `json:"total_tax"`
	TotalAmount       float64       `json:"total_amount"` // gross + tax; pre-commission invoices read this
	TaxRatePercent    float64       `json:"tax_rate_percent"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
	DueDate           time.Time     `json:"due_date"`
	Lines             []Line        `json:"lines"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// RestaurantInvoice is the bill presented to the buyer for the same order,
// at full (non-commission-deducted) price. Same deterministic-id invariant
// as VendorInvoice.
type RestaurantInvoice struct {
	ID            uuid.UUID     `json:"id"`
	OrderID       uuid.UUID     `json:"order_id"`
	VendorID      uuid.UUID     `json:"vendor_id"`
	VendorName    string        `json:"vendor_name,omitempty"`
	RestaurantID  uuid.UUID     `json:"restaurant_id"`
	InvoiceNumber string        `json:"invoice_number"`
	Subtotal      float64       `json:"subtotal"`
	TotalTax      float64       `json:"total_tax"`
	GrandTotal    float64       `json:"grand_total"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	DueDate       time.Time     `json:"due_date"`
	BillTo        BillingInfo   `json:"bill_to"`
	Lines         []Line        `json:"lines"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BillingInfo is the buyer's billing profile as rendered on the invoice.
// Populated best-effort; lookup failure leaves it blank.
type BillingInfo struct {
	BusinessName string `json:"business_name,omitempty"`
	LegalName    string `json:"legal_name,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// GenerationResult reports what a synthesis run produced. Created flags are
// false when an invoice already existed for the order.
type GenerationResult struct {
	VendorInvoice     *VendorInvoice     `json:"vendor_invoice"`
	RestaurantInvoice *RestaurantInvoice `json:"restaurant_invoice"`
	VendorCreated     bool               `json:"vendor_created"`
	RestaurantCreated bool               `json:"restaurant_created"`
}

// ScanReport summarizes a reconciliation scan over fulfilled orders.
type ScanReport struct {
	OrdersScanned   int `json:"orders_scanned"`
	InvoicesCreated int `json:"invoices_created"`
	InvoicesSkipped int `json:"invoices_skipped"`
	Failures        int `json:"failures"`
}
