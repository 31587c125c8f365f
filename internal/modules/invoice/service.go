package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mkandawire/supplyhub-backend/internal/modules/order"
	"github.com/mkandawire/supplyhub-backend/internal/modules/restaurant"
	"github.com/mkandawire/supplyhub-backend/internal/modules/vendor"
	"github.com/mkandawire/supplyhub-backend/internal/money"
)

// OrderStore is the slice of the order repository that synthesis needs.
type OrderStore interface {
	GetOrderByID(ctx context.Context, id string) (*order.Order, error)
	ListOrdersByStatus(ctx context.Context, status order.OrderStatus) ([]*order.Order, error)
}

// VendorStore resolves vendor records for commission and jurisdiction.
type VendorStore interface {
	GetVendorByID(ctx context.Context, id string) (*vendor.Vendor, error)
}

// RestaurantStore resolves buyer billing profiles. Best-effort: a failed
// lookup leaves the invoice's billing block blank.
type RestaurantStore interface {
	GetRestaurantByID(ctx context.Context, id string) (*restaurant.Restaurant, error)
}

// Service defines invoice synthesis and lifecycle business logic.
type Service interface {
	// GenerateForOrder synthesizes the vendor and restaurant invoices for a
	// fulfilled order. Idempotent: repeat calls return the stored invoices
	// with Created flags false.
	GenerateForOrder(ctx context.Context, orderID string) (*GenerationResult, error)

	// ScanAndGenerate diffs fulfilled orders against existing invoices and
	// synthesizes whatever is missing. Safe to re-run; a second pass
	// creates zero and reports it.
	ScanAndGenerate(ctx context.Context) (*ScanReport, error)

	GetInvoicesForOrder(ctx context.Context, orderID string) (*GenerationResult, error)
	ListVendorInvoices(ctx context.Context, vendorID string) ([]*VendorInvoice, error)
	ListRestaurantInvoices(ctx context.Context, restaurantID string) ([]*RestaurantInvoice, error)

	MarkVendorInvoicePaid(ctx context.Context, orderID string) (*VendorInvoice, error)
	MarkRestaurantInvoicePaid(ctx context.Context, orderID string) (*RestaurantInvoice, error)
}

type service struct {
	repo        Repository
	orders      OrderStore
	vendors     VendorStore
	restaurants RestaurantStore
	taxability  TaxabilityLookup
	now         func() time.Time
}

// NewService creates a new invoice service. restaurants and taxability may
// be nil; synthesis then skips billing-profile enrichment and the legacy
// catalog taxability path respectively.
func NewService(repo Repository, orders OrderStore, vendors VendorStore, restaurants RestaurantStore, taxability TaxabilityLookup) Service {
	return &service{
		repo:        repo,
		orders:      orders,
		vendors:     vendors,
		restaurants: restaurants,
		taxability:  taxability,
		now:         time.Now,
	}
}

func (s *service) GenerateForOrder(ctx context.Context, orderID string) (*GenerationResult, error) {
	o, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return s.synthesize(ctx, o)
}

// synthesize builds and conditionally persists both invoices for a fulfilled
// order. The two writes are independent; no ordering between them is
// guaranteed or relied upon.
func (s *service) synthesize(ctx context.Context, o *order.Order) (*GenerationResult, error) {
	if o.Status != order.StatusFulfilled {
		return nil, fmt.Errorf("order %s is not fulfilled (current: %s)", o.ID, o.Status)
	}

	// Vendor record resolves commission and jurisdiction; missing record
	// falls back to the default commission and a 0% rate.
	var v *vendor.Vendor
	if got, err := s.vendors.GetVendorByID(ctx, o.VendorID.String()); err == nil {
		v = got
	}
	commissionPct := v.EffectiveCommission()
	var rate float64
	if v != nil {
		rate = RateFor(v.Country, v.Province)
	}

	lines, subtotal, totalTax := NormalizeLines(ctx, o, rate, s.taxability)

	// A fulfilled order's snapshot is frozen ground truth; prefer it over
	// the recomputation when present.
	if o.HasMonetarySnapshot() {
		subtotal = *o.SubtotalBeforeTax
		if o.TotalTax != nil {
			totalTax = *o.TotalTax
		}
	}

	gross := money.Round2(subtotal)
	commission := money.Round2(gross * commissionPct / 100)
	netPayable := money.Round2(gross - commission)
	now := s.now()
	dueDate := now.AddDate(0, 0, 30)
	suffix := numberSuffix(o.ID.String())

	vi := &VendorInvoice{
		ID:                o.ID,
		OrderID:           o.ID,
		VendorID:          o.VendorID,
		InvoiceNumber:     fmt.Sprintf("INV-V-%d-%02d-%s", now.Year(), now.Month(), suffix),
		GrossAmount:       gross,
		CommissionPercent: commissionPct,
		CommissionAmount:  commission,
		NetPayable:        netPayable,
		TotalTax:          totalTax,
		TotalAmount:       money.Round2(gross + totalTax),
		TaxRatePercent:    rate,
		PaymentStatus:     PaymentPending,
		DueDate:           dueDate,
		Lines:             lines,
	}

	ri := &RestaurantInvoice{
		ID:            o.ID,
		OrderID:       o.ID,
		VendorID:      o.VendorID,
		RestaurantID:  o.RestaurantID,
		InvoiceNumber: fmt.Sprintf("INV-C-%d-%02d-%s", now.Year(), now.Month(), suffix),
		Subtotal:      gross,
		TotalTax:      totalTax,
		GrandTotal:    money.Round2(gross + totalTax),
		PaymentStatus: PaymentPending,
		DueDate:       dueDate,
		Lines:         lines,
	}
	if v != nil {
		ri.VendorName = v.Name
	}
	if s.restaurants != nil {
		if rest, err := s.restaurants.GetRestaurantByID(ctx, o.RestaurantID.String()); err == nil {
			ri.BillTo = BillingInfo{
				BusinessName: rest.BusinessName,
				LegalName:    rest.LegalName,
				TaxID:        rest.TaxID,
				ContactEmail: rest.ContactEmail,
			}
		}
	}

	result := &GenerationResult{}

	created, err := s.repo.CreateVendorInvoiceIfAbsent(ctx, vi)
	if err != nil {
		return nil, fmt.Errorf("vendor invoice write failed: %w", err)
	}
	result.VendorCreated = created

	created, err = s.repo.CreateRestaurantInvoiceIfAbsent(ctx, ri)
	if err != nil {
		return nil, fmt.Errorf("restaurant invoice write failed: %w", err)
	}
	result.RestaurantCreated = created

	// Converge pre-migration data: drop legacy random-id invoices for this
	// order now that the canonical rows exist. Failure is tolerated.
	_ = s.repo.DeleteLegacyInvoices(ctx, o.ID.String())

	result.VendorInvoice, err = s.repo.GetVendorInvoiceByOrder(ctx, o.ID.String())
	if err != nil {
		return nil, err
	}
	result.RestaurantInvoice, err = s.repo.GetRestaurantInvoiceByOrder(ctx, o.ID.String())
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ScanAndGenerate(ctx context.Context) (*ScanReport, error) {
	fulfilled, err := s.orders.ListOrdersByStatus(ctx, order.StatusFulfilled)
	if err != nil {
		return nil, fmt.Errorf("failed to list fulfilled orders: %w", err)
	}

	report := &ScanReport{OrdersScanned: len(fulfilled)}
	for _, o := range fulfilled {
		result, err := s.synthesize(ctx, o)
		if err != nil {
			report.Failures++
			continue
		}
		if result.VendorCreated {
			report.InvoicesCreated++
		} else {
			report.InvoicesSkipped++
		}
		if result.RestaurantCreated {
			report.InvoicesCreated++
		} else {
			report.InvoicesSkipped++
		}
	}
	return report, nil
}

func (s *service) GetInvoicesForOrder(ctx context.Context, orderID string) (*GenerationResult, error) {
	vi, err := s.repo.GetVendorInvoiceByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("vendor invoice not found: %w", err)
	}
	ri, err := s.repo.GetRestaurantInvoiceByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("restaurant invoice not found: %w", err)
	}
	return &GenerationResult{VendorInvoice: vi, RestaurantInvoice: ri}, nil
}

func (s *service) ListVendorInvoices(ctx context.Context, vendorID string) ([]*VendorInvoice, error) {
	return s.repo.ListVendorInvoices(ctx, vendorID)
}

func (s *service) ListRestaurantInvoices(ctx context.Context, restaurantID string) ([]*RestaurantInvoice, error) {
	return s.repo.ListRestaurantInvoices(ctx, restaurantID)
}

func (s *service) MarkVendorInvoicePaid(ctx context.Context, orderID string) (*VendorInvoice, error) {
	inv, err := s.repo.GetVendorInvoiceByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("vendor invoice not found: %w", err)
	}
	if inv.PaymentStatus == PaymentPaid {
		return nil, fmt.Errorf("vendor invoice is already paid")
	}
	if err := s.repo.MarkVendorInvoicePaid(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.GetVendorInvoiceByOrder(ctx, orderID)
}

func (s *service) MarkRestaurantInvoicePaid(ctx context.Context, orderID string) (*RestaurantInvoice, error) {
	inv, err := s.repo.GetRestaurantInvoiceByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("restaurant invoice not found: %w", err)
	}
	if inv.PaymentStatus == PaymentPaid {
		return nil, fmt.Errorf("restaurant invoice is already paid")
	}
	if err := s.repo.MarkRestaurantInvoicePaid(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.GetRestaurantInvoiceByOrder(ctx, orderID)
}

// numberSuffix derives the shared invoice-number suffix from the order id,
// so the vendor and restaurant numbers for one order correlate visually and
// regeneration attempts produce the same number.
func numberSuffix(orderID string) string {
	s := strings.ToUpper(strings.ReplaceAll(orderID, "-", ""))
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
