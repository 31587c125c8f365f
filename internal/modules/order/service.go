package order

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/mkandawire/supplyhub-backend/internal/money"
)

// Service defines the order management business logic.
type Service interface {
	// CreateOrder accepts an order from the buyer-facing marketplace.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)

	// GetOrder retrieves a full order by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrders returns orders filtered by vendor, restaurant, and status.
	ListOrders(ctx context.Context, vendorID, restaurantID, status string) ([]*Order, error)

	// UpdateStatus advances an order through its lifecycle.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// VerifyTotals recomputes the order subtotal from its lines and flags
	// the order MISMATCH when the stored snapshot disagrees.
	VerifyTotals(ctx context.Context, id string) (*Order, error)

	// DeleteOrder removes an order. Explicit admin action only.
	DeleteOrder(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validTransitions defines the allowed status state machine. FULFILLED and
// REJECTED are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:                     {StatusPendingConfirmation, StatusRejected},
	StatusPendingConfirmation:     {StatusPendingCustomerApproval, StatusPendingFulfillment, StatusRejected},
	StatusPendingCustomerApproval: {StatusPendingFulfillment, StatusRejected},
	StatusPendingFulfillment:      {StatusDeliveryInRoute, StatusFulfilled, StatusRejected},
	StatusDeliveryInRoute:         {StatusFulfilled, StatusRejected},
	StatusFulfilled:               {},
	StatusRejected:                {},
}

// CanTransition returns true if an order may move from current to next.
func CanTransition(current, next OrderStatus) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("order must contain at least one line")
	}
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor_id: %w", err)
	}
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("invalid restaurant_id: %w", err)
	}

	for i := range req.Lines {
		if req.Lines[i].ItemName == "" {
			return nil, fmt.Errorf("line %d: item_name is required", i)
		}
		if req.Lines[i].UnitPrice() < 0 {
			return nil, fmt.Errorf("line %d: price must be >= 0", i)
		}
	}

	o := &Order{
		ID:                uuid.New(),
		VendorID:          vendorID,
		RestaurantID:      restaurantID,
		Status:            StatusPendingConfirmation,
		Integrity:         IntegrityOK,
		Lines:             req.Lines,
		SubtotalBeforeTax: req.SubtotalBeforeTax,
		TotalTax:          req.TotalTax,
		GrandTotal:        req.GrandTotal,
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, vendorID, restaurantID, status string) ([]*Order, error) {
	return s.repo.ListOrders(ctx, vendorID, restaurantID, strings.ToUpper(status))
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	next := OrderStatus(strings.ToUpper(req.Status))
	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func (s *service) VerifyTotals(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if !o.HasMonetarySnapshot() {
		return o, nil // nothing stored to verify against
	}

	recomputed := RecomputeSubtotal(o)
	integrity := IntegrityOK
	if math.Abs(recomputed-*o.SubtotalBeforeTax) >= 0.01 {
		integrity = IntegrityMismatch
	}

	if integrity != o.Integrity {
		if err := s.repo.FlagIntegrity(ctx, id, integrity); err != nil {
			return nil, err
		}
		o.Integrity = integrity
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.DeleteOrder(ctx, id)
}

// RecomputeSubtotal derives the order subtotal from its lines, preferring
// per-line snapshots and rounding at every line boundary.
func RecomputeSubtotal(o *Order) float64 {
	var sum float64
	for i := range o.Lines {
		l := &o.Lines[i]
		if l.LineSubtotal != nil {
			sum += *l.LineSubtotal
			continue
		}
		sum += money.Round2(l.UnitPrice() * l.EffectiveQty())
	}
	return money.Round2(sum)
}
