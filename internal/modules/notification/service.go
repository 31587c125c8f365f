package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Publisher pushes a notification to an external broker after it is stored.
// Implementations must tolerate being called at-least-once.
type Publisher interface {
	Publish(ctx context.Context, n *Notification) error
}

// Service defines notification business logic.
type Service interface {
	// Emit stores a notification if its id is new, then publishes it.
	// Returns false when the notification already existed (duplicate
	// observation of the same event); duplicates are not re-published.
	Emit(ctx context.Context, n *Notification) (bool, error)

	List(ctx context.Context, audience Audience, vendorID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	publisher Publisher // nil when no broker is configured
}

// NewService creates a new notification service. publisher may be nil.
func NewService(repo Repository, publisher Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func (s *service) Emit(ctx context.Context, n *Notification) (bool, error) {
	if n.ID == "" {
		return false, fmt.Errorf("notification id is required")
	}
	if n.OrderID == uuid.Nil {
		return false, fmt.Errorf("order_id is required")
	}
	if n.Audience == AudienceVendor && n.VendorID == nil {
		return false, fmt.Errorf("vendor_id is required for vendor notifications")
	}

	created, err := s.repo.CreateIfAbsent(ctx, n)
	if err != nil {
		return false, err
	}
	if created && s.publisher != nil {
		// Broker delivery is best-effort; the stored row is the record.
		_ = s.publisher.Publish(ctx, n)
	}
	return created, nil
}

func (s *service) List(ctx context.Context, audience Audience, vendorID string) ([]*Notification, error) {
	return s.repo.ListByAudience(ctx, audience, vendorID)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}
