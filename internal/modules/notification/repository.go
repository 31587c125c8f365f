package notification

import "context"

// Repository defines notification storage. Writes are conditional on id
// absence, which makes deterministic-id notifications idempotent.
type Repository interface {
	// CreateIfAbsent inserts n unless its id already exists. Returns false
	// when the notification was already there.
	CreateIfAbsent(ctx context.Context, n *Notification) (bool, error)

	// ListByAudience returns notifications for an audience, newest first.
	// vendorID narrows VENDOR-audience listings; empty means all.
	ListByAudience(ctx context.Context, audience Audience, vendorID string) ([]*Notification, error)

	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, id string) error
}
