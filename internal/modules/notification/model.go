package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType classifies what happened to an order.
type EventType string

const (
	EventNewOrder       EventType = "NEW_ORDER"
	EventStatusChanged  EventType = "STATUS_CHANGED"
	EventOrderCancelled EventType = "ORDER_CANCELLED"
	EventOrderUpdated   EventType = "ORDER_UPDATED"
)

// Audience scopes who a notification is for.
type Audience string

const (
	AudienceAdmin  Audience = "ADMIN"
	AudienceVendor Audience = "VENDOR"
)

// Notification signals an order event to one audience. Status-keyed events
// use deterministic ids so repeated observation of the same event is
// idempotent: at most one document per event per audience. ORDER_UPDATED
// events use a fresh id per occurrence, since updates legitimately repeat.
type Notification struct {
	ID        string     `json:"id"`
	OrderID   uuid.UUID  `json:"order_id"`
	Type      EventType  `json:"type"`
	Audience  Audience   `json:"audience"`
	VendorID  *uuid.UUID `json:"vendor_id,omitempty"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewOrderID builds the deterministic id for a NEW_ORDER event.
func NewOrderID(orderID string, audience Audience) string {
	return fmt.Sprintf("%s_NEW_ORDER_%s", orderID, audience)
}

// StatusChangedID builds the deterministic id for a status transition. The
// new status is part of the key, so each distinct transition notifies once
// while repeat deliveries of the same transition dedupe naturally.
func StatusChangedID(orderID, newStatus string, audience Audience) string {
	return fmt.Sprintf("%s_STATUS_CHANGED_%s_%s", orderID, newStatus, audience)
}

// CancelledID builds the deterministic id for an ORDER_CANCELLED event.
func CancelledID(orderID string, audience Audience) string {
	return fmt.Sprintf("%s_ORDER_CANCELLED_%s", orderID, audience)
}

// UpdatedID builds a fresh id for an ORDER_UPDATED event.
func UpdatedID(orderID string) string {
	return fmt.Sprintf("%s_ORDER_UPDATED_%s", orderID, uuid.New())
}
