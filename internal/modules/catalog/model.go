package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ItemStatus represents the review state of a catalog item. Vendor-submitted
// changes sit IN_REVIEW until a super-admin approves or rejects them.
type ItemStatus string

const (
	StatusActive   ItemStatus = "ACTIVE"
	StatusInReview ItemStatus = "IN_REVIEW"
	StatusRejected ItemStatus = "REJECTED"
)

// Item is a vendor's sellable product. While IN_REVIEW, ProposedData holds
// the vendor's requested payload and OriginalData the last approved one.
type Item struct {
	ID           uuid.UUID       `json:"id"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand,omitempty"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	PackQty      float64         `json:"pack_qty,omitempty"`
	Price        float64         `json:"price"`
	Taxable      bool            `json:"taxable"`
	SKU          string          `json:"sku,omitempty"`
	Status       ItemStatus      `json:"status"`
	ProposedData json.RawMessage `json:"proposed_data,omitempty"`
	OriginalData json.RawMessage `json:"original_data,omitempty"`
	RequestedBy  *uuid.UUID      `json:"requested_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ItemPayload is the editable portion of an item, used both for direct admin
// writes and as the proposed/original snapshots in the review workflow.
type ItemPayload struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category,omitempty"`
	Unit     string  `json:"unit"`
	PackQty  float64 `json:"pack_qty,omitempty"`
	Price    float64 `json:"price"`
	Taxable  bool    `json:"taxable"`
	SKU      string  `json:"sku,omitempty"`
}

// CreateItemRequest is the payload for adding a catalog item.
type CreateItemRequest struct {
	VendorID    string      `json:"vendor_id"`
	Item        ItemPayload `json:"item"`
	RequestedBy string      `json:"requested_by,omitempty"` // set for vendor submissions → IN_REVIEW
}

// UpdateItemRequest is the payload for editing an item. Admin edits apply
// directly; vendor edits go through review.
type UpdateItemRequest struct {
	Item        ItemPayload `json:"item"`
	RequestedBy string      `json:"requested_by,omitempty"`
}
