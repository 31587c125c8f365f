package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic, including the item review workflow.
type Service interface {
	// CreateItem adds an item. Admin submissions (no requested_by) become
	// ACTIVE immediately; vendor submissions enter IN_REVIEW.
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)

	GetItem(ctx context.Context, id string) (*Item, error)
	ListVendorItems(ctx context.Context, vendorID string, status string) ([]*Item, error)

	// UpdateItem edits an item. Admin edits apply directly; vendor edits
	// store a proposed payload and move the item to IN_REVIEW.
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error)

	// ApproveReview applies an item's proposed payload and reactivates it.
	ApproveReview(ctx context.Context, id string) (*Item, error)

	// RejectReview discards the proposed payload. Items that were never
	// approved become REJECTED; previously approved items revert to ACTIVE
	// with their original data.
	RejectReview(ctx context.Context, id string) (*Item, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if req.VendorID == "" {
		return nil, fmt.Errorf("vendor_id is required")
	}
	if req.Item.Name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if req.Item.Price < 0 {
		return nil, fmt.Errorf("price must be >= 0")
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor_id: %w", err)
	}

	item := &Item{
		ID:       uuid.New(),
		VendorID: vendorID,
		Status:   StatusActive,
	}
	applyPayload(item, req.Item)

	if req.RequestedBy != "" {
		requester, err := uuid.Parse(req.RequestedBy)
		if err != nil {
			return nil, fmt.Errorf("invalid requested_by: %w", err)
		}
		proposed, err := json.Marshal(req.Item)
		if err != nil {
			return nil, err
		}
		item.Status = StatusInReview
		item.ProposedData = proposed
		item.RequestedBy = &requester
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to persist item: %w", err)
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetItemByID(ctx, id)
}

func (s *service) ListVendorItems(ctx context.Context, vendorID string, status string) ([]*Item, error) {
	return s.repo.ListItemsByVendor(ctx, vendorID, status)
}

func (s *service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("item not found: %w", err)
	}

	if req.RequestedBy == "" {
		// Admin edit: apply directly, clear any pending review.
		applyPayload(item, req.Item)
		item.Status = StatusActive
		item.ProposedData = nil
		item.OriginalData = nil
		item.RequestedBy = nil
	} else {
		requester, err := uuid.Parse(req.RequestedBy)
		if err != nil {
			return nil, fmt.Errorf("invalid requested_by: %w", err)
		}
		proposed, err := json.Marshal(req.Item)
		if err != nil {
			return nil, err
		}
		original, err := json.Marshal(currentPayload(item))
		if err != nil {
			return nil, err
		}
		item.Status = StatusInReview
		item.ProposedData = proposed
		item.OriginalData = original
		item.RequestedBy = &requester
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) ApproveReview(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("item not found: %w", err)
	}
	if item.Status != StatusInReview {
		return nil, fmt.Errorf("item is not in review (current: %s)", item.Status)
	}

	var payload ItemPayload
	if err := json.Unmarshal(item.ProposedData, &payload); err != nil {
		return nil, fmt.Errorf("corrupt proposed data: %w", err)
	}
	applyPayload(item, payload)
	item.Status = StatusActive
	item.ProposedData = nil
	item.OriginalData = nil
	item.RequestedBy = nil

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) RejectReview(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("item not found: %w", err)
	}
	if item.Status != StatusInReview {
		return nil, fmt.Errorf("item is not in review (current: %s)", item.Status)
	}

	if item.OriginalData != nil {
		// Edit rejected: revert to the approved payload.
		var payload ItemPayload
		if err := json.Unmarshal(item.OriginalData, &payload); err != nil {
			return nil, fmt.Errorf("corrupt original data: %w", err)
		}
		applyPayload(item, payload)
		item.Status = StatusActive
	} else {
		// First submission rejected outright.
		item.Status = StatusRejected
	}
	item.ProposedData = nil
	item.OriginalData = nil
	item.RequestedBy = nil

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func applyPayload(item *Item, p ItemPayload) {
	item.Name = p.Name
	item.Brand = p.Brand
	item.Category = p.Category
	item.Unit = p.Unit
	item.PackQty = p.PackQty
	item.Price = p.Price
	item.Taxable = p.Taxable
	item.SKU = p.SKU
}

func currentPayload(item *Item) ItemPayload {
	return ItemPayload{
		Name:     item.Name,
		Brand:    item.Brand,
		Category: item.Category,
		Unit:     item.Unit,
		PackQty:  item.PackQty,
		Price:    item.Price,
		Taxable:  item.Taxable,
		SKU:      item.SKU,
	}
}
