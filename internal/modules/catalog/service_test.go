package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items map[string]*Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*Item)}
}

func (r *fakeRepo) CreateItem(_ context.Context, item *Item) error {
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakeRepo) GetItemByID(_ context.Context, id string) (*Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item not found")
	}
	return item, nil
}

func (r *fakeRepo) ListItemsByVendor(_ context.Context, vendorID string, status string) ([]*Item, error) {
	var out []*Item
	for _, item := range r.items {
		if item.VendorID.String() != vendorID {
			continue
		}
		if status != "" && string(item.Status) != status {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeRepo) UpdateItem(_ context.Context, item *Item) error {
	if _, ok := r.items[item.ID.String()]; !ok {
		return fmt.Errorf("item not found")
	}
	r.items[item.ID.String()] = item
	return nil
}

func (r *fakeRepo) IsItemTaxable(_ context.Context, itemID string) (bool, error) {
	item, ok := r.items[itemID]
	if !ok {
		return false, fmt.Errorf("item not found")
	}
	return item.Taxable, nil
}

func payload(name string, price float64) ItemPayload {
	return ItemPayload{Name: name, Unit: "case", Price: price, Taxable: true}
}

func TestCreateItemAdminIsActiveImmediately(t *testing.T) {
	svc := NewService(newFakeRepo())

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID: uuid.New().String(),
		Item:     payload("Canned tomatoes", 18.5),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, item.Status)
	assert.Nil(t, item.ProposedData)
	assert.Nil(t, item.RequestedBy)
}

func TestCreateItemVendorEntersReview(t *testing.T) {
	svc := NewService(newFakeRepo())

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID:    uuid.New().String(),
		Item:        payload("Canned tomatoes", 18.5),
		RequestedBy: uuid.New().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusInReview, item.Status)
	assert.NotNil(t, item.ProposedData)
	assert.NotNil(t, item.RequestedBy)
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.CreateItem(context.Background(), CreateItemRequest{Item: payload("X", 1)})
	assert.ErrorContains(t, err, "vendor_id is required")

	_, err = svc.CreateItem(context.Background(), CreateItemRequest{VendorID: uuid.New().String()})
	assert.ErrorContains(t, err, "name is required")

	_, err = svc.CreateItem(context.Background(), CreateItemRequest{VendorID: uuid.New().String(), Item: payload("X", -1)})
	assert.ErrorContains(t, err, "price must be >= 0")
}

func TestApproveReviewAppliesProposedPayload(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID: uuid.New().String(),
		Item:     payload("Olive oil", 30),
	})
	require.NoError(t, err)

	_, err = svc.UpdateItem(context.Background(), item.ID.String(), UpdateItemRequest{
		Item:        payload("Olive oil 5L", 35),
		RequestedBy: uuid.New().String(),
	})
	require.NoError(t, err)

	approved, err := svc.ApproveReview(context.Background(), item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusActive, approved.Status)
	assert.Equal(t, "Olive oil 5L", approved.Name)
	assert.Equal(t, 35.0, approved.Price)
	assert.Nil(t, approved.ProposedData)
	assert.Nil(t, approved.OriginalData)
}

func TestRejectReviewRevertsApprovedItem(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID: uuid.New().String(),
		Item:     payload("Olive oil", 30),
	})
	require.NoError(t, err)

	_, err = svc.UpdateItem(context.Background(), item.ID.String(), UpdateItemRequest{
		Item:        payload("Olive oil 5L", 35),
		RequestedBy: uuid.New().String(),
	})
	require.NoError(t, err)

	rejected, err := svc.RejectReview(context.Background(), item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusActive, rejected.Status, "previously approved items revert, not reject")
	assert.Equal(t, "Olive oil", rejected.Name)
	assert.Equal(t, 30.0, rejected.Price)
}

func TestRejectReviewFirstSubmission(t *testing.T) {
	svc := NewService(newFakeRepo())

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID:    uuid.New().String(),
		Item:        payload("Mystery sauce", 12),
		RequestedBy: uuid.New().String(),
	})
	require.NoError(t, err)

	rejected, err := svc.RejectReview(context.Background(), item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
}

func TestReviewActionsRequireInReview(t *testing.T) {
	svc := NewService(newFakeRepo())

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID: uuid.New().String(),
		Item:     payload("Flour", 20),
	})
	require.NoError(t, err)

	_, err = svc.ApproveReview(context.Background(), item.ID.String())
	assert.ErrorContains(t, err, "not in review")

	_, err = svc.RejectReview(context.Background(), item.ID.String())
	assert.ErrorContains(t, err, "not in review")
}

func TestAdminUpdateAppliesDirectly(t *testing.T) {
	svc := NewService(newFakeRepo())

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID: uuid.New().String(),
		Item:     payload("Rice", 22),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(context.Background(), item.ID.String(), UpdateItemRequest{
		Item: payload("Jasmine rice", 24),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, updated.Status)
	assert.Equal(t, "Jasmine rice", updated.Name)
	assert.Nil(t, updated.ProposedData)
}

func TestIsItemTaxable(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		VendorID: uuid.New().String(),
		Item:     ItemPayload{Name: "Napkins", Unit: "pack", Price: 5, Taxable: false},
	})
	require.NoError(t, err)

	taxable, err := repo.IsItemTaxable(context.Background(), item.ID.String())
	require.NoError(t, err)
	assert.False(t, taxable)

	_, err = repo.IsItemTaxable(context.Background(), uuid.New().String())
	assert.Error(t, err)
}
