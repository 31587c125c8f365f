package notification

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu    sync.Mutex
	byID  map[string]*Notification
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Notification)}
}

func (r *fakeRepo) CreateIfAbsent(_ context.Context, n *Notification) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[n.ID]; ok {
		return false, nil
	}
	cp := *n
	r.byID[n.ID] = &cp
	r.order = append(r.order, n.ID)
	return true, nil
}

func (r *fakeRepo) ListByAudience(_ context.Context, audience Audience, vendorID string) ([]*Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Notification
	for _, id := range r.order {
		n := r.byID[id]
		if n.Audience != audience {
			continue
		}
		if vendorID != "" && (n.VendorID == nil || n.VendorID.String() != vendorID) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return nil
	}
	n.Read = true
	return nil
}

type fakePublisher struct {
	published []string
}

func (p *fakePublisher) Publish(_ context.Context, n *Notification) error {
	p.published = append(p.published, n.ID)
	return nil
}

func TestEmitValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	orderID := uuid.New()
	vendorID := uuid.New()

	_, err := svc.Emit(context.Background(), &Notification{OrderID: orderID, Type: EventNewOrder, Audience: AudienceAdmin})
	assert.ErrorContains(t, err, "id is required")

	_, err = svc.Emit(context.Background(), &Notification{ID: "x", Type: EventNewOrder, Audience: AudienceAdmin})
	assert.ErrorContains(t, err, "order_id is required")

	_, err = svc.Emit(context.Background(), &Notification{
		ID: NewOrderID(orderID.String(), AudienceVendor), OrderID: orderID, Type: EventNewOrder, Audience: AudienceVendor,
	})
	assert.ErrorContains(t, err, "vendor_id is required")

	created, err := svc.Emit(context.Background(), &Notification{
		ID: NewOrderID(orderID.String(), AudienceVendor), OrderID: orderID, Type: EventNewOrder,
		Audience: AudienceVendor, VendorID: &vendorID,
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestEmitDedupesAndPublishesOnce(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	svc := NewService(repo, pub)

	orderID := uuid.New()
	n := &Notification{
		ID:       StatusChangedID(orderID.String(), "FULFILLED", AudienceAdmin),
		OrderID:  orderID,
		Type:     EventStatusChanged,
		Audience: AudienceAdmin,
		Message:  "Order moved from DELIVERY_IN_ROUTE to FULFILLED",
	}

	created, err := svc.Emit(context.Background(), n)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Emit(context.Background(), n)
	require.NoError(t, err)
	assert.False(t, created, "duplicate observation of the same event")

	assert.Len(t, repo.byID, 1)
	assert.Len(t, pub.published, 1, "duplicates are not re-published")
}

func TestListFiltersVendorAudience(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	orderID := uuid.New()
	vendorA := uuid.New()
	vendorB := uuid.New()

	for _, n := range []*Notification{
		{ID: NewOrderID(orderID.String(), AudienceAdmin), OrderID: orderID, Type: EventNewOrder, Audience: AudienceAdmin},
		{ID: NewOrderID(orderID.String(), AudienceVendor), OrderID: orderID, Type: EventNewOrder, Audience: AudienceVendor, VendorID: &vendorA},
		{ID: CancelledID(orderID.String(), AudienceVendor), OrderID: orderID, Type: EventOrderCancelled, Audience: AudienceVendor, VendorID: &vendorB},
	} {
		_, err := svc.Emit(context.Background(), n)
		require.NoError(t, err)
	}

	admin, err := svc.List(context.Background(), AudienceAdmin, "")
	require.NoError(t, err)
	assert.Len(t, admin, 1)

	forA, err := svc.List(context.Background(), AudienceVendor, vendorA.String())
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, EventNewOrder, forA[0].Type)
}

func TestDeterministicIDs(t *testing.T) {
	assert.Equal(t, "o1_NEW_ORDER_ADMIN", NewOrderID("o1", AudienceAdmin))
	assert.Equal(t, "o1_STATUS_CHANGED_FULFILLED_VENDOR", StatusChangedID("o1", "FULFILLED", AudienceVendor))
	assert.Equal(t, "o1_ORDER_CANCELLED_ADMIN", CancelledID("o1", AudienceAdmin))

	assert.NotEqual(t, UpdatedID("o1"), UpdatedID("o1"), "update ids are unique per occurrence")
}
