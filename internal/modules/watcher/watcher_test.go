package watcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkandawire/supplyhub-backend/internal/modules/invoice"
	"github.com/mkandawire/supplyhub-backend/internal/modules/notification"
	"github.com/mkandawire/supplyhub-backend/internal/modules/order"
	"github.com/mkandawire/supplyhub-backend/internal/platform/logger"
)

type fakeNotifier struct {
	mu   sync.Mutex
	seen map[string]*notification.Notification
	log  []*notification.Notification
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{seen: make(map[string]*notification.Notification)}
}

func (f *fakeNotifier) Emit(_ context.Context, n *notification.Notification) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[n.ID]; ok {
		return false, nil
	}
	f.seen[n.ID] = n
	f.log = append(f.log, n)
	return true, nil
}

func (f *fakeNotifier) stored() []*notification.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*notification.Notification(nil), f.log...)
}

func (f *fakeNotifier) byType(t notification.EventType) []*notification.Notification {
	var out []*notification.Notification
	for _, n := range f.stored() {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

type fakeSynth struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeSynth) GenerateForOrder(_ context.Context, orderID string) (*invoice.GenerationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, orderID)
	return &invoice.GenerationResult{}, nil
}

func (f *fakeSynth) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type chanFeed struct{ ch chan *order.Order }

func (f *chanFeed) Subscribe(context.Context) (<-chan *order.Order, error) {
	return f.ch, nil
}

func testOrder(status order.OrderStatus) *order.Order {
	return &order.Order{
		ID:           uuid.New(),
		VendorID:     uuid.New(),
		RestaurantID: uuid.New(),
		Status:       status,
		Lines:        []order.OrderLine{{ItemName: "Flour", Quantity: 2, Price: 10}},
		CreatedAt:    time.Now().Add(-time.Minute),
	}
}

func newTestWatcher() (*Watcher, *fakeNotifier, *fakeSynth) {
	notifier := newFakeNotifier()
	synth := &fakeSynth{}
	w := New(nil, notifier, synth, logger.New("watcher-test"), 2)
	return w, notifier, synth
}

func TestObserveAnnouncesFreshPendingOrder(t *testing.T) {
	w, notifier, _ := newTestWatcher()
	o := testOrder(order.StatusPendingConfirmation)

	w.Observe(context.Background(), o)

	got := notifier.byType(notification.EventNewOrder)
	require.Len(t, got, 2, "one per audience")

	audiences := map[notification.Audience]bool{}
	for _, n := range got {
		audiences[n.Audience] = true
		assert.Equal(t, o.ID, n.OrderID)
	}
	assert.True(t, audiences[notification.AudienceAdmin])
	assert.True(t, audiences[notification.AudienceVendor])

	for _, n := range got {
		if n.Audience == notification.AudienceVendor {
			require.NotNil(t, n.VendorID)
			assert.Equal(t, o.VendorID, *n.VendorID)
		} else {
			assert.Nil(t, n.VendorID)
		}
	}
}

func TestObserveIgnoresStaleAndTerminalFirstSight(t *testing.T) {
	w, notifier, _ := newTestWatcher()

	old := testOrder(order.StatusPendingConfirmation)
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	w.Observe(context.Background(), old)

	done := testOrder(order.StatusFulfilled)
	w.Observe(context.Background(), done)

	assert.Empty(t, notifier.stored(), "history and already-terminal orders are not announced")
}

func TestObserveDuplicateDeliveryNotifiesOnce(t *testing.T) {
	w, notifier, _ := newTestWatcher()
	o := testOrder(order.StatusPendingConfirmation)

	w.Observe(context.Background(), o)
	w.Observe(context.Background(), o)
	w.Observe(context.Background(), o)

	assert.Len(t, notifier.stored(), 2, "same snapshot redelivered adds nothing")
}

func TestObserveStatusChange(t *testing.T) {
	w, notifier, _ := newTestWatcher()
	o := testOrder(order.StatusPendingConfirmation)

	w.Observe(context.Background(), o)
	o.Status = order.StatusPendingFulfillment
	w.Observe(context.Background(), o)

	got := notifier.byType(notification.EventStatusChanged)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, "PENDING_CONFIRMATION")
	assert.Contains(t, got[0].Message, "PENDING_FULFILLMENT")
}

func TestObserveRejectionEmitsCancellation(t *testing.T) {
	w, notifier, _ := newTestWatcher()
	o := testOrder(order.StatusPendingConfirmation)

	w.Observe(context.Background(), o)
	o.Status = order.StatusRejected
	w.Observe(context.Background(), o)

	assert.Len(t, notifier.byType(notification.EventOrderCancelled), 2)
	assert.Empty(t, notifier.byType(notification.EventStatusChanged))
}

func TestObserveFulfillmentTriggersSynthesisOnce(t *testing.T) {
	w, notifier, synth := newTestWatcher()
	o := testOrder(order.StatusDeliveryInRoute)

	w.Observe(context.Background(), o)
	o.Status = order.StatusFulfilled
	w.Observe(context.Background(), o)
	w.Observe(context.Background(), o) // redelivery of the same transition
	w.Quiesce()

	assert.Equal(t, 1, synth.callCount())
	require.Len(t, synth.calls, 1)
	assert.Equal(t, o.ID.String(), synth.calls[0])
	assert.Len(t, notifier.byType(notification.EventStatusChanged), 2)
}

func TestObserveUpdateGetsFreshIDs(t *testing.T) {
	w, notifier, _ := newTestWatcher()
	o := testOrder(order.StatusPendingConfirmation)

	w.Observe(context.Background(), o)
	o.Lines[0].Quantity = 3
	w.Observe(context.Background(), o)
	o.Lines[0].Price = 12
	w.Observe(context.Background(), o)

	updates := notifier.byType(notification.EventOrderUpdated)
	require.Len(t, updates, 4, "each update notifies both audiences with a fresh id")

	ids := map[string]bool{}
	for _, n := range updates {
		ids[n.ID] = true
	}
	assert.Len(t, ids, 4, "update ids never collide")
}

func TestObserveStatusChangeTakesPrecedenceOverUpdate(t *testing.T) {
	w, notifier, _ := newTestWatcher()
	o := testOrder(order.StatusPendingConfirmation)

	w.Observe(context.Background(), o)
	o.Status = order.StatusPendingFulfillment
	o.Lines[0].Quantity = 5
	w.Observe(context.Background(), o)

	assert.Len(t, notifier.byType(notification.EventStatusChanged), 2)
	assert.Empty(t, notifier.byType(notification.EventOrderUpdated), "one delivery yields one event class")
}

func TestRunConsumesFeedUntilClosed(t *testing.T) {
	notifier := newFakeNotifier()
	synth := &fakeSynth{}
	feed := &chanFeed{ch: make(chan *order.Order)}
	w := New(feed, notifier, synth, logger.New("watcher-test"), 2)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	o := testOrder(order.StatusPendingConfirmation)
	feed.ch <- o
	o2 := *o
	o2.Status = order.StatusFulfilled
	feed.ch <- &o2
	close(feed.ch)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop when the feed closed")
	}
	w.Quiesce()

	assert.Equal(t, 1, synth.callCount())
	assert.Len(t, notifier.byType(notification.EventNewOrder), 2)
	assert.Len(t, notifier.byType(notification.EventStatusChanged), 2)
}
