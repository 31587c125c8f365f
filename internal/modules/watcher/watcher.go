// Package watcher observes the live order feed and reacts to mutations:
// notifications for new/changed orders and invoice synthesis on the
// fulfilled transition. It is a best-effort, at-least-once mechanism; the
// invoice store's conditional writes are the authoritative duplicate guard,
// and the manual reconciliation scan recovers anything it misses.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkandawire/supplyhub-backend/internal/modules/invoice"
	"github.com/mkandawire/supplyhub-backend/internal/modules/notification"
	"github.com/mkandawire/supplyhub-backend/internal/modules/order"
	"github.com/mkandawire/supplyhub-backend/internal/platform/logger"
)

// Feed delivers current-state order snapshots as they change. The feed only
// guarantees "current state"; the watcher reconstructs "before" from its own
// cache.
type Feed interface {
	Subscribe(ctx context.Context) (<-chan *order.Order, error)
}

// Synthesizer is the slice of the invoice service the watcher invokes on the
// fulfilled transition.
type Synthesizer interface {
	GenerateForOrder(ctx context.Context, orderID string) (*invoice.GenerationResult, error)
}

// Notifier is the slice of the notification service the watcher emits
// through.
type Notifier interface {
	Emit(ctx context.Context, n *notification.Notification) (bool, error)
}

// snapshot is the per-order state the watcher remembers between deliveries.
type snapshot struct {
	status    order.OrderStatus
	total     float64
	itemCount float64
}

// Watcher holds all its state in its own scope: independent instances (for
// example in tests) never interfere.
type Watcher struct {
	feed     Feed
	notifier Notifier
	synth    Synthesizer
	log      *logger.Logger

	newOrderWindow time.Duration
	now            func() time.Time

	mu       sync.Mutex
	lastSeen map[uuid.UUID]snapshot
	invoiced map[uuid.UUID]struct{} // fast path; the store's conditional write is authoritative

	tasks sync.WaitGroup
	sem   chan struct{} // bounds in-flight synthesis tasks
}

// New creates a watcher. maxInFlight bounds concurrent synthesis tasks.
func New(feed Feed, notifier Notifier, synth Synthesizer, log *logger.Logger, maxInFlight int) *Watcher {
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	return &Watcher{
		feed:           feed,
		notifier:       notifier,
		synth:          synth,
		log:            log,
		newOrderWindow: 24 * time.Hour,
		now:            time.Now,
		lastSeen:       make(map[uuid.UUID]snapshot),
		invoiced:       make(map[uuid.UUID]struct{}),
		sem:            make(chan struct{}, maxInFlight),
	}
}

// Run consumes the feed until ctx is cancelled. Each delivered snapshot is
// processed synchronously in feed order; only invoice synthesis runs as a
// tracked background task. Errors are logged and never stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	ch, err := w.feed.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("feed subscribe failed: %w", err)
	}
	w.log.Info("watcher_start", "order change watcher running")

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher_stop", "order change watcher stopping")
			return ctx.Err()
		case o, ok := <-ch:
			if !ok {
				w.log.Info("watcher_stop", "order feed closed")
				return nil
			}
			w.Observe(ctx, o)
		}
	}
}

// Quiesce blocks until all in-flight synthesis tasks finish. Lets tests
// await completion deterministically instead of sleeping.
func (w *Watcher) Quiesce() {
	w.tasks.Wait()
}

// Observe processes one order snapshot against the watcher's cache.
func (w *Watcher) Observe(ctx context.Context, o *order.Order) {
	total := orderTotal(o)
	next := snapshot{status: o.Status, total: total, itemCount: o.ItemCount()}

	w.mu.Lock()
	prev, seen := w.lastSeen[o.ID]
	w.lastSeen[o.ID] = next
	w.mu.Unlock()

	switch {
	case !seen:
		// Only announce orders that are genuinely fresh; a watcher starting
		// up sees the whole recent window and must not re-announce history.
		if o.Status.IsPending() && w.now().Sub(o.CreatedAt) < w.newOrderWindow {
			w.emitToBoth(ctx, o, notification.EventNewOrder,
				func(aud notification.Audience) string { return notification.NewOrderID(o.ID.String(), aud) },
				fmt.Sprintf("New order from restaurant %s", o.RestaurantID))
		}
	case prev.status != o.Status:
		if o.Status == order.StatusRejected {
			w.emitToBoth(ctx, o, notification.EventOrderCancelled,
				func(aud notification.Audience) string { return notification.CancelledID(o.ID.String(), aud) },
				"Order was cancelled")
		} else {
			w.emitToBoth(ctx, o, notification.EventStatusChanged,
				func(aud notification.Audience) string {
					return notification.StatusChangedID(o.ID.String(), string(o.Status), aud)
				},
				fmt.Sprintf("Order moved from %s to %s", prev.status, o.Status))
		}
		if o.Status == order.StatusFulfilled {
			w.triggerSynthesis(o.ID)
		}
	case prev.total != next.total || prev.itemCount != next.itemCount:
		// Updates repeat legitimately, so each gets a fresh id.
		w.emitToBoth(ctx, o, notification.EventOrderUpdated,
			func(notification.Audience) string { return notification.UpdatedID(o.ID.String()) },
			fmt.Sprintf("Order updated: total %.2f, %g items", next.total, next.itemCount))
	}
}

func (w *Watcher) emitToBoth(ctx context.Context, o *order.Order, event notification.EventType, id func(notification.Audience) string, message string) {
	vendorID := o.VendorID
	for _, target := range []struct {
		audience notification.Audience
		vendorID *uuid.UUID
	}{
		{notification.AudienceAdmin, nil},
		{notification.AudienceVendor, &vendorID},
	} {
		n := &notification.Notification{
			ID:       id(target.audience),
			OrderID:  o.ID,
			Type:     event,
			Audience: target.audience,
			VendorID: target.vendorID,
			Message:  message,
		}
		if _, err := w.notifier.Emit(ctx, n); err != nil {
			w.log.Error("notify_failed",
				fmt.Sprintf("order %s event %s audience %s", o.ID, event, target.audience), err)
		}
	}
}

// triggerSynthesis launches invoice generation as a tracked, bounded task.
// The in-process set only suppresses redundant attempts within this
// watcher's lifetime.
func (w *Watcher) triggerSynthesis(orderID uuid.UUID) {
	w.mu.Lock()
	if _, done := w.invoiced[orderID]; done {
		w.mu.Unlock()
		return
	}
	w.invoiced[orderID] = struct{}{}
	w.mu.Unlock()

	w.tasks.Add(1)
	w.sem <- struct{}{}
	go func() {
		defer func() {
			<-w.sem
			w.tasks.Done()
		}()
		// Deliberately detached from the watcher's context: synthesis
		// already issued is allowed to complete after teardown.
		if _, err := w.synth.GenerateForOrder(context.Background(), orderID.String()); err != nil {
			w.log.Error("synthesis_failed", fmt.Sprintf("order %s", orderID), err)
		}
	}()
}

// orderTotal resolves the amount used for update detection: the snapshot
// grand total when present, else the subtotal recomputed from lines.
func orderTotal(o *order.Order) float64 {
	if o.GrandTotal != nil {
		return *o.GrandTotal
	}
	return order.RecomputeSubtotal(o)
}
