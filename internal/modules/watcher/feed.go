package watcher

import (
	"context"
	"time"

	"github.com/lib/pq"

	"github.com/mkandawire/supplyhub-backend/internal/modules/order"
	"github.com/mkandawire/supplyhub-backend/internal/platform/logger"
)

// OrderGetter resolves a notified order id to its current snapshot.
type OrderGetter interface {
	GetOrderByID(ctx context.Context, id string) (*order.Order, error)
}

// PQFeed is a LISTEN/NOTIFY change feed. The order repository calls
// pg_notify('orders_changed', order_id) after every write; this feed listens
// on that channel and resolves each payload to a full order snapshot.
type PQFeed struct {
	connInfo string
	orders   OrderGetter
	log      *logger.Logger
}

// NewPQFeed creates a feed over the given Postgres connection string.
func NewPQFeed(connInfo string, orders OrderGetter, log *logger.Logger) *PQFeed {
	return &PQFeed{connInfo: connInfo, orders: orders, log: log}
}

func (f *PQFeed) Subscribe(ctx context.Context) (<-chan *order.Order, error) {
	listener := pq.NewListener(f.connInfo, 10*time.Second, time.Minute, nil)
	if err := listener.Listen("orders_changed"); err != nil {
		listener.Close()
		return nil, err
	}

	ch := make(chan *order.Order)
	go func() {
		defer close(ch)
		defer listener.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				if n == nil {
					// Connection re-established; poll-based recovery is the
					// reconciliation scan's job, not this feed's.
					continue
				}
				o, err := f.orders.GetOrderByID(ctx, n.Extra)
				if err != nil {
					f.log.Error("feed_lookup_failed", "order "+n.Extra, err)
					continue
				}
				select {
				case ch <- o:
				case <-ctx.Done():
					return
				}
			case <-time.After(90 * time.Second):
				if err := listener.Ping(); err != nil {
					f.log.Error("feed_ping_failed", "listener connection lost", err)
					return
				}
			}
		}
	}()
	return ch, nil
}

// OrderLister is the polling counterpart of OrderGetter.
type OrderLister interface {
	ListChangedSince(ctx context.Context, t time.Time) ([]*order.Order, error)
}

// PollFeed is an interval-polling change feed for environments where
// LISTEN/NOTIFY is unavailable (connection poolers that don't forward
// notifications, tests against plain fixtures).
type PollFeed struct {
	orders   OrderLister
	interval time.Duration
	log      *logger.Logger
}

// NewPollFeed creates a feed polling at the given interval.
func NewPollFeed(orders OrderLister, interval time.Duration, log *logger.Logger) *PollFeed {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollFeed{orders: orders, interval: interval, log: log}
}

func (f *PollFeed) Subscribe(ctx context.Context) (<-chan *order.Order, error) {
	ch := make(chan *order.Order)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		// Bound the initial window to the last day of changes; anything
		// older is history, not live activity.
		since := time.Now().Add(-24 * time.Hour)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				orders, err := f.orders.ListChangedSince(ctx, since)
				if err != nil {
					f.log.Error("feed_poll_failed", "listing changed orders", err)
					continue
				}
				for _, o := range orders {
					if o.UpdatedAt.After(since) {
						since = o.UpdatedAt
					}
					select {
					case ch <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	return ch, nil
}
