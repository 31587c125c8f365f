package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL order repository. Every
// write ends with pg_notify on the orders_changed channel so LISTEN-based
// change feeds see the mutation without polling.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `
	id, vendor_id, restaurant_id, status, integrity, lines,
	subtotal_before_tax, total_tax, grand_total, created_at, updated_at`

func (r *postgresRepository) CreateOrder(ctx context.Context, o *Order) error {
	linesJSON, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders
		  (id, vendor_id, restaurant_id, status, integrity, lines,
		   subtotal_before_tax, total_tax, grand_total)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.VendorID, o.RestaurantID, o.Status, o.Integrity, linesJSON,
		o.SubtotalBeforeTax, o.TotalTax, o.GrandTotal)
	if err != nil {
		return err
	}
	return r.notifyChanged(ctx, o.ID.String())
}

func (r *postgresRepository) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, parsedID)
	return scanOrder(row)
}

func (r *postgresRepository) ListOrders(ctx context.Context, vendorID, restaurantID, status string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1 = '' OR vendor_id::text = $1)
		  AND ($2 = '' OR restaurant_id::text = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC`, vendorID, restaurantID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *postgresRepository) ListOrdersByStatus(ctx context.Context, status OrderStatus) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *postgresRepository) ListChangedSince(ctx context.Context, t time.Time) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE updated_at > $1 ORDER BY updated_at`, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	return r.notifyChanged(ctx, id)
}

func (r *postgresRepository) UpdateLines(ctx context.Context, o *Order) error {
	linesJSON, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE orders
		SET lines=$1, subtotal_before_tax=$2, total_tax=$3, grand_total=$4, updated_at=$5
		WHERE id=$6`,
		linesJSON, o.SubtotalBeforeTax, o.TotalTax, o.GrandTotal, time.Now(), o.ID)
	if err != nil {
		return err
	}
	return r.notifyChanged(ctx, o.ID.String())
}

func (r *postgresRepository) FlagIntegrity(ctx context.Context, id string, integrity IntegrityStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET integrity=$1, updated_at=$2 WHERE id=$3`, integrity, time.Now(), id)
	return err
}

func (r *postgresRepository) DeleteOrder(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, id)
	return err
}

func (r *postgresRepository) notifyChanged(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `SELECT pg_notify('orders_changed', $1)`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var linesJSON []byte
	err := row.Scan(
		&o.ID,
		&o.VendorID,
		&o.RestaurantID,
		&o.Status,
		&o.Integrity,
		&linesJSON,
		&o.SubtotalBeforeTax,
		&o.TotalTax,
		&o.GrandTotal,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(linesJSON, &o.Lines); err != nil {
		return nil, err
	}
	return o, nil
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
