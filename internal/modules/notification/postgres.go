package notification

import (
	"context"
	"database/sql"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateIfAbsent(ctx context.Context, n *Notification) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, order_id, type, audience, vendor_id, message, read)
		VALUES ($1,$2,$3,$4,$5,$6,false)
		ON CONFLICT (id) DO NOTHING`,
		n.ID, n.OrderID, n.Type, n.Audience, n.VendorID, n.Message)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return count == 1, nil
}

func (r *postgresRepository) ListByAudience(ctx context.Context, audience Audience, vendorID string) ([]*Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, type, audience, vendor_id, message, read, created_at
		FROM notifications
		WHERE audience = $1 AND ($2 = '' OR vendor_id::text = $2)
		ORDER BY created_at DESC`, audience, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(
			&n.ID,
			&n.OrderID,
			&n.Type,
			&n.Audience,
			&n.VendorID,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *postgresRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	return err
}
