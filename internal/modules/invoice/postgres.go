package invoice

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

// NewPostgresRepository creates a new PostgreSQL invoice repository. Both
// invoice tables use the order id as their primary key; inserts go through
// ON CONFLICT DO NOTHING so create-if-absent is a single atomic statement.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateVendorInvoiceIfAbsent(ctx context.Context, inv *VendorInvoice) (bool, error) {
	linesJSON, err := json.Marshal(inv.Lines)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO vendor_invoices
		  (id, order_id, vendor_id, invoice_number, gross_amount, commission_percent,
		   commission_amount, net_payable, total_tax, total_amount, tax_rate_percent,
		   payment_status, due_date, lines)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO NOTHING`,
		inv.ID, inv.OrderID, inv.VendorID, inv.InvoiceNumber, inv.GrossAmount,
		inv.CommissionPercent, inv.CommissionAmount, inv.NetPayable, inv.TotalTax,
		inv.TotalAmount, inv.TaxRatePercent, inv.PaymentStatus, inv.DueDate, linesJSON)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *postgresRepository) CreateRestaurantInvoiceIfAbsent(ctx context.Context, inv *RestaurantInvoice) (bool, error) {
	linesJSON, err := json.Marshal(inv.Lines)
	if err != nil {
		return false, err
	}
	billToJSON, err := json.Marshal(inv.BillTo)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO restaurant_invoices
		  (id, order_id, vendor_id, vendor_name, restaurant_id, invoice_number,
		   subtotal, total_tax, grand_total, payment_status, due_date, bill_to, lines)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO NOTHING`,
		inv.ID, inv.OrderID, inv.VendorID, inv.VendorName, inv.RestaurantID,
		inv.InvoiceNumber, inv.Subtotal, inv.TotalTax, inv.GrandTotal,
		inv.PaymentStatus, inv.DueDate, billToJSON, linesJSON)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

const vendorInvoiceColumns = `
	id, order_id, vendor_id, invoice_number, gross_amount, commission_percent,
	commission_amount, net_payable, total_tax, total_amount, tax_rate_percent,
	payment_status, paid_at, due_date, lines, created_at, updated_at`

func (r *postgresRepository) GetVendorInvoiceByOrder(ctx context.Context, orderID string) (*VendorInvoice, error) {
	parsedID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+vendorInvoiceColumns+` FROM vendor_invoices WHERE order_id = $1`, parsedID)
	return scanVendorInvoice(row)
}

func (r *postgresRepository) ListVendorInvoices(ctx context.Context, vendorID string) ([]*VendorInvoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vendorInvoiceColumns+`
		FROM vendor_invoices
		WHERE ($1 = '' OR vendor_id::text = $1)
		ORDER BY created_at DESC`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*VendorInvoice
	for rows.Next() {
		inv, err := scanVendorInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

const restaurantInvoiceColumns = `
	id, order_id, vendor_id, vendor_name, restaurant_id, invoice_number,
	subtotal, total_tax, grand_total, payment_status, paid_at, due_date,
	bill_to, lines, created_at, updated_at`

func (r *postgresRepository) GetRestaurantInvoiceByOrder(ctx context.Context, orderID string) (*RestaurantInvoice, error) {
	parsedID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+restaurantInvoiceColumns+` FROM restaurant_invoices WHERE order_id = $1`, parsedID)
	return scanRestaurantInvoice(row)
}

func (r *postgresRepository) ListRestaurantInvoices(ctx context.Context, restaurantID string) ([]*RestaurantInvoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+restaurantInvoiceColumns+`
		FROM restaurant_invoices
		WHERE ($1 = '' OR restaurant_id::text = $1)
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*RestaurantInvoice
	for rows.Next() {
		inv, err := scanRestaurantInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *postgresRepository) MarkVendorInvoicePaid(ctx context.Context, orderID string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE vendor_invoices
		SET payment_status=$1, paid_at=$2, updated_at=$2
		WHERE order_id=$3 AND payment_status=$4`,
		PaymentPaid, now, orderID, PaymentPending)
	return err
}

func (r *postgresRepository) MarkRestaurantInvoicePaid(ctx context.Context, orderID string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE restaurant_invoices
		SET payment_status=$1, paid_at=$2, updated_at=$2
		WHERE order_id=$3 AND payment_status=$4`,
		PaymentPaid, now, orderID, PaymentPending)
	return err
}

func (r *postgresRepository) DeleteLegacyInvoices(ctx context.Context, orderID string) error {
	// Pre-migration rows carry a random id distinct from their order id.
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM vendor_invoices WHERE order_id=$1 AND id <> order_id`, orderID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM restaurant_invoices WHERE order_id=$1 AND id <> order_id`, orderID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVendorInvoice(row rowScanner) (*VendorInvoice, error) {
	inv := &VendorInvoice{}
	var linesJSON []byte
	err := row.Scan(
		&inv.ID,
		&inv.OrderID,
		&inv.VendorID,
		&inv.InvoiceNumber,
		&inv.GrossAmount,
		&inv.CommissionPercent,
		&inv.CommissionAmount,
		&inv.NetPayable,
		&inv.TotalTax,
		&inv.TotalAmount,
		&inv.TaxRatePercent,
		&inv.PaymentStatus,
		&inv.PaidAt,
		&inv.DueDate,
		&linesJSON,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(linesJSON, &inv.Lines); err != nil {
		return nil, err
	}
	return inv, nil
}

func scanRestaurantInvoice(row rowScanner) (*RestaurantInvoice, error) {
	inv := &RestaurantInvoice{}
	var linesJSON, billToJSON []byte
	err := row.Scan(
		&inv.ID,
		&inv.OrderID,
		&inv.VendorID,
		&inv.VendorName,
		&inv.RestaurantID,
		&inv.InvoiceNumber,
		&inv.Subtotal,
		&inv.TotalTax,
		&inv.GrandTotal,
		&inv.PaymentStatus,
		&inv.PaidAt,
		&inv.DueDate,
		&billToJSON,
		&linesJSON,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(linesJSON, &inv.Lines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(billToJSON, &inv.BillTo); err != nil {
		return nil, err
	}
	return inv, nil
}
