package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const itemColumns = `
	id, vendor_id, name, brand, category, unit, pack_qty, price, taxable, sku,
	status, proposed_data, original_data, requested_by, created_at, updated_at`

func (r *postgresRepository) CreateItem(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO catalog_items
		  (id, vendor_id, name, brand, category, unit, pack_qty, price, taxable, sku,
		   status, proposed_data, original_data, requested_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.VendorID, item.Name, item.Brand, item.Category, item.Unit,
		item.PackQty, item.Price, item.Taxable, item.SKU, item.Status,
		nullableJSON(item.ProposedData), nullableJSON(item.OriginalData), item.RequestedBy)
	return err
}

func (r *postgresRepository) GetItemByID(ctx context.Context, id string) (*Item, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM catalog_items WHERE id = $1`, parsedID)
	return scanItem(row)
}

func (r *postgresRepository) ListItemsByVendor(ctx context.Context, vendorID string, status string) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM catalog_items
		WHERE vendor_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY name`, vendorID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepository) UpdateItem(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE catalog_items
		SET name=$1, brand=$2, category=$3, unit=$4, pack_qty=$5, price=$6, taxable=$7,
		    sku=$8, status=$9, proposed_data=$10, original_data=$11, requested_by=$12, updated_at=$13
		WHERE id=$14`,
		item.Name, item.Brand, item.Category, item.Unit, item.PackQty, item.Price,
		item.Taxable, item.SKU, item.Status,
		nullableJSON(item.ProposedData), nullableJSON(item.OriginalData), item.RequestedBy,
		time.Now(), item.ID)
	return err
}

func (r *postgresRepository) IsItemTaxable(ctx context.Context, itemID string) (bool, error) {
	parsedID, err := uuid.Parse(itemID)
	if err != nil {
		return false, err
	}
	var taxable bool
	err = r.db.QueryRowContext(ctx,
		`SELECT taxable FROM catalog_items WHERE id = $1`, parsedID).Scan(&taxable)
	if err != nil {
		return false, err
	}
	return taxable, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*Item, error) {
	item := &Item{}
	var proposed, original []byte
	err := row.Scan(
		&item.ID,
		&item.VendorID,
		&item.Name,
		&item.Brand,
		&item.Category,
		&item.Unit,
		&item.PackQty,
		&item.Price,
		&item.Taxable,
		&item.SKU,
		&item.Status,
		&proposed,
		&original,
		&item.RequestedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.ProposedData = proposed
	item.OriginalData = original
	return item, nil
}

func nullableJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return data
}
