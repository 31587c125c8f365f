package restaurant

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL restaurant repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateRestaurant(ctx context.Context, rest *Restaurant) error {
	query := `
		INSERT INTO restaurants (id, business_name, legal_name, tax_id, contact_email, contact_phone, country, province)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		rest.ID, rest.BusinessName, rest.LegalName, rest.TaxID,
		rest.ContactEmail, rest.ContactPhone, rest.Country, rest.Province)
	return err
}

func (r *postgresRepository) GetRestaurantByID(ctx context.Context, id string) (*Restaurant, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	rest := &Restaurant{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, business_name, legal_name, tax_id, contact_email, contact_phone, country, province, created_at, updated_at
		FROM restaurants
		WHERE id = $1`, parsedID).Scan(
		&rest.ID,
		&rest.BusinessName,
		&rest.LegalName,
		&rest.TaxID,
		&rest.ContactEmail,
		&rest.ContactPhone,
		&rest.Country,
		&rest.Province,
		&rest.CreatedAt,
		&rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rest, nil
}

func (r *postgresRepository) ListRestaurants(ctx context.Context) ([]*Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, business_name, legal_name, tax_id, contact_email, contact_phone, country, province, created_at, updated_at
		FROM restaurants
		ORDER BY business_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rests []*Restaurant
	for rows.Next() {
		rest := &Restaurant{}
		if err := rows.Scan(
			&rest.ID,
			&rest.BusinessName,
			&rest.LegalName,
			&rest.TaxID,
			&rest.ContactEmail,
			&rest.ContactPhone,
			&rest.Country,
			&rest.Province,
			&rest.CreatedAt,
			&rest.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rests = append(rests, rest)
	}
	return rests, rows.Err()
}
