package restaurant

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a buyer's billing profile, rendered onto restaurant invoices.
type Restaurant struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	LegalName    string    `json:"legal_name,omitempty"`
	TaxID        string    `json:"tax_id,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Country      string    `json:"country,omitempty"`
	Province     string    `json:"province,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRestaurantRequest is the payload for registering a buyer profile.
type CreateRestaurantRequest struct {
	BusinessName string `json:"business_name"`
	LegalName    string `json:"legal_name,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Country      string `json:"country,omitempty"`
	Province     string `json:"province,omitempty"`
}
