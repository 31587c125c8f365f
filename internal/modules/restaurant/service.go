package restaurant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines restaurant profile business logic.
type Service interface {
	CreateRestaurant(ctx context.Context, req CreateRestaurantRequest) (*Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*Restaurant, error)
	ListRestaurants(ctx context.Context) ([]*Restaurant, error)
}

type service struct {
	repo Repository
}

// NewService creates a new restaurant service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRestaurant(ctx context.Context, req CreateRestaurantRequest) (*Restaurant, error) {
	if req.BusinessName == "" {
		return nil, fmt.Errorf("business_name is required")
	}

	rest := &Restaurant{
		ID:           uuid.New(),
		BusinessName: req.BusinessName,
		LegalName:    req.LegalName,
		TaxID:        req.TaxID,
		ContactEmail: strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		ContactPhone: req.ContactPhone,
		Country:      strings.ToUpper(strings.TrimSpace(req.Country)),
		Province:     strings.ToUpper(strings.TrimSpace(req.Province)),
	}

	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return nil, fmt.Errorf("failed to persist restaurant: %w", err)
	}
	return rest, nil
}

func (s *service) GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	return s.repo.GetRestaurantByID(ctx, id)
}

func (s *service) ListRestaurants(ctx context.Context) ([]*Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}
