package restaurant

import "context"

// Repository defines the interface for restaurant profile storage.
type Repository interface {
	CreateRestaurant(ctx context.Context, rest *Restaurant) error
	GetRestaurantByID(ctx context.Context, id string) (*Restaurant, error)
	ListRestaurants(ctx context.Context) ([]*Restaurant, error)
}
