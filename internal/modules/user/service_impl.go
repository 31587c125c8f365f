package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	role := Role(strings.ToUpper(req.Role))
	if role == "" {
		role = RoleVendor
	}
	if role != RoleSuperAdmin && role != RoleVendor {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashedPassword),
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if role == RoleVendor {
		if req.VendorID == "" {
			return nil, fmt.Errorf("vendor_id is required for vendor users")
		}
		vid, err := uuid.Parse(req.VendorID)
		if err != nil {
			return nil, fmt.Errorf("invalid vendor_id: %w", err)
		}
		u.VendorID = &vid
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}
