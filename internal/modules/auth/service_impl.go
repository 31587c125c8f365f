package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkandawire/supplyhub-backend/internal/modules/user"
)

// Claims carries the role and vendor scope alongside the standard subject.
type Claims struct {
	Role     string `json:"role"`
	VendorID string `json:"vendor_id,omitempty"`
	jwt.StandardClaims
}

type service struct {
	userRepo user.Repository
	jwtKey   []byte
}

// NewService creates a new auth service. The signing key comes from
// JWT_SECRET; a fallback keeps local development working.
func NewService(userRepo user.Repository) Service {
	key := os.Getenv("JWT_SECRET")
	if key == "" {
		key = "dev-only-secret"
	}
	return &service{userRepo: userRepo, jwtKey: []byte(key)}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	claims := &Claims{
		Role: string(u.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	if u.VendorID != nil {
		claims.VendorID = u.VendorID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}
