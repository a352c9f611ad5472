package ports

import (
	"context"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// AuthService handles member registration and login. Core operations never
// call it; they receive the already-verified Caller instead.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (string, *domain.Member, error)
}
