package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

// AuthService implements member registration and login. The reservation and
// check-in core never calls it; identity arrives there as a verified Caller.
type AuthService struct {
	members   ports.MemberRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(members ports.MemberRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{members: members, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.Member, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.Member{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.members.Create(ctx, member)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Member, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	member, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.generateToken(member)
	if err != nil {
		return "", nil, err
	}
	return signed, member, nil
}

func (s *AuthService) generateToken(member *domain.Member) (string, error) {
	claims := jwt.MapClaims{
		"sub":  member.ID,
		"name": member.Name,
		"role": member.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}
