package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitpass/gym-system/internal/core/domain"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	members := &stubMemberRepo{members: map[string]*domain.Member{}}
	svc := NewAuthService(members, "jwt-secret", time.Hour)

	member, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter2hunter2", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if member.Role != domain.RoleClient {
		t.Fatalf("empty role must default to CLIENT, got %s", member.Role)
	}
	if member.PasswordHash == "hunter2hunter2" {
		t.Fatalf("password must be hashed")
	}

	tkn, got, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("unexpected member: %+v", got)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tkn, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("jwt-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("session token must verify: %v", err)
	}
	if claims["role"] != domain.RoleClient {
		t.Fatalf("token must carry the role, got %v", claims["role"])
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	members := &stubMemberRepo{members: map[string]*domain.Member{}}
	svc := NewAuthService(members, "jwt-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "correct-pass", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong-pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	members := &stubMemberRepo{members: map[string]*domain.Member{}}
	svc := NewAuthService(members, "jwt-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "", "a@b.c", "pass", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty name: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "A", "a@b.c", "pass", "SUPERUSER"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad role: expected ErrInvalidCredentials, got %v", err)
	}
}
