package auth

import (
	"context"
	"time"

	"aptbooking/internal/domain"
	"aptbooking/internal/modules/users"
)

// UserRegistry — only the methods auth service uses
type UserRegistry interface {
	Create(ctx context.Context, req users.CreateUserRequest, role domain.UserRole) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
}

type PasswordVerifier interface {
	Compare(hash, plain string) error
}

type TokenIssuer interface {
	GenerateToken(id, phone, name, role string) (string, error)
	TTL() time.Duration
}
