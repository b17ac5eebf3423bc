package auth

import (
	"context"
	"errors"
	"fmt"

	"aptbooking/internal/domain"
	"aptbooking/internal/modules/users"
	"aptbooking/internal/pkg/password"

	"go.uber.org/zap"
)

// Service contains all business logic for authentication
type Service struct {
	users  UserRegistry
	hasher PasswordVerifier
	jwt    TokenIssuer
	log    *zap.Logger
}

func NewService(users UserRegistry, hasher PasswordVerifier, jwt TokenIssuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:  users,
		hasher: hasher,
		jwt:    jwt,
		log:    log,
	}
}

// Signup creates a USER account and signs the caller in.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	u, err := s.users.Create(ctx, req, domain.RoleUser)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			return nil, ErrPhoneAlreadyExists
		}
		return nil, err
	}

	s.log.Info("signup", zap.String("user_id", u.ID))
	return s.issue(u)
}

// Login checks the phone/password pair. An unknown phone is reported as
// ErrUserNotFound, a wrong password as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.log.Warn("login_failed", zap.String("user_id", u.ID))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issue(u)
}

func (s *Service) issue(u *domain.User) (*TokenResponse, error) {
	token, err := s.jwt.GenerateToken(u.ID, u.Phone, u.Name, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &TokenResponse{
		User: UserPublic{
			ID:    u.ID,
			Phone: u.Phone,
			Name:  u.Name,
			Role:  string(u.Role),
		},
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.TTL().Seconds()),
	}, nil
}
