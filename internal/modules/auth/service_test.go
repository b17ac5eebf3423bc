package auth

import (
	"context"
	"testing"
	"time"

	"aptbooking/internal/domain"
	"aptbooking/internal/modules/users"
	"aptbooking/internal/pkg/jwt"
	"aptbooking/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Create(ctx context.Context, req users.CreateUserRequest, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, req, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsers) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockUsers, *password.Hasher, *jwt.Service) {
	t.Helper()
	u := new(mockUsers)
	hasher := password.NewHasher(4)
	tokens := jwt.New("test-secret", 24*time.Hour)
	return NewService(u, hasher, tokens, nil), u, hasher, tokens
}

func TestService_Signup_Success(t *testing.T) {
	svc, userReg, _, tokens := newTestService(t)

	req := SignupRequest{Phone: "+77010000001", Name: "Dana", Password: "secret1"}
	userReg.On("Create", mock.Anything, req, domain.RoleUser).
		Return(&domain.User{ID: "u-1", Phone: req.Phone, Name: req.Name, Role: domain.RoleUser}, nil)

	res, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u-1", res.User.ID)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.EqualValues(t, 86400, res.ExpiresIn)

	claims, err := tokens.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.ID)
	assert.Equal(t, "+77010000001", claims.Phone)
	assert.Equal(t, "Dana", claims.Name)
	assert.Equal(t, "user", claims.Role)
	userReg.AssertExpectations(t)
}

func TestService_Signup_PhoneTaken(t *testing.T) {
	svc, userReg, _, _ := newTestService(t)

	userReg.On("Create", mock.Anything, mock.Anything, domain.RoleUser).Return(nil, users.ErrAlreadyExists)

	_, err := svc.Signup(context.Background(), SignupRequest{Phone: "+77010000001", Name: "Dana", Password: "secret1"})
	assert.ErrorIs(t, err, ErrPhoneAlreadyExists)
}

func TestService_Login(t *testing.T) {
	svc, userReg, hasher, _ := newTestService(t)

	hash, err := hasher.Hash("correct-pass")
	require.NoError(t, err)
	stored := &domain.User{ID: "u-1", Phone: "+77010000001", Name: "Dana", PasswordHash: hash, Role: domain.RoleAdmin}

	userReg.On("FindByPhone", mock.Anything, "+77010000001").Return(stored, nil)
	userReg.On("FindByPhone", mock.Anything, "+77019999999").Return(nil, users.ErrUserNotFound)

	res, err := svc.Login(context.Background(), LoginRequest{Phone: "+77010000001", Password: "correct-pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Role)
	assert.NotEmpty(t, res.AccessToken)

	_, err = svc.Login(context.Background(), LoginRequest{Phone: "+77010000001", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Phone: "+77019999999", Password: "whatever"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
