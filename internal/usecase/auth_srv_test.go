package usecase

import (
	"context"
	"testing"

	"expert-booking/internal/data/entity"
	"expert-booking/internal/data/repository"
	"expert-booking/internal/dto/request"
	"expert-booking/pkg/apperrors"
	"expert-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() AuthService {
	repo := &repository.Repository{
		User:    newFakeUserRepo(),
		Session: newFakeSessionRepo(),
	}
	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
	return NewAuthService(repo, config, zap.NewNop())
}

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Password: "rahasia-sekali",
	}
}

func TestRegisterIssuesSession(t *testing.T) {
	svc := newAuthService()

	auth, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NotNil(t, auth)

	assert.Equal(t, "budi@example.com", auth.User.Email)
	assert.Equal(t, entity.RoleCustomer, auth.User.Role)
	assert.NotEmpty(t, auth.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "budi@example.com",
		Password: "salah-total",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "tidak-ada@example.com",
		Password: "apapun-saja",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
