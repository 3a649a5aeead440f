package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"docuflow/internal/config"
	"docuflow/internal/domain"
	"docuflow/internal/service"
	"docuflow/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "docuflow-test",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	users := new(mocks.MockUserRepo)
	svc := service.NewAuthService(users, testJWTConfig())

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "ada@example.com",
		Password: "correct horse",
		FullName: "Ada Lovelace",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
}

func TestLogin_IssuesValidatableToken(t *testing.T) {
	users := new(mocks.MockUserRepo)
	svc := service.NewAuthService(users, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	user := &domain.User{Email: "ada@example.com", PasswordHash: string(hash)}
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mocks.MockUserRepo)
	svc := service.NewAuthService(users, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(&domain.User{PasswordHash: string(hash)}, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ada@example.com",
		Password: "battery staple",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIsInvalidCredentials(t *testing.T) {
	users := new(mocks.MockUserRepo)
	svc := service.NewAuthService(users, testJWTConfig())

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	// Unknown account and wrong password are indistinguishable to the caller.
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
