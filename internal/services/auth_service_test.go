package services

import (
	"context"
	"testing"

	"filevault/config"
	filevault_errors "filevault/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(repo *fakeUserRepo) *AuthService {
	cipher, _ := NewEmailCipher(testKeyHex)
	return NewAuthService(repo, cipher, &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 15,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	info, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Mina",
		Email:    "Mina@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "mina@example.com", info.Email)

	id, err := uuid.Parse(info.ID)
	require.NoError(t, err)
	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, stored.EncryptedEmail.Valid, "shadow field written on create")

	resp, err := svc.Login(context.Background(), LoginInput{Email: "mina@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"short name", RegisterInput{Name: "a", Email: "a@b.co", Password: "123456"}},
		{"bad email", RegisterInput{Name: "ab", Email: "not-an-email", Password: "123456"}},
		{"short password", RegisterInput{Name: "ab", Email: "a@b.co", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, filevault_errors.ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	in := RegisterInput{Name: "Mina", Email: "mina@example.com", Password: "hunter22"}
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, filevault_errors.ErrAlreadyExists)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Mina", Email: "mina@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "mina@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, filevault_errors.ErrUnauthorized)

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, filevault_errors.ErrUnauthorized)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ParseAccessToken(token)
		assert.ErrorIs(t, err, filevault_errors.ErrUnauthorized, "token %q", token)
	}
}
