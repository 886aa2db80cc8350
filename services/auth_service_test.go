package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"store-api/apperrors"
	"store-api/models"
)

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:          primitive.NewObjectID(),
		PhoneNumber: "+998901234567",
		Password:    string(hashed),
		Role:        models.RoleClient,
	}
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepo)
	svc := NewAuthService(users, NewTokenService("test-secret", time.Hour))

	user := hashedUser(t, "secret123")
	users.On("FindByPhone", mock.Anything, user.PhoneNumber).Return(user, nil)

	got, token, err := svc.Login(context.Background(), user.PhoneNumber, "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_UnknownPhone(t *testing.T) {
	users := new(MockUserRepo)
	svc := NewAuthService(users, NewTokenService("test-secret", time.Hour))

	users.On("FindByPhone", mock.Anything, "+998900000000").Return(nil, mongo.ErrNoDocuments)

	_, _, err := svc.Login(context.Background(), "+998900000000", "secret123")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepo)
	svc := NewAuthService(users, NewTokenService("test-secret", time.Hour))

	user := hashedUser(t, "secret123")
	users.On("FindByPhone", mock.Anything, user.PhoneNumber).Return(user, nil)

	_, _, err := svc.Login(context.Background(), user.PhoneNumber, "wrong")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc := NewAuthService(new(MockUserRepo), NewTokenService("test-secret", time.Hour))

	_, _, err := svc.Login(context.Background(), "", "secret123")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
