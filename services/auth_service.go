package services

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"store-api/apperrors"
	"store-api/models"
	"store-api/repository"
)

type AuthService struct {
	users  repository.UserRepo
	tokens *TokenService
}

func NewAuthService(users repository.UserRepo, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login authenticates by phone number and password and issues a token.
func (s *AuthService) Login(ctx context.Context, phoneNumber, password string) (*models.User, string, error) {
	if phoneNumber == "" || password == "" {
		return nil, "", apperrors.Validation("Phone number and password are required")
	}

	user, err := s.users.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", apperrors.New(http.StatusUnauthorized, "Phone number does not exist", nil)
		}
		return nil, "", apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.New(http.StatusUnauthorized, "Invalid credentials", nil)
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return user, token, nil
}
