package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"store-api/apperrors"
	"store-api/models"
	"store-api/repository"
)

const bcryptCost = 10

// CreateUserRequest is the shared intake payload for admin/staff/client
// creation. The role comes from the endpoint, not the payload.
type CreateUserRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest updates user fields; the password is rehashed only when
// provided.
type UpdateUserRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

type UserService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) *UserService {
	return &UserService{users: users}
}

// CreateUser creates an account with the given role, rejecting duplicate
// phone numbers with a conflict.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, apperrors.Validation("Invalid role")
	}

	if _, err := s.users.FindByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, apperrors.Conflict("A user with this phone number already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Internal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now().UTC()
	user := &models.User{
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    string(hashed),
		Role:        role,
		Orders:      []primitive.ObjectID{},
		Avatar:      GenerateAvatar(req.FirstName, req.LastName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("A user with this phone number already exists")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid user ID format")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	if role == "" {
		return nil, apperrors.Validation("Role is required")
	}
	users, err := s.users.FindByRole(ctx, role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (s *UserService) GetUsersByPhone(ctx context.Context, phoneNumber string) ([]models.User, error) {
	if phoneNumber == "" {
		return nil, apperrors.Validation("Phone number is required")
	}
	users, err := s.users.FindByPhonePattern(ctx, phoneNumber)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NotFound("User not found")
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid user ID format")
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		return nil, apperrors.Validation("Invalid role")
	}

	updates := bson.M{}
	if req.PhoneNumber != "" {
		updates["phoneNumber"] = req.PhoneNumber
	}
	if req.FirstName != "" {
		updates["firstName"] = req.FirstName
	}
	if req.LastName != "" {
		updates["lastName"] = req.LastName
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.FirstName != "" || req.LastName != "" {
		first, last := req.FirstName, req.LastName
		if first == "" || last == "" {
			// Partial rename: fill the missing half from the stored
			// name so the avatar keeps reflecting the full name.
			current, err := s.users.FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, apperrors.NotFound("User not found")
				}
				return nil, apperrors.Internal(err)
			}
			if first == "" {
				first = current.FirstName
			}
			if last == "" {
				last = current.LastName
			}
		}
		updates["avatar"] = GenerateAvatar(first, last)
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		updates["password"] = string(hashed)
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("No update fields provided")
	}

	user, err := s.users.Update(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("User not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("A user with this phone number already exists")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid user ID format")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal(err)
	}
	return nil
}

// GenerateAvatar builds an initials-based avatar URL for a user.
func GenerateAvatar(firstName, lastName string) string {
	name := url.QueryEscape(fmt.Sprintf("%s %s", firstName, lastName))
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", name)
}
