package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"store-api/models"
)

// ProductRepo defines the catalog store operations used by the services.
type ProductRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Distinct(ctx context.Context, field string, filter bson.M) ([]string, error)
	PriceRange(ctx context.Context, filter bson.M) (min, max float64, err error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

// OrderRepo defines the order store operations.
type OrderRepo interface {
	Find(ctx context.Context, filter bson.M, page, pageSize int) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByOrderID(ctx context.Context, orderID int64) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Order, error)
	EnsureIndexes(ctx context.Context) error
}

// UserRepo defines the user store operations.
type UserRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	FindByPhonePattern(ctx context.Context, pattern string) ([]models.User, error)
	FindByRole(ctx context.Context, role string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddOrder(ctx context.Context, id, orderID primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

// BranchRepo defines the branch store operations.
type BranchRepo interface {
	Find(ctx context.Context, page, pageSize int) ([]models.Branch, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error)
	// FindByStaff returns the branch holding staffID, excluding exclude when
	// non-zero. Used to enforce the one-branch-per-staff invariant.
	FindByStaff(ctx context.Context, staffID, exclude primitive.ObjectID) (*models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Branch, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddOrder(ctx context.Context, id, orderID primitive.ObjectID) error
	AddStaff(ctx context.Context, id, staffID primitive.ObjectID) error
	RemoveStaff(ctx context.Context, id, staffID primitive.ObjectID) error
}
