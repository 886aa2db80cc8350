package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleClient = "client"
)

// User is an account document. Password holds the bcrypt hash and is never
// serialized to clients.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	PhoneNumber string               `bson:"phoneNumber" json:"phoneNumber"`
	FirstName   string               `bson:"firstName" json:"firstName"`
	LastName    string               `bson:"lastName" json:"lastName"`
	Password    string               `bson:"password" json:"-"`
	Role        string               `bson:"role" json:"role"`
	Orders      []primitive.ObjectID `bson:"orders" json:"orders"`
	Avatar      string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ValidRole reports whether r is one of the known user roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleClient
}
