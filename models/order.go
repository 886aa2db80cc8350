package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// Order types
const (
	OrderTypePickup   = "Pickup"
	OrderTypeDelivery = "Delivery"
)

// OrderItem is one catalog line of an order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// PickupDetails carries the fields required for pickup orders only.
type PickupDetails struct {
	StoreID primitive.ObjectID `bson:"storeId" json:"storeId"`
}

// DeliveryDetails carries the fields required for delivery orders only.
// PostalCode is validated at intake but not stored as a required field.
type DeliveryDetails struct {
	Address     string `bson:"address" json:"address"`
	City        string `bson:"city" json:"city"`
	PostalCode  string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
}

// Order links a customer to a set of reserved products. Exactly one of
// PickupDetails/DeliveryDetails is set, keyed by OrderType.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID         int64              `bson:"orderId" json:"orderId"`
	Customer        primitive.ObjectID `bson:"customer" json:"customer"`
	Products        []OrderItem        `bson:"products" json:"products"`
	Status          string             `bson:"status" json:"status"`
	OrderType       string             `bson:"orderType" json:"orderType"`
	PickupDetails   *PickupDetails     `bson:"pickupDetails,omitempty" json:"pickupDetails,omitempty"`
	DeliveryDetails *DeliveryDetails   `bson:"deliveryDetails,omitempty" json:"deliveryDetails,omitempty"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	Amount          int                `bson:"amount" json:"amount"`
	OrderDate       time.Time          `bson:"orderDate" json:"orderDate"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
