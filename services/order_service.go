package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"store-api/apperrors"
	"store-api/models"
	"store-api/repository"
)

// OrderLineRequest is one line item of an order placement request.
type OrderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PickupDetailsRequest carries the pickup-only intake fields.
type PickupDetailsRequest struct {
	StoreID string `json:"storeId"`
}

// DeliveryDetailsRequest carries the delivery-only intake fields.
type DeliveryDetailsRequest struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	PhoneNumber string `json:"phoneNumber"`
}

// PlaceOrderRequest is the order placement payload.
type PlaceOrderRequest struct {
	Customer        string                  `json:"customer"`
	Products        []OrderLineRequest      `json:"products"`
	Status          string                  `json:"status"`
	OrderID         int64                   `json:"orderId"`
	TotalPrice      float64                 `json:"totalPrice"`
	Amount          int                     `json:"amount"`
	OrderType       string                  `json:"orderType"`
	PickupDetails   *PickupDetailsRequest   `json:"pickupDetails"`
	DeliveryDetails *DeliveryDetailsRequest `json:"deliveryDetails"`
}

type OrderService struct {
	orders   repository.OrderRepo
	products repository.ProductRepo
	users    repository.UserRepo
	branches repository.BranchRepo
	log      *zap.Logger
	now      func() time.Time
}

func NewOrderService(orders repository.OrderRepo, products repository.ProductRepo, users repository.UserRepo, branches repository.BranchRepo, log *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		branches: branches,
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder validates the request, reserves stock per line item against the
// aggregate product stock, persists the order and back-links it to the
// customer and, for pickups, the target branch.
//
// Stock reservation commits product by product with no rollback: when line N
// fails, lines 1..N-1 keep their decrements. Known gap, kept deliberately.
func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*models.Order, error) {
	customerID, pickup, delivery, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	// Reservation pass, in the order the caller supplied.
	for _, line := range req.Products {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("Invalid product ID %s", line.ProductID))
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.NotFound(fmt.Sprintf("Product with ID %s not found", line.ProductID))
			}
			return nil, apperrors.Internal(err)
		}
		if product.Stock < line.Quantity {
			return nil, apperrors.Stock(fmt.Sprintf("Insufficient stock for product %s", product.Name))
		}

		product.Stock -= line.Quantity
		if err := s.products.Replace(ctx, product); err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	now := s.now().UTC()
	order := &models.Order{
		OrderID:         req.OrderID,
		Customer:        customerID,
		Status:          req.Status,
		OrderType:       req.OrderType,
		PickupDetails:   pickup,
		DeliveryDetails: delivery,
		TotalPrice:      req.TotalPrice,
		Amount:          req.Amount,
		OrderDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, line := range req.Products {
		productID, _ := primitive.ObjectIDFromHex(line.ProductID)
		order.Products = append(order.Products, models.OrderItem{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict(fmt.Sprintf("An order with orderId %d already exists", req.OrderID))
		}
		return nil, apperrors.Internal(err)
	}

	// Back-links are soft failures: a missing user or branch is logged and
	// skipped, never surfaced to the caller.
	if err := s.users.AddOrder(ctx, customerID, order.ID); err != nil {
		s.log.Warn("failed to back-link order to customer",
			zap.String("customer", customerID.Hex()),
			zap.Int64("orderId", order.OrderID),
			zap.Error(err),
		)
	}
	if order.OrderType == models.OrderTypePickup {
		if err := s.branches.AddOrder(ctx, order.PickupDetails.StoreID, order.ID); err != nil {
			s.log.Warn("failed to back-link order to branch",
				zap.String("branch", order.PickupDetails.StoreID.Hex()),
				zap.Int64("orderId", order.OrderID),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

func (s *OrderService) validate(req *PlaceOrderRequest) (primitive.ObjectID, *models.PickupDetails, *models.DeliveryDetails, error) {
	if req.Customer == "" || len(req.Products) == 0 || req.Status == "" || req.OrderID == 0 || req.OrderType == "" {
		return primitive.NilObjectID, nil, nil, apperrors.Validation("All fields are required")
	}
	if req.TotalPrice <= 0 {
		return primitive.NilObjectID, nil, nil, apperrors.Validation("Total price must be a positive number")
	}
	if req.Amount <= 0 {
		return primitive.NilObjectID, nil, nil, apperrors.Validation("Amount must be a positive number")
	}
	if !models.ValidStatus(req.Status) {
		return primitive.NilObjectID, nil, nil, apperrors.Validation("Invalid order status")
	}
	for _, line := range req.Products {
		if line.Quantity <= 0 {
			return primitive.NilObjectID, nil, nil, apperrors.Validation("Line item quantity must be a positive number")
		}
	}

	customerID, err := primitive.ObjectIDFromHex(req.Customer)
	if err != nil {
		return primitive.NilObjectID, nil, nil, apperrors.Validation("Invalid customer ID format")
	}

	switch req.OrderType {
	case models.OrderTypePickup:
		if req.PickupDetails == nil || req.PickupDetails.StoreID == "" {
			return primitive.NilObjectID, nil, nil, apperrors.Validation("Pickup store ID is required for pickup orders")
		}
		storeID, err := primitive.ObjectIDFromHex(req.PickupDetails.StoreID)
		if err != nil {
			return primitive.NilObjectID, nil, nil, apperrors.Validation("Invalid pickup store ID format")
		}
		return customerID, &models.PickupDetails{StoreID: storeID}, nil, nil
	case models.OrderTypeDelivery:
		d := req.DeliveryDetails
		if d == nil || d.Address == "" || d.City == "" || d.PostalCode == "" || d.PhoneNumber == "" {
			return primitive.NilObjectID, nil, nil, apperrors.Validation("Complete delivery details are required for delivery orders")
		}
		return customerID, nil, &models.DeliveryDetails{
			Address:     d.Address,
			City:        d.City,
			PostalCode:  d.PostalCode,
			PhoneNumber: d.PhoneNumber,
		}, nil
	default:
		return primitive.NilObjectID, nil, nil, apperrors.Validation("Order type must be Pickup or Delivery")
	}
}

// ListOrders returns a page of orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	orders, total, err := s.orders.Find(ctx, bson.M{}, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return orders, total, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid order ID format")
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}
	return order, nil
}

// GetOrderByNumber looks an order up by its human-facing orderId.
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, updates bson.M) (*models.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid order ID format")
	}
	if status, ok := updates["status"].(string); ok && !models.ValidStatus(status) {
		return nil, apperrors.Validation("Invalid order status")
	}
	order, err := s.orders.Update(ctx, orderID, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}
	return order, nil
}
