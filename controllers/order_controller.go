package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"store-api/apperrors"
	"store-api/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (ctl *OrderController) GetOrders(c *gin.Context) {
	page, err := parsePositiveInt(c, "pageNum", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := parsePositiveInt(c, "pageSize", 10)
	if err != nil {
		respondError(c, err)
		return
	}

	orders, total, err := ctl.orders.ListOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "data": orders})
}

func (ctl *OrderController) GetOrderByID(c *gin.Context) {
	order, err := ctl.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

// GetOrderByNumber resolves an order by its human-facing orderId.
func (ctl *OrderController) GetOrderByNumber(c *gin.Context) {
	raw := c.Query("orderId")
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(c, apperrors.Validation("orderId must be a number"))
		return
	}

	order, err := ctl.orders.GetOrderByNumber(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

// CreateOrder places a new order through the fulfillment workflow.
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	order, err := ctl.orders.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": order})
}

func (ctl *OrderController) UpdateOrder(c *gin.Context) {
	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	order, err := ctl.orders.UpdateOrder(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"data":    order,
	})
}
