package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderController struct {
	Service *service.OrderService
	logger  *slog.Logger
}

func NewOrderController(s *service.OrderService, logger *slog.Logger) *OrderController {
	return &OrderController{Service: s, logger: logger}
}

// POST /orders
func (ctl *OrderController) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "errors": validationDetails(err)})
		return
	}

	order, err := ctl.Service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateIdentifier) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			return
		}
		ctl.serverError(c, "Failed to create order", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"data":    order,
	})
}

// GET /orders
func (ctl *OrderController) List(c *gin.Context) {
	query := dto.OrderListQuery{
		Status:         c.Query("status"),
		IsActive:       c.Query("isActive"),
		CustomerID:     c.Query("customerId"),
		TrackingNumber: c.Query("trackingNumber"),
		BookingNumber:  c.Query("bookingNumber"),
	}
	page := parseIntParam(c.Query("page"), 1)
	limit := parseIntParam(c.Query("limit"), service.DefaultPageLimit)

	orders, pagination, err := ctl.Service.List(c.Request.Context(), query, page, limit)
	if err != nil {
		ctl.serverError(c, "Failed to fetch orders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders, "pagination": pagination})
}

// GET /orders/:id
func (ctl *OrderController) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	order, err := ctl.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		ctl.serverError(c, "Failed to fetch order details", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// PATCH /orders/:id
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "errors": validationDetails(err)})
		return
	}

	order, err := ctl.Service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		ctl.serverError(c, "Failed to update order status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"data":    order,
	})
}

// DELETE /orders/:id
func (ctl *OrderController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	if err := ctl.Service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		ctl.serverError(c, "Failed to delete order", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
}

// GET /orders/customer/:customerId
func (ctl *OrderController) ListByCustomer(c *gin.Context) {
	customerID, err := primitive.ObjectIDFromHex(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid customer id"})
		return
	}

	page := parseIntParam(c.Query("page"), 1)
	limit := parseIntParam(c.Query("limit"), service.DefaultPageLimit)

	orders, pagination, err := ctl.Service.ListByCustomer(c.Request.Context(), customerID, c.Query("status"), page, limit)
	if err != nil {
		ctl.serverError(c, "Failed to fetch customer orders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders, "pagination": pagination})
}

// GET /orders/tracking/:trackingNumber — public lookup, reduced projection.
func (ctl *OrderController) Track(c *gin.Context) {
	trackingNumber := strings.TrimSpace(c.Param("trackingNumber"))
	if trackingNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tracking number is required"})
		return
	}

	result, err := ctl.Service.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found for the provided tracking number"})
			return
		}
		ctl.serverError(c, "Failed to fetch tracking information", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (ctl *OrderController) serverError(c *gin.Context, message string, err error) {
	ctl.logger.Error(message, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
}

// parseIntParam mirrors the lenient query parsing the booking UI relies on:
// a leading integer prefix counts, anything without one and zero both fall
// back to the default.
func parseIntParam(s string, def int) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return def
	}
	return n
}

// validationDetails flattens binding failures into field->reason pairs so
// the UI can attach messages to inputs.
func validationDetails(err error) interface{} {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Namespace()] = "failed " + fe.Tag() + " validation"
		}
		return details
	}
	return err.Error()
}
