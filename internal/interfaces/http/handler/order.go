package handler

import (
	"context"

	orderapp "github.com/acctmarket/backend/internal/application/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Checkout turns a cart payload into an order with snapshotted prices
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.UserID = userID

	order, err := h.orderService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID returns an order with its items
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List lists the caller's orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to view your orders")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	orders, total, err := h.orderService.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Ship marks an order as shipped
func (h *OrderHandler) Ship(c *gin.Context) {
	h.mutate(c, h.orderService.Ship)
}

// Deliver marks an order as delivered
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.mutate(c, h.orderService.Deliver)
}

// Cancel cancels an order still in processing
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.mutate(c, h.orderService.Cancel)
}

func (h *OrderHandler) mutate(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error)) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := fn(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
