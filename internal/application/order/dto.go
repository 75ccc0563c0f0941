package order

import (
	"time"

	"github.com/acctmarket/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest represents a request to turn a cart into an order
type CheckoutRequest struct {
	UserID *uuid.UUID          `json:"user_id"`
	Items  []CheckoutLineInput `json:"items" binding:"required,min=1"`
}

// CheckoutLineInput represents one cart line in a checkout request
type CheckoutLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line item in API responses
type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	ProductTitle string          `json:"product_title"`
	UniqueKey    string          `json:"unique_key,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	InvoiceNo    string          `json:"invoice_no"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	UserID     *uuid.UUID          `json:"user_id,omitempty"`
	Price      decimal.Decimal     `json:"price"`
	PaidStatus bool                `json:"paid_status"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.CartOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductTitle: item.ProductTitle,
			UniqueKey:    item.UniqueKey,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Total:        item.Total,
			InvoiceNo:    item.InvoiceNo,
		})
	}
	return OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		Price:      o.Price,
		PaidStatus: o.PaidStatus,
		Status:     o.Status.String(),
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
