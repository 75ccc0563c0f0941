package payment

import (
	"time"

	"github.com/acctmarket/backend/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitiatePaymentRequest represents a request to start paying for an order
type InitiatePaymentRequest struct {
	OrderID uuid.UUID  `json:"order_id" binding:"required"`
	UserID  *uuid.UUID `json:"user_id"`
	Gateway string     `json:"gateway" binding:"omitempty,oneof=paystack"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	UserID    *uuid.UUID      `json:"user_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Gateway   string          `json:"gateway"`
	// Verified is derived from Status at mapping time; the two cannot diverge
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebhookEvent is the envelope a gateway posts to the webhook endpoint
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// VerifyResponse reports the outcome of a verification attempt
type VerifyResponse struct {
	Reference string `json:"reference"`
	Verified  bool   `json:"verified"`
	Status    string `json:"status"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Reference: p.Reference,
		Status:    p.Status.String(),
		Gateway:   p.Gateway,
		Verified:  p.Verified(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
