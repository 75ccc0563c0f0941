package payment

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/acctmarket/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the verification state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// referenceBytes is the entropy of a payment reference before encoding
const referenceBytes = 20

// NewReference returns a URL-safe random payment reference. Uniqueness
// is enforced by the database constraint, not here; collisions are
// handled by retrying at the service layer.
func NewReference() (string, error) {
	buf := make([]byte, referenceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate payment reference: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Payment is the ledger entry for an order's payment. Each order owns
// at most one row; a failed payment is reopened with a fresh reference
// rather than inserted again. Amount is the amount the gateway must
// confirm, never what the gateway reports.
type Payment struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payments_order"`
	UserID    *uuid.UUID      `gorm:"type:uuid;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'NGN'"`
	Reference string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_payments_reference"`
	Status    PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	Gateway   string          `gorm:"type:varchar(30);not null;default:'paystack'"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment for an order with a fresh reference
func NewPayment(orderID uuid.UUID, userID *uuid.UUID, amount valueobject.Money, gateway string) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	reference, err := NewReference()
	if err != nil {
		return nil, err
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		UserID:     userID,
		Amount:     amount.Amount(),
		Currency:   string(amount.Currency()),
		Reference:  reference,
		Status:     PaymentStatusPending,
		Gateway:    gateway,
	}, nil
}

// RegenerateReference replaces the reference on an unsaved payment.
// Used when the insert hits the unique constraint.
func (p *Payment) RegenerateReference() error {
	reference, err := NewReference()
	if err != nil {
		return err
	}
	p.Reference = reference
	return nil
}

// Reopen resets a failed payment to pending under a fresh reference so
// the buyer can retry. A verified payment cannot be reopened.
func (p *Payment) Reopen() error {
	if p.Status == PaymentStatusVerified {
		return shared.NewDomainError("INVALID_STATE", "Verified payments cannot be reopened")
	}
	reference, err := NewReference()
	if err != nil {
		return err
	}
	p.Reference = reference
	p.Status = PaymentStatusPending
	p.UpdatedAt = time.Now()
	return nil
}

// AmountMoney returns the expected amount as Money
func (p *Payment) AmountMoney() valueobject.Money {
	m, err := valueobject.NewMoney(p.Amount, valueobject.Currency(p.Currency))
	if err != nil {
		return valueobject.NewMoneyNGN(p.Amount)
	}
	return m
}

// Verified reports whether the payment has been confirmed by the gateway
func (p *Payment) Verified() bool {
	return p.Status == PaymentStatusVerified
}

// MarkVerified records a successful gateway confirmation
func (p *Payment) MarkVerified() {
	p.Status = PaymentStatusVerified
	p.UpdatedAt = time.Now()
}

// MarkFailed records a gateway decline or amount mismatch
func (p *Payment) MarkFailed() {
	p.Status = PaymentStatusFailed
	p.UpdatedAt = time.Now()
}
