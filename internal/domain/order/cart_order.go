package order

import (
	"fmt"
	"time"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/acctmarket/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FulfilmentStatus represents the delivery status of a cart order
type FulfilmentStatus string

const (
	FulfilmentStatusProcessing FulfilmentStatus = "processing"
	FulfilmentStatusShipped    FulfilmentStatus = "shipped"
	FulfilmentStatusDelivered  FulfilmentStatus = "delivered"
	FulfilmentStatusCancelled  FulfilmentStatus = "cancelled"
)

// IsValid checks if the status is a valid FulfilmentStatus
func (s FulfilmentStatus) IsValid() bool {
	switch s {
	case FulfilmentStatusProcessing, FulfilmentStatusShipped, FulfilmentStatusDelivered, FulfilmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of FulfilmentStatus
func (s FulfilmentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s FulfilmentStatus) CanTransitionTo(target FulfilmentStatus) bool {
	switch s {
	case FulfilmentStatusProcessing:
		return target == FulfilmentStatusShipped || target == FulfilmentStatusCancelled
	case FulfilmentStatusShipped:
		return target == FulfilmentStatusDelivered
	case FulfilmentStatusDelivered, FulfilmentStatusCancelled:
		return false // Terminal states
	}
	return false
}

// CheckoutLine is one (product, quantity, unit price) tuple from a
// checkout request
type CheckoutLine struct {
	ProductID    uuid.UUID
	ProductTitle string
	UniqueKey    string
	Quantity     int
	UnitPrice    valueobject.Money
}

// CartOrderItem is a line item of a cart order. It is an immutable
// price snapshot: Total is computed once at creation and never
// re-derived from the live product.
type CartOrderItem struct {
	shared.BaseEntity
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    *uuid.UUID      `gorm:"type:uuid;index"` // nulled when the product is deleted
	ProductTitle string          `gorm:"type:varchar(200);not null"`
	UniqueKey    string          `gorm:"type:varchar(255)"`
	Quantity     int             `gorm:"not null;default:1"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	InvoiceNo    string          `gorm:"type:varchar(20);not null;default:''"`
}

// TableName returns the table name for GORM
func (CartOrderItem) TableName() string {
	return "cart_order_items"
}

// newCartOrderItem validates a checkout line and snapshots its price
func newCartOrderItem(orderID uuid.UUID, line CheckoutLine) (*CartOrderItem, error) {
	if line.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if line.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if line.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	productID := line.ProductID
	return &CartOrderItem{
		BaseEntity:   shared.NewBaseEntity(),
		OrderID:      orderID,
		ProductID:    &productID,
		ProductTitle: line.ProductTitle,
		UniqueKey:    line.UniqueKey,
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice.Amount(),
		Total:        line.UnitPrice.Amount().Mul(decimal.NewFromInt(int64(line.Quantity))),
	}, nil
}

// TotalMoney returns the item total as Money
func (i *CartOrderItem) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(i.Total)
}

// CartOrder is the record of what a user is buying, at what price,
// and its payment and fulfilment state. PaidStatus is flipped only by
// the payment verification transaction; fulfilment moves through
// Ship/Deliver/Cancel.
type CartOrder struct {
	shared.BaseEntity
	UserID     *uuid.UUID       `gorm:"type:uuid;index"` // nullable so user deletion keeps order history
	Price      decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	PaidStatus bool             `gorm:"not null;default:false"`
	Status     FulfilmentStatus `gorm:"type:varchar(30);not null;default:'processing'"`
	Items      []CartOrderItem  `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (CartOrder) TableName() string {
	return "cart_orders"
}

// NewCartOrder creates an order from checkout lines. Every line is
// validated; the order price is the sum of the snapshotted line totals.
func NewCartOrder(userID *uuid.UUID, invoiceNo string, lines []CheckoutLine) (*CartOrder, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot create an order without items")
	}

	cartOrder := &CartOrder{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Price:      decimal.Zero,
		Status:     FulfilmentStatusProcessing,
		Items:      make([]CartOrderItem, 0, len(lines)),
	}

	total := decimal.Zero
	for _, line := range lines {
		item, err := newCartOrderItem(cartOrder.ID, line)
		if err != nil {
			return nil, err
		}
		item.InvoiceNo = invoiceNo
		cartOrder.Items = append(cartOrder.Items, *item)
		total = total.Add(item.Total)
	}
	cartOrder.Price = total

	return cartOrder, nil
}

// MarkPaid flips the paid flag. Callers outside the payment
// verification transaction must not use this.
func (o *CartOrder) MarkPaid() {
	o.PaidStatus = true
	o.UpdatedAt = time.Now()
}

// Ship marks the order as shipped/fulfilled
func (o *CartOrder) Ship() error {
	return o.transition(FulfilmentStatusShipped)
}

// Deliver marks the order as delivered
func (o *CartOrder) Deliver() error {
	return o.transition(FulfilmentStatusDelivered)
}

// Cancel cancels the order before shipment
func (o *CartOrder) Cancel() error {
	return o.transition(FulfilmentStatusCancelled)
}

func (o *CartOrder) transition(target FulfilmentStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// PriceMoney returns the order total as Money
func (o *CartOrder) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(o.Price)
}

// ItemCount returns the number of line items
func (o *CartOrder) ItemCount() int {
	return len(o.Items)
}

// IsTerminal returns true when no further fulfilment transition is possible
func (o *CartOrder) IsTerminal() bool {
	return o.Status == FulfilmentStatusDelivered || o.Status == FulfilmentStatusCancelled
}
