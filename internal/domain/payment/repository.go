package payment

import (
	"context"
	"errors"

	"github.com/acctmarket/backend/internal/domain/order"
	"github.com/google/uuid"
)

// ErrDuplicateReference signals the unique constraint on the payment
// reference column rejected an insert
var ErrDuplicateReference = errors.New("payment reference already exists")

// ErrOrderPaymentExists signals the unique constraint on order_id
// rejected an insert: the order already owns a payment row
var ErrOrderPaymentExists = errors.New("order already has a payment")

// PaymentRepository defines the persistence port for payments
type PaymentRepository interface {
	// Create inserts a new payment. Returns ErrDuplicateReference when
	// the generated reference collides with an existing row, and
	// ErrOrderPaymentExists when the order already owns one.
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByReference(ctx context.Context, reference string) (*Payment, error)
	// FindByReferenceForUpdate loads a payment with a row-level lock.
	// Only valid inside a UnitOfWork transaction.
	FindByReferenceForUpdate(ctx context.Context, reference string) (*Payment, error)
	// FindByOrder loads the single payment owned by an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// UnitOfWork runs payment and order writes in one database
// transaction. The repositories passed to fn operate on that
// transaction; fn returning an error rolls everything back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, payments PaymentRepository, orders order.CartOrderRepository) error) error
}
