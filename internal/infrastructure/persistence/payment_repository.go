package persistence

import (
	"context"
	"errors"

	"github.com/acctmarket/backend/internal/domain/order"
	"github.com/acctmarket/backend/internal/domain/payment"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a new payment, translating unique violations into the
// domain sentinels: a reference collision becomes ErrDuplicateReference
// so callers can retry with a fresh reference, and a second row for the
// same order becomes ErrOrderPaymentExists.
func (r *GormPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		if pqErr.Constraint == "idx_payments_order" {
			return payment.ErrOrderPaymentExists
		}
		return payment.ErrDuplicateReference
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return payment.ErrDuplicateReference
	}
	return err
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByReference finds a payment by its reference
func (r *GormPaymentRepository) FindByReference(ctx context.Context, reference string) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).First(&p, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByReferenceForUpdate loads a payment with SELECT ... FOR UPDATE.
// Outside a transaction the lock is released immediately, so this is
// only meaningful on a repository bound to one.
func (r *GormPaymentRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByOrder finds the payment owned by an order
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).First(&p, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ payment.PaymentRepository = (*GormPaymentRepository)(nil)

// GormUnitOfWork runs payment and order writes in one database
// transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a transaction, handing it repositories bound
// to that transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, payments payment.PaymentRepository, orders order.CartOrderRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormPaymentRepository(tx), NewGormCartOrderRepository(tx))
	})
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ payment.UnitOfWork = (*GormUnitOfWork)(nil)
