package order

import (
	"context"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartOrderRepository defines the persistence port for cart orders
type CartOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CartOrder, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[CartOrder], error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[CartOrder], error)
	Save(ctx context.Context, cartOrder *CartOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
