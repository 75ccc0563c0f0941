package catalog

import (
	"context"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreFilter captures the storefront browse/filter criteria: only
// in-stock digital products are considered, optionally narrowed by a
// price band and a category set.
type StoreFilter struct {
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	CategoryIDs []uuid.UUID
	Page        int
	PageSize    int
}

// Validate rejects negative price bounds and inverted bands
func (f StoreFilter) Validate() error {
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return shared.NewDomainError("INVALID_FILTER", "Minimum price cannot be negative")
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return shared.NewDomainError("INVALID_FILTER", "Maximum price cannot be negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MaxPrice.LessThan(*f.MinPrice) {
		return shared.NewDomainError("INVALID_FILTER", "Maximum price cannot be below minimum price")
	}
	return nil
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindFiltered finds sellable products matching the storefront filter
	FindFiltered(ctx context.Context, filter StoreFilter) ([]Product, error)

	// FindRelated finds other products that share a category
	FindRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]Product, error)

	// Search finds products whose title contains the query
	Search(ctx context.Context, query string, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product; historical order items keep their
	// snapshot and only lose the live reference
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
