package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/acctmarket/backend/internal/domain/order"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartOrderRepository implements CartOrderRepository using GORM
type GormCartOrderRepository struct {
	db *gorm.DB
}

// NewGormCartOrderRepository creates a new GormCartOrderRepository
func NewGormCartOrderRepository(db *gorm.DB) *GormCartOrderRepository {
	return &GormCartOrderRepository{db: db}
}

// FindByID finds a cart order by its ID
func (r *GormCartOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.CartOrder, error) {
	var cartOrder order.CartOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cartOrder, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cartOrder, nil
}

// FindByUser finds a user's orders with pagination
func (r *GormCartOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[order.CartOrder], error) {
	base := r.db.WithContext(ctx).Model(&order.CartOrder{}).Where("user_id = ?", userID)
	return r.paginate(base, filter)
}

// FindAll finds all orders with pagination
func (r *GormCartOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[order.CartOrder], error) {
	base := r.db.WithContext(ctx).Model(&order.CartOrder{})
	return r.paginate(base, filter)
}

func (r *GormCartOrderRepository) paginate(base *gorm.DB, filter shared.Filter) (*shared.Paginated[order.CartOrder], error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.applyFilter(base.Session(&gorm.Session{}).Preload("Items"), filter)
	var orders []order.CartOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates an order together with its items
func (r *GormCartOrderRepository) Save(ctx context.Context, cartOrder *order.CartOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(cartOrder).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(cartOrder.Items))
		for i, item := range cartOrder.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", cartOrder.ID, currentItemIDs).
				Delete(&order.CartOrderItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", cartOrder.ID).
				Delete(&order.CartOrderItem{}).Error; err != nil {
				return err
			}
		}

		for i := range cartOrder.Items {
			cartOrder.Items[i].OrderID = cartOrder.ID
			if err := tx.Save(&cartOrder.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes an order and its items
func (r *GormCartOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.CartOrderItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&order.CartOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts all orders
func (r *GormCartOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.CartOrder{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies pagination and ordering to the query
func (r *GormCartOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormCartOrderRepository implements CartOrderRepository
var _ order.CartOrderRepository = (*GormCartOrderRepository)(nil)
