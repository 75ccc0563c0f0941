package persistence

import (
	"context"

	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWishListRepository implements WishListRepository using GORM
type GormWishListRepository struct {
	db *gorm.DB
}

// NewGormWishListRepository creates a new GormWishListRepository
func NewGormWishListRepository(db *gorm.DB) *GormWishListRepository {
	return &GormWishListRepository{db: db}
}

// FindByUser returns a user's wishlist, newest first
func (r *GormWishListRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]catalog.WishListItem, error) {
	var items []catalog.WishListItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists reports whether the user already wishlisted the product
func (r *GormWishListRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.WishListItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a wishlist entry
func (r *GormWishListRepository) Save(ctx context.Context, item *catalog.WishListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteByUserAndProduct removes a product from a user's wishlist
func (r *GormWishListRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&catalog.WishListItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormWishListRepository implements WishListRepository
var _ catalog.WishListRepository = (*GormWishListRepository)(nil)
