package catalog

import (
	"context"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WishListItem marks a product a customer wants to come back to
type WishListItem struct {
	shared.BaseEntity
	UserID    *uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique"`
	ProductID *uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique"`
}

// TableName returns the table name for GORM
func (WishListItem) TableName() string {
	return "wish_lists"
}

// NewWishListItem creates a wishlist entry
func NewWishListItem(userID, productID uuid.UUID) *WishListItem {
	return &WishListItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     &userID,
		ProductID:  &productID,
	}
}

// WishListRepository defines the interface for wishlist persistence
type WishListRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]WishListItem, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Save(ctx context.Context, item *WishListItem) error
	DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error
}
