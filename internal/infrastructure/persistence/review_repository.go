package persistence

import (
	"context"

	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductReviewRepository implements ProductReviewRepository using GORM
type GormProductReviewRepository struct {
	db *gorm.DB
}

// NewGormProductReviewRepository creates a new GormProductReviewRepository
func NewGormProductReviewRepository(db *gorm.DB) *GormProductReviewRepository {
	return &GormProductReviewRepository{db: db}
}

// FindByProduct returns all reviews for a product, newest first
func (r *GormProductReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductReview, error) {
	var reviews []catalog.ProductReview
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// CountByUserAndProduct counts reviews a user has left on a product
func (r *GormProductReviewRepository) CountByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.ProductReview{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a review
func (r *GormProductReviewRepository) Save(ctx context.Context, review *catalog.ProductReview) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete deletes a review
func (r *GormProductReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductReview{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductReviewRepository implements ProductReviewRepository
var _ catalog.ProductReviewRepository = (*GormProductReviewRepository)(nil)
