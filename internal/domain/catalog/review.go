package catalog

import (
	"context"
	"strings"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Rating is a star rating between 1 and 5
type Rating int

const (
	RatingOne   Rating = 1
	RatingTwo   Rating = 2
	RatingThree Rating = 3
	RatingFour  Rating = 4
	RatingFive  Rating = 5
)

// IsValid checks that the rating is within the 1..5 scale
func (r Rating) IsValid() bool {
	return r >= RatingOne && r <= RatingFive
}

// ProductReview is a customer review of a product. A customer may
// review a given product at most once.
type ProductReview struct {
	shared.BaseEntity
	UserID    *uuid.UUID `gorm:"type:uuid;index:idx_review_user_product,unique"`
	ProductID *uuid.UUID `gorm:"type:uuid;index:idx_review_user_product,unique"`
	Review    string     `gorm:"type:text;not null"`
	Rating    Rating     `gorm:"not null;default:3"`
}

// TableName returns the table name for GORM
func (ProductReview) TableName() string {
	return "product_reviews"
}

// NewProductReview creates a review after validating its rating and body
func NewProductReview(userID, productID uuid.UUID, review string, rating Rating) (*ProductReview, error) {
	if strings.TrimSpace(review) == "" {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Review text cannot be empty")
	}
	if !rating.IsValid() {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	return &ProductReview{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     &userID,
		ProductID:  &productID,
		Review:     review,
		Rating:     rating,
	}, nil
}

// ProductReviewRepository defines the interface for review persistence
type ProductReviewRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductReview, error)
	CountByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	Save(ctx context.Context, review *ProductReview) error
	Delete(ctx context.Context, id uuid.UUID) error
}
