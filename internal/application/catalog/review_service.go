package catalog

import (
	"context"

	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReviewService handles product reviews
type ReviewService struct {
	reviewRepo  catalog.ProductReviewRepository
	productRepo catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo catalog.ProductReviewRepository, productRepo catalog.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Create adds a review. A user may review a given product only once;
// the database unique index backs this check against races.
func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	if req.UserID == nil {
		return nil, shared.NewDomainError("AUTH_REQUIRED", "Only signed-in customers can review products")
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	count, err := s.reviewRepo.CountByUserAndProduct(ctx, *req.UserID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, shared.NewDomainError("ALREADY_REVIEWED", "You have already reviewed this product")
	}

	review, err := catalog.NewProductReview(*req.UserID, req.ProductID, req.Review, catalog.Rating(req.Rating))
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	response := ToReviewResponse(review)
	return &response, nil
}

// ListByProduct returns all reviews for a product
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses, nil
}
