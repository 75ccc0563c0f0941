package catalog

import (
	"time"

	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Title       string           `json:"title" binding:"required,min=1,max=200"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	OldPrice    decimal.Decimal  `json:"old_price"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	UserID      *uuid.UUID       `json:"user_id"`
	Digital     bool             `json:"digital"`
	InStock     *bool            `json:"in_stock"`
}

// UpdateProductPricesRequest represents a request to change product prices
type UpdateProductPricesRequest struct {
	Price    decimal.Decimal `json:"price" binding:"required"`
	OldPrice decimal.Decimal `json:"old_price" binding:"required"`
}

// StoreFilterRequest represents the storefront browse filter
type StoreFilterRequest struct {
	MinPrice    *decimal.Decimal `form:"min_price"`
	MaxPrice    *decimal.Decimal `form:"max_price"`
	CategoryIDs []uuid.UUID      `form:"category_ids"`
	Page        int              `form:"page" binding:"omitempty,min=1"`
	PageSize    int              `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Slug               string          `json:"slug"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	OldPrice           decimal.Decimal `json:"old_price"`
	DealPrice          decimal.Decimal `json:"deal_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	CategoryID         *uuid.UUID      `json:"category_id,omitempty"`
	Status             string          `json:"status"`
	InStock            bool            `json:"in_stock"`
	Digital            bool            `json:"digital"`
	Featured           bool            `json:"featured"`
	BestSeller         bool            `json:"best_seller"`
	SpecialOffer       bool            `json:"special_offer"`
	JustArrived        bool            `json:"just_arrived"`
	DealOfTheWeek      bool            `json:"deal_of_the_week"`
	DealActive         bool            `json:"deal_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product, now time.Time) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Slug:               p.Slug,
		Description:        p.Description,
		Price:              p.Price,
		OldPrice:           p.OldPrice,
		DealPrice:          p.DealPrice(now).Amount(),
		DiscountPercentage: p.DiscountPercentage(),
		CategoryID:         p.CategoryID,
		Status:             p.Status.String(),
		InStock:            p.InStock,
		Digital:            p.Digital,
		Featured:           p.Featured,
		BestSeller:         p.BestSeller,
		SpecialOffer:       p.SpecialOffer,
		JustArrived:        p.JustArrived,
		DealOfTheWeek:      p.DealOfTheWeek,
		DealActive:         p.DealActive(now),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ==================== Category DTOs ====================

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Title    string     `json:"title" binding:"required,min=1,max=100"`
	Slug     string     `json:"slug" binding:"omitempty,max=120"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Title    string     `json:"title"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Title:    c.Title,
		Slug:     c.Slug,
		ParentID: c.ParentID,
	}
}

// ==================== Review DTOs ====================

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	UserID    *uuid.UUID `json:"user_id"`
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Review    string     `json:"review" binding:"required,min=1,max=2000"`
	Rating    int        `json:"rating" binding:"required,min=1,max=5"`
}

// ReviewResponse represents a product review in API responses
type ReviewResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Review    string     `json:"review"`
	Rating    int        `json:"rating"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(r *catalog.ProductReview) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Review:    r.Review,
		Rating:    int(r.Rating),
		CreatedAt: r.CreatedAt,
	}
}

// ==================== Wishlist DTOs ====================

// WishlistItemResponse represents a wishlist entry in API responses
type WishlistItemResponse struct {
	ID        uuid.UUID  `json:"id"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToWishlistItemResponse converts a domain wishlist item to a response DTO
func ToWishlistItemResponse(w *catalog.WishListItem) WishlistItemResponse {
	return WishlistItemResponse{
		ID:        w.ID,
		ProductID: w.ProductID,
		CreatedAt: w.CreatedAt,
	}
}
