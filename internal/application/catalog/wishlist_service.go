package catalog

import (
	"context"

	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// WishlistService handles customer wishlists
type WishlistService struct {
	wishlistRepo catalog.WishListRepository
	productRepo  catalog.ProductRepository
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(wishlistRepo catalog.WishListRepository, productRepo catalog.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Add puts a product on the user's wishlist. Adding twice is a no-op.
func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*WishlistItemResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		items, err := s.wishlistRepo.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if items[i].ProductID != nil && *items[i].ProductID == productID {
				response := ToWishlistItemResponse(&items[i])
				return &response, nil
			}
		}
	}

	item := catalog.NewWishListItem(userID, productID)
	if err := s.wishlistRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToWishlistItemResponse(item)
	return &response, nil
}

// List returns the user's wishlist
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]WishlistItemResponse, error) {
	items, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]WishlistItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToWishlistItemResponse(&items[i]))
	}
	return responses, nil
}

// Remove takes a product off the user's wishlist
func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.wishlistRepo.DeleteByUserAndProduct(ctx, userID, productID)
}
