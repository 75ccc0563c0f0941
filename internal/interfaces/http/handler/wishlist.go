package handler

import (
	catalogapp "github.com/acctmarket/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WishlistHandler handles wishlist endpoints. All operations require an
// identified caller.
type WishlistHandler struct {
	BaseHandler
	wishlistService *catalogapp.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *catalogapp.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// AddWishlistItemRequest represents a request to save a product
type AddWishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// List lists the caller's saved products
func (h *WishlistHandler) List(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to view your wishlist")
		return
	}

	items, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Add saves a product to the caller's wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to manage your wishlist")
		return
	}

	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.wishlistService.Add(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Remove deletes a product from the caller's wishlist
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to manage your wishlist")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.wishlistService.Remove(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
