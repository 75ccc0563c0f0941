package handler

import (
	"context"

	catalogapp "github.com/acctmarket/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler handles storefront product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	reviewService  *catalogapp.ReviewService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, reviewService *catalogapp.ReviewService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
	}
}

// Browse lists sellable products with optional price band and category
// filters
func (h *ProductHandler) Browse(c *gin.Context) {
	var req catalogapp.StoreFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.productService.Browse(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Search finds products by title
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.BadRequest(c, "Search query is required")
		return
	}

	products, err := h.productService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetBySlug returns a product detail page payload
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Related lists products sharing the category of the given product
func (h *ProductHandler) Related(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	related, err := h.productService.Related(c.Request.Context(), product.ID, 0)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, related)
}

// ListReviews lists the reviews of a product
func (h *ProductHandler) ListReviews(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), product.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// Create registers a new product pending review
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// UpdatePrices changes a product's price pair
func (h *ProductHandler) UpdatePrices(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdatePrices(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Approve publishes a product to the storefront
func (h *ProductHandler) Approve(c *gin.Context) {
	h.mutate(c, h.productService.Approve)
}

// Disable removes a product from the storefront
func (h *ProductHandler) Disable(c *gin.Context) {
	h.mutate(c, h.productService.Disable)
}

func (h *ProductHandler) mutate(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := fn(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
