package catalog

import (
	"context"
	"time"

	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/acctmarket/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductCache caches read-heavy product lookups. A nil-product,
// nil-error return means a cache miss.
type ProductCache interface {
	GetBySlug(ctx context.Context, slug string) (*catalog.Product, error)
	Set(ctx context.Context, product *catalog.Product) error
	Invalidate(ctx context.Context, slug string) error
}

// ProductService handles storefront product operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	cache        ProductCache
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	cache ProductCache,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Create creates a new product pending review
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price := valueobject.NewMoneyNGN(req.Price)
	oldPrice := valueobject.NewMoneyNGN(req.OldPrice)

	product, err := catalog.NewProduct(req.Title, price, oldPrice)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.Digital = req.Digital
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.UserID != nil {
		product.SetSeller(*req.UserID)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// GetBySlug retrieves a product by slug, consulting the cache first
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBySlug(ctx, slug)
		if err != nil {
			s.logger.Warn("product cache read failed", zap.String("slug", slug), zap.Error(err))
		} else if cached != nil {
			response := ToProductResponse(cached, time.Now())
			return &response, nil
		}
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.logger.Warn("product cache write failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// Browse lists sellable products matching the storefront filter
func (s *ProductService) Browse(ctx context.Context, req StoreFilterRequest) ([]ProductResponse, error) {
	filter := catalog.StoreFilter{
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		CategoryIDs: req.CategoryIDs,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Search finds products whose title matches the query
func (s *ProductService) Search(ctx context.Context, query string) ([]ProductResponse, error) {
	products, err := s.productRepo.Search(ctx, query, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Related lists other products in the same category
func (s *ProductService) Related(ctx context.Context, productID uuid.UUID, limit int) ([]ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CategoryID == nil {
		return []ProductResponse{}, nil
	}
	if limit <= 0 {
		limit = 4
	}

	products, err := s.productRepo.FindRelated(ctx, *product.CategoryID, product.ID, limit)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// UpdatePrices changes a product's prices and drops its cache entry
func (s *ProductService) UpdatePrices(ctx context.Context, productID uuid.UUID, req UpdateProductPricesRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.UpdatePrices(valueobject.NewMoneyNGN(req.Price), valueobject.NewMoneyNGN(req.OldPrice)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// Approve moves a product out of review so it can be sold
func (s *ProductService) Approve(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Approve(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

// Disable takes a product off the storefront
func (s *ProductService) Disable(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Disable()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Slug)

	response := ToProductResponse(product, time.Now())
	return &response, nil
}

func (s *ProductService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	now := time.Now()
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], now))
	}
	return responses
}
