package order

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/acctmarket/backend/internal/domain/order"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo   order.CartOrderRepository
	productRepo catalog.ProductRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.CartOrderRepository, productRepo catalog.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// newInvoiceNo generates an invoice number shared by the order's items
func newInvoiceNo() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invoice number: %w", err)
	}
	return "INV-" + hex.EncodeToString(buf), nil
}

// Checkout creates an order from cart lines. Each line's unit price
// is snapshotted from the product's current deal price, so later
// price changes never affect existing orders.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResponse, error) {
	now := time.Now()
	lines := make([]order.CheckoutLine, 0, len(req.Items))
	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Sellable() {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", fmt.Sprintf("Product %s is not available for purchase", product.Title))
		}
		lines = append(lines, order.CheckoutLine{
			ProductID:    product.ID,
			ProductTitle: product.Title,
			UniqueKey:    product.Slug,
			Quantity:     input.Quantity,
			UnitPrice:    product.DealPrice(now),
		})
	}

	invoiceNo, err := newInvoiceNo()
	if err != nil {
		return nil, err
	}

	cartOrder, err := order.NewCartOrder(req.UserID, invoiceNo, lines)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, cartOrder); err != nil {
		return nil, err
	}

	response := ToOrderResponse(cartOrder)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	cartOrder, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(cartOrder)
	return &response, nil
}

// ListByUser retrieves a user's orders with pagination
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	page, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToOrderResponse(&page.Items[i]))
	}
	return responses, page.Total, nil
}

// Ship marks an order as shipped
func (s *OrderService) Ship(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, (*order.CartOrder).Ship)
}

// Deliver marks an order as delivered
func (s *OrderService) Deliver(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, (*order.CartOrder).Deliver)
}

// Cancel cancels an order that has not shipped
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, (*order.CartOrder).Cancel)
}

func (s *OrderService) mutate(ctx context.Context, orderID uuid.UUID, fn func(*order.CartOrder) error) (*OrderResponse, error) {
	cartOrder, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(cartOrder); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, cartOrder); err != nil {
		return nil, err
	}
	response := ToOrderResponse(cartOrder)
	return &response, nil
}
