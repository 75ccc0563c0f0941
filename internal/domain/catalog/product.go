package catalog

import (
	"strings"
	"time"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/acctmarket/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the review/publication status of a product
type ProductStatus string

const (
	ProductStatusInReview ProductStatus = "in_review"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
	ProductStatusDisabled ProductStatus = "disabled"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusInReview, ProductStatusApproved, ProductStatusRejected, ProductStatusDisabled:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// Product represents a sellable listing in the storefront catalog.
// Price and OldPrice are the current and pre-discount prices; the
// difference drives the displayed discount, never a stored percentage.
type Product struct {
	shared.BaseEntity
	UserID        *uuid.UUID      `gorm:"type:uuid;index"` // seller; nullable so seller deletion keeps the listing
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Slug          string          `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	Specification string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OldPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status        ProductStatus   `gorm:"type:varchar(20);not null;default:'in_review'"`
	InStock       bool            `gorm:"not null;default:true"`
	Digital       bool            `gorm:"not null;default:true"`
	Featured      bool            `gorm:"not null;default:false"`
	BestSeller    bool            `gorm:"not null;default:false"`
	SpecialOffer  bool            `gorm:"not null;default:false"`
	JustArrived   bool            `gorm:"not null;default:true"`
	DealOfTheWeek bool            `gorm:"not null;default:false"`
	DealStartDate *time.Time
	DealEndDate   *time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product pending review
func NewProduct(title string, price, oldPrice valueobject.Money) (*Product, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if oldPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product old price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Slug:       Slugify(title),
		Price:      price.Amount(),
		OldPrice:   oldPrice.Amount(),
		Status:     ProductStatusInReview,
		InStock:    true,
		Digital:    true,
		JustArrived: true,
	}, nil
}

// SetSeller assigns the owning seller
func (p *Product) SetSeller(userID uuid.UUID) {
	p.UserID = &userID
	p.UpdatedAt = time.Now()
}

// SetCategory assigns the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// UpdatePrices updates the current and pre-discount prices
func (p *Product) UpdatePrices(price, oldPrice valueobject.Money) error {
	if price.IsNegative() || oldPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.Price = price.Amount()
	p.OldPrice = oldPrice.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// Approve publishes the product
func (p *Product) Approve() error {
	if p.Status != ProductStatusInReview {
		return shared.NewDomainError("INVALID_STATE", "Only products in review can be approved")
	}
	p.Status = ProductStatusApproved
	p.UpdatedAt = time.Now()
	return nil
}

// Disable removes the product from sale
func (p *Product) Disable() {
	p.Status = ProductStatusDisabled
	p.InStock = false
	p.UpdatedAt = time.Now()
}

// StartDeal marks the product as deal of the week for the given window
func (p *Product) StartDeal(start, end time.Time) error {
	if !end.After(start) {
		return shared.NewDomainError("INVALID_DEAL_WINDOW", "Deal end must be after deal start")
	}
	p.DealOfTheWeek = true
	p.DealStartDate = &start
	p.DealEndDate = &end
	p.UpdatedAt = time.Now()
	return nil
}

// EndDeal clears the deal flag and window
func (p *Product) EndDeal() {
	p.DealOfTheWeek = false
	p.DealStartDate = nil
	p.DealEndDate = nil
	p.UpdatedAt = time.Now()
}

// DealActive reports whether the deal window covers the given instant
func (p *Product) DealActive(now time.Time) bool {
	if !p.DealOfTheWeek || p.DealStartDate == nil || p.DealEndDate == nil {
		return false
	}
	return !now.Before(*p.DealStartDate) && !now.After(*p.DealEndDate)
}

// DiscountPercentage returns the discount implied by OldPrice vs Price,
// rounded to two decimal places. Zero when no old price is recorded.
func (p *Product) DiscountPercentage() decimal.Decimal {
	if !p.OldPrice.IsPositive() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return p.OldPrice.Sub(p.Price).Div(p.OldPrice).Mul(hundred).Round(2)
}

// DiscountAmount returns OldPrice - Price when an old price is
// recorded, zero otherwise
func (p *Product) DiscountAmount() valueobject.Money {
	if !p.OldPrice.IsPositive() {
		return valueobject.ZeroNGN()
	}
	return valueobject.NewMoneyNGN(p.OldPrice.Sub(p.Price))
}

// DealPrice returns the effective selling price at the given instant.
// Price already carries the discount while the deal window is open;
// outside the window a product still flagged as a deal sells at its
// pre-deal OldPrice until the deal is ended or relisted.
func (p *Product) DealPrice(now time.Time) valueobject.Money {
	if p.DealOfTheWeek && !p.DealActive(now) && p.OldPrice.IsPositive() {
		return valueobject.NewMoneyNGN(p.OldPrice)
	}
	return valueobject.NewMoneyNGN(p.Price)
}

// PriceMoney returns the current price as Money
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(p.Price)
}

// Sellable reports whether the product can be bought right now
func (p *Product) Sellable() bool {
	return p.Status == ProductStatusApproved && p.InStock
}
