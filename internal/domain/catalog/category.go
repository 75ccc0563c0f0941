package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title into a URL-safe slug
// ("Gift Cards & Vouchers" -> "gift-cards-vouchers").
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Category represents a product category in the storefront
// It supports one level of sub-categories via ParentID
type Category struct {
	shared.BaseEntity
	Title    string     `gorm:"type:varchar(100);not null"`
	Slug     string     `gorm:"type:varchar(120);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category. When slug is empty it is
// generated from the title at creation time, not on save.
func NewCategory(title, slug string) (*Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Slug:       slug,
	}, nil
}

// NewSubCategory creates a new category under a parent
func NewSubCategory(title, slug string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}

	category, err := NewCategory(title, slug)
	if err != nil {
		return nil, err
	}
	category.ParentID = &parent.ID
	return category, nil
}

// Rename updates the category title, keeping the slug stable
func (c *Category) Rename(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	c.Title = title
	c.UpdatedAt = time.Now()
	return nil
}
