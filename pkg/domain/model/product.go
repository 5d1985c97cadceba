package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

type Category string

const (
	CategoryFashion Category = "Fashion"
	CategoryDigital Category = "Digital Products"
)

func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryFashion, CategoryDigital:
		return Category(value), true
	}
	return "", false
}

type Badge string

const (
	BadgeBestseller Badge = "Bestseller"
	BadgeNew        Badge = "New"
	BadgePopular    Badge = "Popular"
	BadgeSale       Badge = "Sale"
	BadgeNone       Badge = "None"
)

type Product struct {
	ID                 uuid.UUID
	Name               string
	Description        string
	PriceCents         int64
	OriginalPriceCents *int64
	Category           Category
	Subcategory        string
	Image              string
	Images             []string
	StockQuantity      int
	Featured           bool
	Badge              Badge
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProductFilter narrows active catalog queries. Nil fields match everything.
type ProductFilter struct {
	Category *Category
	Featured *bool
	Page     int
	Limit    int
}

func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(product *Product) error
	Update(product *Product) error
	Find(id uuid.UUID) (*Product, error)
	FindActive(filter ProductFilter) ([]*Product, error)
	CountActive(filter ProductFilter) (int, error)
}

// ProductFinder is the read-only view of the catalog consumed by pricing.
// Inactive products stay resolvable by ID so historical orders keep rendering.
type ProductFinder interface {
	Find(id uuid.UUID) (*Product, error)
}
