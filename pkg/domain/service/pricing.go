package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

var (
	ErrEmptyCart       = errors.New("cannot price an empty cart")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
)

type CartItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// Quote is the priced result of a cart. All amounts are exact integer cents.
type Quote struct {
	Items         []model.LineItem
	TotalCents    int64
	ShippingCents int64
	FinalCents    int64
}

// PricingService resolves cart items against the catalog and computes totals.
// It never writes to storage; any unresolved product fails the whole cart.
type PricingService interface {
	PriceCart(items []CartItem) (*Quote, error)
}

func NewPricingService(products model.ProductFinder, shippingCents int64) PricingService {
	return &pricingService{products: products, shippingCents: shippingCents}
}

type pricingService struct {
	products      model.ProductFinder
	shippingCents int64
}

func (s *pricingService) PriceCart(items []CartItem) (*Quote, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	quote := &Quote{ShippingCents: s.shippingCents}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		product, err := s.products.Find(item.ProductID)
		if err != nil {
			return nil, err
		}

		quote.Items = append(quote.Items, model.LineItem{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Image:      product.Image,
			Quantity:   item.Quantity,
		})
		quote.TotalCents += product.PriceCents * int64(item.Quantity)
	}

	quote.FinalCents = quote.TotalCents + quote.ShippingCents
	return quote, nil
}
