package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

const shippingCents = int64(500)

func seedProduct(t *testing.T, repo *mockProductRepository, name string, priceCents int64) *model.Product {
	t.Helper()
	id, err := repo.NextID()
	require.NoError(t, err)
	now := time.Now().UTC()
	product := &model.Product{
		ID:         id,
		Name:       name,
		PriceCents: priceCents,
		Category:   model.CategoryFashion,
		Image:      "/images/" + name + ".jpg",
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.Create(product))
	return product
}

func TestPriceCart_ComputesExactTotals(t *testing.T) {
	repo := newMockProductRepository()
	a := seedProduct(t, repo, "silk-scarf", 1000) // 10.00
	b := seedProduct(t, repo, "tote-bag", 550)    // 5.50
	svc := service.NewPricingService(repo, shippingCents)

	quote, err := svc.PriceCart([]service.CartItem{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2550), quote.TotalCents)
	assert.Equal(t, int64(500), quote.ShippingCents)
	assert.Equal(t, int64(3050), quote.FinalCents)
}

func TestPriceCart_SnapshotsLineItems(t *testing.T) {
	repo := newMockProductRepository()
	a := seedProduct(t, repo, "silk-scarf", 1000)
	svc := service.NewPricingService(repo, shippingCents)

	quote, err := svc.PriceCart([]service.CartItem{{ProductID: a.ID, Quantity: 3}})

	require.NoError(t, err)
	require.Len(t, quote.Items, 1)
	item := quote.Items[0]
	assert.Equal(t, a.ID, item.ProductID)
	assert.Equal(t, "silk-scarf", item.Name)
	assert.Equal(t, int64(1000), item.PriceCents)
	assert.Equal(t, a.Image, item.Image)
	assert.Equal(t, 3, item.Quantity)
}

func TestPriceCart_UnknownProductFailsWhole(t *testing.T) {
	repo := newMockProductRepository()
	a := seedProduct(t, repo, "silk-scarf", 1000)
	svc := service.NewPricingService(repo, shippingCents)

	quote, err := svc.PriceCart([]service.CartItem{
		{ProductID: a.ID, Quantity: 1},
		{ProductID: uuid.New(), Quantity: 1},
	})

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Nil(t, quote)
}

func TestPriceCart_RejectsEmptyCart(t *testing.T) {
	svc := service.NewPricingService(newMockProductRepository(), shippingCents)

	_, err := svc.PriceCart(nil)

	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestPriceCart_RejectsZeroQuantity(t *testing.T) {
	repo := newMockProductRepository()
	a := seedProduct(t, repo, "silk-scarf", 1000)
	svc := service.NewPricingService(repo, shippingCents)

	_, err := svc.PriceCart([]service.CartItem{{ProductID: a.ID, Quantity: 0}})

	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
}

func TestPriceCart_StableAcrossRuns(t *testing.T) {
	repo := newMockProductRepository()
	a := seedProduct(t, repo, "silk-scarf", 999)
	svc := service.NewPricingService(repo, shippingCents)
	cart := []service.CartItem{{ProductID: a.ID, Quantity: 7}}

	first, err := svc.PriceCart(cart)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := svc.PriceCart(cart)
		require.NoError(t, err)
		assert.Equal(t, first.FinalCents, again.FinalCents)
	}
}
