package service

import (
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

const (
	defaultPageSize  = 12
	featuredPageSize = 8
)

// ProductPage is one page of active catalog products plus totals for paging.
type ProductPage struct {
	Products   []*model.Product
	Total      int
	Page       int
	TotalPages int
}

type CatalogService interface {
	ListProducts(filter model.ProductFilter) (*ProductPage, error)
	FeaturedProducts() ([]*model.Product, error)
	ProductsByCategory(category model.Category, page, limit int) (*ProductPage, error)
	ProductByID(id uuid.UUID) (*model.Product, error)
}

func NewCatalogService(repo model.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

type catalogService struct {
	repo model.ProductRepository
}

func (s *catalogService) ListProducts(filter model.ProductFilter) (*ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}

	var (
		products []*model.Product
		total    int
		g        errgroup.Group
	)
	g.Go(func() (err error) {
		products, err = s.repo.FindActive(filter)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.CountActive(filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:   products,
		Total:      total,
		Page:       filter.Page,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

func (s *catalogService) FeaturedProducts() ([]*model.Product, error) {
	featured := true
	return s.repo.FindActive(model.ProductFilter{
		Featured: &featured,
		Page:     1,
		Limit:    featuredPageSize,
	})
}

func (s *catalogService) ProductsByCategory(category model.Category, page, limit int) (*ProductPage, error) {
	return s.ListProducts(model.ProductFilter{
		Category: &category,
		Page:     page,
		Limit:    limit,
	})
}

func (s *catalogService) ProductByID(id uuid.UUID) (*model.Product, error) {
	return s.repo.Find(id)
}
