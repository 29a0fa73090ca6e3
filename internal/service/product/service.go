package product

import (
	"context"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type Service struct {
	products productrepo.Repository
}

func New(products productrepo.Repository) *Service {
	return &Service{products: products}
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"priceCents"`
	Stock       int    `json:"stock"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ValidationError("name required")
	}
	if in.PriceCents < 0 {
		return domain.ValidationError("price must not be negative")
	}
	if in.Stock < 0 {
		return domain.ValidationError("stock must not be negative")
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, repoInput(in))
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, repoInput(in))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func repoInput(in Input) productrepo.UpsertInput {
	return productrepo.UpsertInput{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
	}
}
