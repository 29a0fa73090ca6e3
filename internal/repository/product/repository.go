package product

import (
	"context"

	"storefront/internal/domain"
)

type UpsertInput struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Stock       int
}

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in UpsertInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpsertInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// UpsertByName inserts or refreshes a product keyed on its name; used by
	// the seed command.
	UpsertByName(ctx context.Context, in UpsertInput) (*domain.Product, error)
}
