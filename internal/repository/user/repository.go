package user

import (
	"context"

	"storefront/internal/domain"
)

type CreateUserInput struct {
	Email        string
	Name         string
	PasswordHash string
	IsStaff      bool
}

type Repository interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
