package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Materialize converts the user's cart into an order in one transaction:
	// it locks the affected product rows, freezes unit prices onto the order
	// lines, decrements stock and clears the cart. With strict set, any line
	// whose quantity exceeds available stock aborts the whole operation with
	// *domain.InsufficientStockError and no writes.
	Materialize(ctx context.Context, userID string, strict bool) (*domain.Order, error)

	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	// BulkUpdateStatus and BulkDelete operate row by row; a failing id does
	// not roll back the ids already processed.
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.OrderStatus) (int, error)
	BulkDelete(ctx context.Context, ids []string) (int, error)
}
