package order

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

type Service struct {
	orders orderRepo
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.OrderStatus) (int, error)
	BulkDelete(ctx context.Context, ids []string) (int, error)
}

func New(orders orderrepo.Repository) *Service {
	return &Service{orders: orders}
}

// List returns the caller's orders; staff see every order.
func (s *Service) List(ctx context.Context, user *domain.User) ([]domain.Order, error) {
	if user.IsStaff {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListByUser(ctx, user.ID)
}

// Get returns an order visible to the caller. Non-staff callers only see
// their own orders; anyone else's order reads as not found.
func (s *Service) Get(ctx context.Context, user *domain.User, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff && order.UserID != user.ID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// UpdateStatus sets an order's status. Any enumerated status may follow any
// other; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ValidationError(fmt.Sprintf("invalid status %q", status))
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// BulkUpdateStatus updates each order independently and returns how many rows
// changed; there is no atomicity across the batch.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, status domain.OrderStatus) (int, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError("ids required")
	}
	if !status.Valid() {
		return 0, domain.ValidationError(fmt.Sprintf("invalid status %q", status))
	}
	return s.orders.BulkUpdateStatus(ctx, ids, status)
}

// BulkDelete removes each order independently and returns how many were
// deleted.
func (s *Service) BulkDelete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError("ids required")
	}
	return s.orders.BulkDelete(ctx, ids)
}
