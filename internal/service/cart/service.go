package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

type Service struct {
	carts    cartRepo
	products productRepo
}

type cartRepo interface {
	GetOrCreateByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, productID string, quantity int) (*domain.CartLine, error)
	SetLineQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, userID, lineID string) error
	Clear(ctx context.Context, userID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(carts cartrepo.Repository, products productRepo) *Service {
	return &Service{carts: carts, products: products}
}

// Get returns the user's cart, creating it on first access.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.GetOrCreateByUser(ctx, userID)
}

// Add puts quantity units of the product into the user's cart, incrementing
// an existing line for the same product. Stock is not checked here; carts may
// reference products whose stock later drops, and validation happens at
// checkout.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, domain.ValidationError("quantity must be positive")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		return nil, err
	}

	cart, err := s.carts.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.carts.AddLine(ctx, cart.ID, productID, quantity)
}

// SetQuantity replaces a line's quantity. Zero is not accepted; remove the
// line instead.
func (s *Service) SetQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, domain.ValidationError("quantity must be positive")
	}
	return s.carts.SetLineQuantity(ctx, userID, lineID, quantity)
}

func (s *Service) Remove(ctx context.Context, userID, lineID string) error {
	return s.carts.RemoveLine(ctx, userID, lineID)
}

// Clear empties the user's cart; clearing an already-empty cart is a no-op.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}
