package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// GetOrCreateByUser returns the user's cart, creating an empty one on
	// first access. Line unit prices reflect the current catalog.
	GetOrCreateByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddLine creates a line for (cart, product) or increments an existing
	// one by quantity, and returns the resulting line.
	AddLine(ctx context.Context, cartID, productID string, quantity int) (*domain.CartLine, error)
	// SetLineQuantity replaces the quantity of a line owned by the user.
	SetLineQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error)
	// RemoveLine deletes a line owned by the user.
	RemoveLine(ctx context.Context, userID, lineID string) error
	// Clear deletes every line of the user's cart. Clearing a missing or
	// already-empty cart is a no-op.
	Clear(ctx context.Context, userID string) error
}
