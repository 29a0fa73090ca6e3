package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized indicates a missing or invalid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the identity lacks access to the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a concurrent modification was detected by the
	// isolation layer; the operation is safe to retry.
	ErrConflict = errors.New("conflict")
	// ErrEmptyCart indicates checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError reports malformed or out-of-range input. Handlers map it
// to a 400 response.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// InsufficientStockError is returned by strict-mode checkout when a cart line
// requests more units than the catalog has on hand.
type InsufficientStockError struct {
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
