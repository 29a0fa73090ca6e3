package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

// respondError maps domain errors onto HTTP statuses. Unknown errors become
// an opaque 500 so internals do not leak.
func respondError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	var validationErr domain.ValidationError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error(), "insufficientStock": stockErr})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyCart.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrAlreadyExists.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent modification, retry the request"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type cartLinePayload struct {
	domain.CartLine
	TotalCents int64 `json:"totalCents"`
}

type cartPayload struct {
	domain.Cart
	Lines      []cartLinePayload `json:"lines"`
	TotalCents int64             `json:"totalCents"`
}

func toCartPayload(cart *domain.Cart) cartPayload {
	lines := make([]cartLinePayload, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, toCartLinePayload(&l))
	}
	return cartPayload{Cart: *cart, Lines: lines, TotalCents: cart.TotalCents()}
}

func toCartLinePayload(line *domain.CartLine) cartLinePayload {
	return cartLinePayload{CartLine: *line, TotalCents: line.TotalCents()}
}

type orderLinePayload struct {
	domain.OrderLine
	TotalCents int64 `json:"totalCents"`
}

type orderPayload struct {
	domain.Order
	Lines      []orderLinePayload `json:"lines"`
	TotalCents int64              `json:"totalCents"`
}

func toOrderPayload(order *domain.Order) orderPayload {
	lines := make([]orderLinePayload, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, orderLinePayload{OrderLine: l, TotalCents: l.TotalCents()})
	}
	return orderPayload{Order: *order, Lines: lines, TotalCents: order.TotalCents()}
}
