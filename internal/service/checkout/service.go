package checkout

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

const (
	maxAttempts = 3
	retryDelay  = 50 * time.Millisecond
)

type Service struct {
	orders materializer
	strict bool
	logger *zap.Logger
}

type materializer interface {
	Materialize(ctx context.Context, userID string, strict bool) (*domain.Order, error)
}

func New(orders materializer, strict bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, strict: strict, logger: logger}
}

// Checkout materializes the user's cart into an order. Transient conflicts
// from the isolation layer are retried a bounded number of times before being
// surfaced; every other error propagates unchanged.
func (s *Service) Checkout(ctx context.Context, userID string) (*domain.Order, error) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var order *domain.Order
		order, err = s.orders.Materialize(ctx, userID, s.strict)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		s.logger.Warn("checkout conflict",
			zap.String("user_id", userID),
			zap.Int("attempt", attempt),
		)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * retryDelay):
		}
	}
	return nil, err
}
