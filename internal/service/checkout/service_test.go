package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubMaterializer struct {
	results []error
	order   *domain.Order
	calls   int
	strict  []bool
}

func (s *stubMaterializer) Materialize(_ context.Context, _ string, strict bool) (*domain.Order, error) {
	s.strict = append(s.strict, strict)
	var err error
	if s.calls < len(s.results) {
		err = s.results[s.calls]
	}
	s.calls++
	if err != nil {
		return nil, err
	}
	return s.order, nil
}

func TestCheckoutSuccess(t *testing.T) {
	order := &domain.Order{ID: "o1", Status: domain.OrderPending}
	repo := &stubMaterializer{order: order}
	svc := New(repo, true, nil)

	got, err := svc.Checkout(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, []bool{true}, repo.strict)
}

func TestCheckoutEmptyCartNotRetried(t *testing.T) {
	repo := &stubMaterializer{results: []error{domain.ErrEmptyCart}}
	svc := New(repo, true, nil)

	_, err := svc.Checkout(context.Background(), "user")
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, 1, repo.calls)
}

func TestCheckoutInsufficientStockNotRetried(t *testing.T) {
	stockErr := &domain.InsufficientStockError{ProductID: "p1", Requested: 10, Available: 4}
	repo := &stubMaterializer{results: []error{stockErr}}
	svc := New(repo, true, nil)

	_, err := svc.Checkout(context.Background(), "user")
	var got *domain.InsufficientStockError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, 10, got.Requested)
	assert.Equal(t, 4, got.Available)
	assert.Equal(t, 1, repo.calls)
}

func TestCheckoutRetriesConflictThenSucceeds(t *testing.T) {
	order := &domain.Order{ID: "o1"}
	repo := &stubMaterializer{results: []error{domain.ErrConflict, domain.ErrConflict}, order: order}
	svc := New(repo, true, nil)

	got, err := svc.Checkout(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, order, got)
	assert.Equal(t, 3, repo.calls)
}

func TestCheckoutConflictExhaustsRetries(t *testing.T) {
	repo := &stubMaterializer{results: []error{domain.ErrConflict, domain.ErrConflict, domain.ErrConflict, domain.ErrConflict}}
	svc := New(repo, true, nil)

	_, err := svc.Checkout(context.Background(), "user")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, maxAttempts, repo.calls)
}

func TestCheckoutLegacyModePassesStrictFalse(t *testing.T) {
	repo := &stubMaterializer{order: &domain.Order{ID: "o1"}}
	svc := New(repo, false, nil)

	_, err := svc.Checkout(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, repo.strict)
}

func TestCheckoutContextCancelledDuringBackoff(t *testing.T) {
	repo := &stubMaterializer{results: []error{domain.ErrConflict, domain.ErrConflict, domain.ErrConflict}}
	svc := New(repo, true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Checkout(ctx, "user")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrConflict))
}
