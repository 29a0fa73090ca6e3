package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type stubProductRepo struct {
	product   *domain.Product
	list      []domain.Product
	err       error
	lastInput productrepo.UpsertInput
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.list, s.err
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductRepo) Create(_ context.Context, in productrepo.UpsertInput) (*domain.Product, error) {
	s.lastInput = in
	return s.product, s.err
}

func (s *stubProductRepo) Update(_ context.Context, _ string, in productrepo.UpsertInput) (*domain.Product, error) {
	s.lastInput = in
	return s.product, s.err
}

func (s *stubProductRepo) Delete(_ context.Context, _ string) error {
	return s.err
}

func (s *stubProductRepo) UpsertByName(_ context.Context, in productrepo.UpsertInput) (*domain.Product, error) {
	s.lastInput = in
	return s.product, s.err
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubProductRepo{})

	cases := []Input{
		{Name: "", PriceCents: 100, Stock: 1},
		{Name: "   ", PriceCents: 100, Stock: 1},
		{Name: "Laptop", PriceCents: -1, Stock: 1},
		{Name: "Laptop", PriceCents: 100, Stock: -1},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), in)
		var verr domain.ValidationError
		require.ErrorAs(t, err, &verr, "input %+v", in)
	}
}

func TestCreateTrimsName(t *testing.T) {
	repo := &stubProductRepo{product: &domain.Product{ID: "p1", Name: "Laptop"}}
	svc := New(repo)

	_, err := svc.Create(context.Background(), Input{Name: "  Laptop  ", PriceCents: 159999, Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", repo.lastInput.Name)
	assert.Equal(t, int64(159999), repo.lastInput.PriceCents)
}

func TestCreateZeroPriceAndStockAllowed(t *testing.T) {
	repo := &stubProductRepo{product: &domain.Product{ID: "p1"}}
	svc := New(repo)

	_, err := svc.Create(context.Background(), Input{Name: "Freebie", PriceCents: 0, Stock: 0})
	require.NoError(t, err)
}

func TestUpdateValidation(t *testing.T) {
	svc := New(&stubProductRepo{})

	_, err := svc.Update(context.Background(), "p1", Input{Name: "", PriceCents: 100})
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc := New(&stubProductRepo{err: domain.ErrNotFound})

	_, err := svc.Update(context.Background(), "missing", Input{Name: "Laptop", PriceCents: 100, Stock: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePropagatesNotFound(t *testing.T) {
	svc := New(&stubProductRepo{err: domain.ErrNotFound})

	err := svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
