package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubOrderRepo struct {
	order      *domain.Order
	getErr     error
	userOrders []domain.Order
	allOrders  []domain.Order
	updated    *domain.Order
	updateErr  error
	bulkCount  int
	bulkErr    error

	lastUserID string
	lastStatus domain.OrderStatus
	lastIDs    []string
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.lastUserID = userID
	return s.userOrders, nil
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.allOrders, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ string, status domain.OrderStatus) (*domain.Order, error) {
	s.lastStatus = status
	return s.updated, s.updateErr
}

func (s *stubOrderRepo) BulkUpdateStatus(_ context.Context, ids []string, status domain.OrderStatus) (int, error) {
	s.lastIDs = ids
	s.lastStatus = status
	return s.bulkCount, s.bulkErr
}

func (s *stubOrderRepo) BulkDelete(_ context.Context, ids []string) (int, error) {
	s.lastIDs = ids
	return s.bulkCount, s.bulkErr
}

func TestListScopedToOwner(t *testing.T) {
	mine := []domain.Order{{ID: "o1", UserID: "u1"}}
	repo := &stubOrderRepo{userOrders: mine, allOrders: []domain.Order{{ID: "o1"}, {ID: "o2"}}}
	svc := &Service{orders: repo}

	got, err := svc.List(context.Background(), &domain.User{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, mine, got)
	assert.Equal(t, "u1", repo.lastUserID)
}

func TestListStaffSeesAll(t *testing.T) {
	all := []domain.Order{{ID: "o1"}, {ID: "o2"}}
	repo := &stubOrderRepo{allOrders: all}
	svc := &Service{orders: repo}

	got, err := svc.List(context.Background(), &domain.User{ID: "staff", IsStaff: true})
	require.NoError(t, err)
	assert.Equal(t, all, got)
}

func TestGetHidesForeignOrder(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "o1", UserID: "owner"}}
	svc := &Service{orders: repo}

	_, err := svc.Get(context.Background(), &domain.User{ID: "intruder"}, "o1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStaffSeesForeignOrder(t *testing.T) {
	order := &domain.Order{ID: "o1", UserID: "owner"}
	svc := &Service{orders: &stubOrderRepo{order: order}}

	got, err := svc.Get(context.Background(), &domain.User{ID: "staff", IsStaff: true}, "o1")
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestGetOwnOrder(t *testing.T) {
	order := &domain.Order{ID: "o1", UserID: "u1"}
	svc := &Service{orders: &stubOrderRepo{order: order}}

	got, err := svc.Get(context.Background(), &domain.User{ID: "u1"}, "o1")
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{}}

	_, err := svc.UpdateStatus(context.Background(), "o1", domain.OrderStatus("Shipped"))
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	repo := &stubOrderRepo{updated: &domain.Order{ID: "o1", Status: domain.OrderPending}}
	svc := &Service{orders: repo}

	// Completed back to Pending is allowed; there is no transition graph.
	_, err := svc.UpdateStatus(context.Background(), "o1", domain.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, repo.lastStatus)
}

func TestBulkUpdateStatusRequiresIDs(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{}}

	_, err := svc.BulkUpdateStatus(context.Background(), nil, domain.OrderCompleted)
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestBulkUpdateStatusReturnsRowCount(t *testing.T) {
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	repo := &stubOrderRepo{bulkCount: 2}
	svc := &Service{orders: repo}

	// A missing id is skipped, not an error.
	n, err := svc.BulkUpdateStatus(context.Background(), ids, domain.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ids, repo.lastIDs)
}

func TestBulkDeleteRequiresIDs(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{}}

	_, err := svc.BulkDelete(context.Background(), []string{})
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestBulkDeleteReturnsRowCount(t *testing.T) {
	repo := &stubOrderRepo{bulkCount: 1}
	svc := &Service{orders: repo}

	n, err := svc.BulkDelete(context.Background(), []string{"o1", "gone"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
