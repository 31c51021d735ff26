package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/auth"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) CreateOrder(ctx context.Context, o *models.Order) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateOrder(ctx context.Context, o *models.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderStore) ListAccountOrders(ctx context.Context, accountID int64, statuses []models.Status, limit int) ([]models.Order, error) {
	args := m.Called(ctx, accountID, statuses, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) ListOrders(ctx context.Context, opts models.OrderListOptions) ([]models.Order, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) GetPart(ctx context.Context, id int64) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockOrderStore) ListParts(ctx context.Context) ([]models.Part, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Part), args.Error(1)
}

func (m *MockOrderStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockOrderStore) GetDashboardStats(ctx context.Context) (*store.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.DashboardStats), args.Error(1)
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestOrders_StatusPartition(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	ctx := context.Background()

	for _, st := range models.AllStatuses() {
		placeOrder(t, orders, alice, st, "2024-01-01")
	}

	current, err := orders.ListCurrent(ctx, alice.AccountID, 0)
	require.NoError(t, err)
	previous, err := orders.ListPrevious(ctx, alice.AccountID, 0)
	require.NoError(t, err)

	require.Len(t, current, len(models.CurrentStatuses))
	require.Len(t, previous, len(models.PreviousStatuses))
	for _, o := range current {
		assert.True(t, o.Status.IsCurrent(), "status %s listed as current", o.Status)
	}
	for _, o := range previous {
		assert.True(t, o.Status.IsPrevious(), "status %s listed as previous", o.Status)
	}
}

func TestOrders_ListCurrent_OnlyOwnOrders(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	bob := register(t, s, "bob", "")

	placeOrder(t, orders, alice, models.StatusPending, "2024-01-01")
	mine := placeOrder(t, orders, bob, models.StatusPending, "2024-01-01")

	got, err := orders.ListCurrent(context.Background(), bob.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}

func TestOrders_Create_NonPositiveQuantity(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")

	for _, qty := range []int{0, -3} {
		_, err := orders.Create(context.Background(), service.NewOrder{AccountID: alice.AccountID, Quantity: qty})
		require.ErrorIs(t, err, apperr.Validation)
		assert.Equal(t, "Order quantity must be positive.", apperr.Message(err, ""))
	}

	n, err := s.CountOrders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrders_Create_Defaults(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	ctx := context.Background()

	o, err := orders.Create(ctx, service.NewOrder{AccountID: alice.AccountID, Quantity: 2, Date: "15/06/2024"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, o.Status)
	assert.Equal(t, "2024-06-15", o.Date.String())
	assert.False(t, o.HasPart())

	o, err = orders.Create(ctx, service.NewOrder{AccountID: alice.AccountID, Quantity: 2, Date: "2023-12-31", Status: "Shipped"})
	require.NoError(t, err)
	stored, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", stored.Date.String())
	assert.Equal(t, models.StatusShipped, stored.Status)
	assert.Equal(t, alice.AccountID, stored.AccountID)
}

func TestOrders_Create_RejectsUnknownStatusAndPart(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	ctx := context.Background()

	_, err := orders.Create(ctx, service.NewOrder{AccountID: alice.AccountID, Quantity: 1, Status: "Lost"})
	assert.ErrorIs(t, err, apperr.Validation)

	_, err = orders.Create(ctx, service.NewOrder{AccountID: alice.AccountID, Quantity: 1, PartID: int64Ptr(77)})
	assert.ErrorIs(t, err, apperr.Validation)

	n, err := s.CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrders_Update_NonOwnerForbidden(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	bob := register(t, s, "bob", "")
	ctx := context.Background()

	o := placeOrder(t, orders, alice, models.StatusPending, "2024-01-01")
	before, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)

	_, err = orders.Update(ctx, o.ID, bob, service.OrderUpdate{Quantity: intPtr(99), Status: strPtr("Cancelled")})
	require.ErrorIs(t, err, apperr.Forbidden)
	assert.Equal(t, "Unauthorized to modify this order.", apperr.Message(err, ""))

	after, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("order changed after forbidden update (-before +after):\n%s", diff)
	}
}

func TestOrders_Update_AdminMayEditAnyOrder(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	admin := register(t, s, "boss", "admin")

	o := placeOrder(t, orders, alice, models.StatusPending, "2024-01-01")

	updated, err := orders.Update(context.Background(), o.ID, admin, service.OrderUpdate{Status: strPtr("Completed")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, alice.AccountID, updated.AccountID)
}

func TestOrders_Update_Fields(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	ctx := context.Background()
	gear, err := s.CreatePart(ctx, &models.Part{Name: "Gear", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)

	o, err := orders.Create(ctx, service.NewOrder{
		AccountID: alice.AccountID,
		PartID:    &gear,
		Quantity:  5,
		Price:     decimal.NewFromInt(15),
		Date:      "2024-02-02",
	})
	require.NoError(t, err)

	// omitted fields keep their value and a bad date is ignored
	got, err := orders.Update(ctx, o.ID, alice, service.OrderUpdate{Quantity: intPtr(7), Date: strPtr("yesterday")})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, "2024-02-02", got.Date.String())
	assert.True(t, got.Price.Equal(decimal.NewFromInt(15)))
	require.True(t, got.HasPart())
	assert.Equal(t, gear, *got.PartID)

	got, err = orders.Update(ctx, o.ID, alice, service.OrderUpdate{ClearPart: true, Price: decPtr("20.5"), Date: strPtr("2024-03-03")})
	require.NoError(t, err)
	assert.False(t, got.HasPart())
	assert.Equal(t, "2024-03-03", got.Date.String())

	stored, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasPart())
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("20.5")), "price %s", stored.Price)

	_, err = orders.Update(ctx, o.ID, alice, service.OrderUpdate{Quantity: intPtr(0)})
	assert.ErrorIs(t, err, apperr.Validation)
	_, err = orders.Update(ctx, o.ID, alice, service.OrderUpdate{Status: strPtr("Misplaced")})
	assert.ErrorIs(t, err, apperr.Validation)
	_, err = orders.Update(ctx, o.ID, alice, service.OrderUpdate{PartID: int64Ptr(gear + 100)})
	assert.ErrorIs(t, err, apperr.Validation)

	stored, err = s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Quantity)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestOrders_Update_UnknownOrder(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")

	_, err := orders.Update(context.Background(), 12345, alice, service.OrderUpdate{})
	assert.ErrorIs(t, err, apperr.NotFound)

	_, err = orders.AdminUpdate(context.Background(), 12345, service.OrderUpdate{})
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestOrders_ListAll_UnknownSortIsDateDesc(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	bob := register(t, s, "bob", "")
	ctx := context.Background()

	placeOrder(t, orders, alice, models.StatusPending, "2024-01-10")
	placeOrder(t, orders, bob, models.StatusCompleted, "2024-03-01")
	placeOrder(t, orders, alice, models.StatusShipped, "2024-02-14")

	want, err := orders.ListAll(ctx, "date", "desc", "")
	require.NoError(t, err)

	for _, sortField := range []string{"", "nonsense", "DROP TABLE orders"} {
		got, err := orders.ListAll(ctx, sortField, "sideways", "")
		require.NoError(t, err)
		assert.Equal(t, models.SortByDate, got.Sort)
		assert.Equal(t, models.Descending, got.Direction)
		if diff := cmp.Diff(want.Orders, got.Orders); diff != "" {
			t.Errorf("sort %q differs from date desc (-want +got):\n%s", sortField, diff)
		}
	}

	dates := make([]string, 0, len(want.Orders))
	for _, o := range want.Orders {
		dates = append(dates, o.Date.String())
	}
	assert.Equal(t, []string{"2024-03-01", "2024-02-14", "2024-01-10"}, dates)
	assert.Len(t, want.AccountsByID, 2)
}

func TestOrders_ListAll_AliasesAndFilter(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	ctx := context.Background()
	gear, err := s.CreatePart(ctx, &models.Part{Name: "Gear"})
	require.NoError(t, err)

	for i, qty := range []int{3, 1, 2} {
		_, err := orders.Create(ctx, service.NewOrder{
			AccountID: alice.AccountID,
			PartID:    &gear,
			Quantity:  qty,
			Date:      fmt.Sprintf("2024-01-0%d", i+1),
		})
		require.NoError(t, err)
	}
	placeOrder(t, orders, alice, models.StatusCancelled, "2024-01-09")

	view, err := orders.ListAll(ctx, "Order_Quantity", "asc", "Pending")
	require.NoError(t, err)
	assert.Equal(t, models.SortByQuantity, view.Sort)
	assert.Equal(t, "Pending", view.Status)

	quantities := make([]int, 0, len(view.Orders))
	for _, o := range view.Orders {
		quantities = append(quantities, o.Quantity)
	}
	assert.Equal(t, []int{1, 2, 3}, quantities)
	assert.Equal(t, "Gear", view.PartsByID[gear].Name)
}

func TestOrders_Dashboard(t *testing.T) {
	s := newTestStore(t)
	orders := service.NewOrders(s, clock)
	alice := register(t, s, "alice", "")
	admin := register(t, s, "boss", "admin")
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		placeOrder(t, orders, alice, models.StatusProcessing, fmt.Sprintf("2024-01-%02d", i))
	}
	placeOrder(t, orders, alice, models.StatusCancelled, "2024-02-01")
	gear, err := service.NewParts(s).Create(ctx, "Gear", "M", decimal.NewFromInt(5))
	require.NoError(t, err)
	_, err = orders.Create(ctx, service.NewOrder{
		AccountID: admin.AccountID,
		PartID:    &gear.ID,
		Quantity:  2,
		Status:    string(models.StatusPending),
		Date:      "2024-02-01",
	})
	require.NoError(t, err)

	view, err := orders.Dashboard(ctx, alice)
	require.NoError(t, err)
	require.Len(t, view.CurrentOrders, service.DashboardLimit)
	assert.Equal(t, "2024-01-12", view.CurrentOrders[0].Date.String())
	assert.Len(t, view.PreviousOrders, 1)
	assert.Equal(t, 14, view.OrderCount)
	assert.Nil(t, view.OrdersByStatus)
	assert.Nil(t, view.PartOrderCounts)

	view, err = orders.Dashboard(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, view.CurrentOrders, 1)
	assert.Equal(t, map[models.Status]int{
		models.StatusProcessing: 12,
		models.StatusCancelled:  1,
		models.StatusPending:    1,
	}, view.OrdersByStatus)
	assert.Equal(t, []store.PartOrderCount{{PartID: gear.ID, Name: "Gear", OrderCount: 1}}, view.PartOrderCounts)
}

func TestRedirectAfterUpdate(t *testing.T) {
	tests := map[models.Status]string{
		models.StatusPending:    "/orders/current",
		models.StatusProcessing: "/orders/current",
		models.StatusShipped:    "/orders/current",
		models.StatusCompleted:  "/orders/previous",
		models.StatusCancelled:  "/orders/previous",
	}
	for status, want := range tests {
		assert.Equal(t, want, service.RedirectAfterUpdate(status), "status %s", status)
	}
}

func TestOrders_Create_StoreFailure(t *testing.T) {
	repo := new(MockOrderStore)
	orders := service.NewOrders(repo, clock)

	repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).
		Return(int64(0), assert.AnError).
		Once()

	_, err := orders.Create(context.Background(), service.NewOrder{AccountID: 1, Quantity: 1})
	require.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, apperr.Kind(err))
	repo.AssertExpectations(t)
}

func TestOrders_Update_StoreFailureOnSave(t *testing.T) {
	repo := new(MockOrderStore)
	orders := service.NewOrders(repo, clock)
	owner := auth.Identity{AccountID: 1, Privilege: models.PrivilegeStandard}

	repo.On("GetOrder", mock.Anything, int64(5)).
		Return(&models.Order{ID: 5, AccountID: 1, Quantity: 1, Status: models.StatusPending}, nil).
		Once()
	repo.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.Quantity == 3
	})).Return(assert.AnError).Once()

	_, err := orders.Update(context.Background(), 5, owner, service.OrderUpdate{Quantity: intPtr(3)})
	require.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
}

func TestOrders_Dashboard_StatsFailure(t *testing.T) {
	repo := new(MockOrderStore)
	orders := service.NewOrders(repo, clock)

	repo.On("ListAccountOrders", mock.Anything, int64(1), models.CurrentStatuses, service.DashboardLimit).Return([]models.Order{}, nil)
	repo.On("ListAccountOrders", mock.Anything, int64(1), models.PreviousStatuses, service.DashboardLimit).Return([]models.Order{}, nil)
	repo.On("GetDashboardStats", mock.Anything).Return(nil, assert.AnError)

	_, err := orders.Dashboard(context.Background(), auth.Identity{AccountID: 1})
	require.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
}
