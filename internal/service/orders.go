package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/auth"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

// DashboardLimit is how many current and previous orders the dashboard shows.
const DashboardLimit = 10

var (
	errQuantity      = apperr.NewValidation("Order quantity must be positive.")
	errUnknownStatus = apperr.NewValidation("Unknown order status.")
	errUnknownPart   = apperr.NewValidation("Selected part does not exist.")
)

// NewOrder is a submitted create-order form. Date is YYYY-MM-DD; anything
// else means today. An empty Status means Pending.
type NewOrder struct {
	AccountID int64
	PartID    *int64
	Quantity  int
	Price     decimal.Decimal
	Status    string
	Date      string
}

// OrderUpdate carries the edited fields of an order. Nil fields keep their
// stored value. ClearPart removes the part reference and wins over PartID.
type OrderUpdate struct {
	PartID    *int64
	ClearPart bool
	Quantity  *int
	Price     *decimal.Decimal
	Status    *string
	Date      *string
}

// AdminOrderView is the admin order table with its lookups.
type AdminOrderView struct {
	Orders       []models.Order
	PartsByID    map[int64]models.Part
	AccountsByID map[int64]models.Account
	Sort         models.OrderSortField
	Direction    models.SortDirection
	Status       string
}

type DashboardView struct {
	Identity       auth.Identity
	CurrentOrders  []models.Order
	PreviousOrders []models.Order
	PartCount      int
	OrderCount     int
	// OrdersByStatus and PartOrderCounts are only filled for admins.
	OrdersByStatus  map[models.Status]int
	PartOrderCounts []store.PartOrderCount
}

type Orders struct {
	repo OrderStore
	now  func() time.Time
}

// NewOrders builds the order service. now defaults to time.Now.
func NewOrders(repo OrderStore, now func() time.Time) *Orders {
	if now == nil {
		now = time.Now
	}
	return &Orders{repo: repo, now: now}
}

func (s *Orders) today() models.Date {
	return models.DateOf(s.now())
}

func (s *Orders) ListCurrent(ctx context.Context, accountID int64, limit int) ([]models.Order, error) {
	orders, err := s.repo.ListAccountOrders(ctx, accountID, models.CurrentStatuses, limit)
	if err != nil {
		return nil, fmt.Errorf("list current orders: %w", err)
	}
	return orders, nil
}

func (s *Orders) ListPrevious(ctx context.Context, accountID int64, limit int) ([]models.Order, error) {
	orders, err := s.repo.ListAccountOrders(ctx, accountID, models.PreviousStatuses, limit)
	if err != nil {
		return nil, fmt.Errorf("list previous orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order for the admin table. Unknown sort fields sort
// by date and any direction other than "asc" sorts descending.
func (s *Orders) ListAll(ctx context.Context, sortField, direction, statusFilter string) (*AdminOrderView, error) {
	view := &AdminOrderView{
		Sort:      models.ParseOrderSortField(sortField),
		Direction: models.ParseSortDirection(direction),
		Status:    strings.TrimSpace(statusFilter),
	}

	orders, err := s.repo.ListOrders(ctx, models.OrderListOptions{
		SortBy:    view.Sort,
		Direction: view.Direction,
		Status:    models.Status(view.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	view.Orders = orders

	parts, err := s.repo.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	view.PartsByID = make(map[int64]models.Part, len(parts))
	for _, p := range parts {
		view.PartsByID[p.ID] = p
	}

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	view.AccountsByID = make(map[int64]models.Account, len(accounts))
	for _, a := range accounts {
		view.AccountsByID[a.ID] = a
	}

	return view, nil
}

func (s *Orders) Create(ctx context.Context, in NewOrder) (*models.Order, error) {
	if in.Quantity <= 0 {
		return nil, errQuantity
	}

	status := models.StatusPending
	if st := strings.TrimSpace(in.Status); st != "" {
		status = models.Status(st)
	}
	if !status.Valid() {
		return nil, errUnknownStatus
	}

	date, err := models.ParseDate(in.Date)
	if err != nil {
		date = s.today()
	}

	if in.PartID != nil {
		if err := s.checkPart(ctx, *in.PartID); err != nil {
			return nil, err
		}
	}

	order := &models.Order{
		AccountID: in.AccountID,
		PartID:    in.PartID,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Status:    status,
		Date:      date,
	}
	order.ID, err = s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			return nil, apperr.Wrap(apperr.Validation, "Order references an unknown account or part.", err)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	slog.Info("Order created", "order_id", order.ID, "account_id", order.AccountID)
	return order, nil
}

// Update edits an order on behalf of actor, who must own it or be an admin.
func (s *Orders) Update(ctx context.Context, orderID int64, actor auth.Identity, upd OrderUpdate) (*models.Order, error) {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if d := auth.CanEditOrder(actor, order); !d.Allowed {
		slog.Warn("Order edit denied", "order_id", orderID, "account_id", actor.AccountID)
		return nil, d.Err
	}
	return s.save(ctx, order, upd)
}

// AdminUpdate edits any order. Callers gate it with auth.RequireAdmin.
func (s *Orders) AdminUpdate(ctx context.Context, orderID int64, upd OrderUpdate) (*models.Order, error) {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, order, upd)
}

// Get returns an order the identity may edit.
func (s *Orders) Get(ctx context.Context, orderID int64, actor auth.Identity) (*models.Order, error) {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if d := auth.CanEditOrder(actor, order); !d.Allowed {
		return nil, d.Err
	}
	return order, nil
}

func (s *Orders) Dashboard(ctx context.Context, id auth.Identity) (*DashboardView, error) {
	current, err := s.ListCurrent(ctx, id.AccountID, DashboardLimit)
	if err != nil {
		return nil, err
	}
	previous, err := s.ListPrevious(ctx, id.AccountID, DashboardLimit)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	view := &DashboardView{
		Identity:       id,
		CurrentOrders:  current,
		PreviousOrders: previous,
		PartCount:      stats.TotalParts,
		OrderCount:     stats.TotalOrders,
	}
	if id.IsAdmin() {
		view.OrdersByStatus = stats.OrdersByStatus
		view.PartOrderCounts = stats.PartOrderCounts
	}
	return view, nil
}

// RedirectAfterUpdate is where an edited order is shown next.
func RedirectAfterUpdate(status models.Status) string {
	if status.IsPrevious() {
		return "/orders/previous"
	}
	return "/orders/current"
}

func (s *Orders) get(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "Order not found.")
	}
	return order, nil
}

func (s *Orders) save(ctx context.Context, order *models.Order, upd OrderUpdate) (*models.Order, error) {
	if err := s.apply(ctx, order, upd); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			return nil, apperr.Wrap(apperr.Validation, errUnknownPart.Message, err)
		}
		return nil, notFound(err, "Order not found.")
	}
	slog.Info("Order updated", "order_id", order.ID, "status", order.Status)
	return order, nil
}

// apply validates upd and copies it onto order. order is left untouched when
// an error is returned.
func (s *Orders) apply(ctx context.Context, order *models.Order, upd OrderUpdate) error {
	next := *order

	switch {
	case upd.ClearPart:
		next.PartID = nil
	case upd.PartID != nil:
		if err := s.checkPart(ctx, *upd.PartID); err != nil {
			return err
		}
		partID := *upd.PartID
		next.PartID = &partID
	}

	if upd.Quantity != nil {
		if *upd.Quantity <= 0 {
			return errQuantity
		}
		next.Quantity = *upd.Quantity
	}
	if upd.Price != nil {
		next.Price = *upd.Price
	}
	if upd.Status != nil {
		status := models.Status(strings.TrimSpace(*upd.Status))
		if !status.Valid() {
			return errUnknownStatus
		}
		next.Status = status
	}
	if upd.Date != nil {
		// unparsable dates keep the stored one
		if date, err := models.ParseDate(*upd.Date); err == nil {
			next.Date = date
		}
	}

	*order = next
	return nil
}

func (s *Orders) checkPart(ctx context.Context, partID int64) error {
	if _, err := s.repo.GetPart(ctx, partID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errUnknownPart
		}
		return fmt.Errorf("lookup part: %w", err)
	}
	return nil
}
