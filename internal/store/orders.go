package store

import (
	"context"
	"fmt"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, account_id, part_id, quantity, price, status, order_date`

var orderSortColumns = map[models.OrderSortField]string{
	models.SortByDate:      "order_date",
	models.SortByPrice:     "price",
	models.SortByQuantity:  "quantity",
	models.SortByStatus:    "status",
	models.SortByAccountID: "account_id",
}

// CreateOrder inserts the order and returns its id. An unknown account or
// part yields ErrInvalidReference.
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) (int64, error) {
	query := `
		INSERT INTO orders (account_id, part_id, quantity, price, status, order_date)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	var id int64
	err := s.get(ctx, &id, query, o.AccountID, o.PartID, o.Quantity, o.Price, string(o.Status), o.Date)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := s.get(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id); err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// UpdateOrder overwrites every mutable column. The owner never changes.
func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	query := `
		UPDATE orders
		SET part_id = ?, quantity = ?, price = ?, status = ?, order_date = ?
		WHERE id = ?
	`
	res, err := s.exec(ctx, query, o.PartID, o.Quantity, o.Price, string(o.Status), o.Date, o.ID)
	if err != nil {
		return translate(err)
	}
	return expectRow(res)
}

// ListAccountOrders returns the account's orders whose status is one of
// statuses, newest first. A limit of zero or less means no limit.
func (s *Store) ListAccountOrders(ctx context.Context, accountID int64, statuses []models.Status, limit int) ([]models.Order, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}

	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE account_id = ? AND status IN (?)
		ORDER BY order_date DESC, id DESC`
	args := []interface{}{accountID, names}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expand status list: %w", err)
	}

	var orders []models.Order
	if err := s.selectAll(ctx, &orders, query, args...); err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// ListOrders returns every order sorted per opts. Rows with equal sort keys
// are ordered by id in the same direction.
func (s *Store) ListOrders(ctx context.Context, opts models.OrderListOptions) ([]models.Order, error) {
	column, ok := orderSortColumns[opts.SortBy]
	if !ok {
		column = "order_date"
	}
	dir := "DESC"
	if opts.Direction == models.Ascending {
		dir = "ASC"
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(opts.Status))
	}
	query += fmt.Sprintf(` ORDER BY %s %s, id %s`, column, dir, dir)

	var orders []models.Order
	if err := s.selectAll(ctx, &orders, query, args...); err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (s *Store) CountOrders(ctx context.Context) (int, error) {
	var n int
	if err := s.get(ctx, &n, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, err
	}
	return n, nil
}
