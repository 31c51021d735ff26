// Package service holds the business rules of the dashboard: who may see and
// change which orders, how forms become records and what the demo data is.
package service

import (
	"context"
	"errors"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

type AccountStore interface {
	CreateAccount(ctx context.Context, a *models.Account) (int64, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

type PartStore interface {
	CreatePart(ctx context.Context, p *models.Part) (int64, error)
	GetPart(ctx context.Context, id int64) (*models.Part, error)
	ListParts(ctx context.Context) ([]models.Part, error)
	UpdatePart(ctx context.Context, p *models.Part) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error
	ListAccountOrders(ctx context.Context, accountID int64, statuses []models.Status, limit int) ([]models.Order, error)
	ListOrders(ctx context.Context, opts models.OrderListOptions) ([]models.Order, error)
	GetPart(ctx context.Context, id int64) (*models.Part, error)
	ListParts(ctx context.Context) ([]models.Part, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetDashboardStats(ctx context.Context) (*store.DashboardStats, error)
}

// notFound maps store.ErrNotFound to an apperr.NotFound carrying msg and
// passes every other error through.
func notFound(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, msg, err)
	}
	return err
}
