package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/auth"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

var fixedNow = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func newAccounts(s service.AccountStore) *service.Accounts {
	return service.NewAccounts(s).WithHashCost(bcrypt.MinCost)
}

func register(t *testing.T, s *store.Store, username, privilege string) auth.Identity {
	t.Helper()
	a, err := newAccounts(s).Register(context.Background(), service.Registration{
		Username:  username,
		Password:  "secret",
		Privilege: privilege,
	})
	require.NoError(t, err)
	return auth.Identity{AccountID: a.ID, Privilege: a.Privilege}
}

func placeOrder(t *testing.T, orders *service.Orders, owner auth.Identity, status models.Status, date string) *models.Order {
	t.Helper()
	o, err := orders.Create(context.Background(), service.NewOrder{
		AccountID: owner.AccountID,
		Quantity:  1,
		Status:    string(status),
		Date:      date,
	})
	require.NoError(t, err)
	return o
}
