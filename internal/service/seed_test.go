package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
)

func TestSeeder_Idempotent(t *testing.T) {
	s := newTestStore(t)
	seeder := service.NewSeeder(s, clock).WithHashCost(bcrypt.MinCost)
	ctx := context.Background()

	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))

	accounts, err := s.CountAccounts(ctx)
	require.NoError(t, err)
	parts, err := s.CountParts(ctx)
	require.NoError(t, err)
	orders, err := s.CountOrders(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, accounts)
	assert.Equal(t, 3, parts)
	assert.Equal(t, 3, orders)
}

func TestSeeder_Data(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, service.NewSeeder(s, clock).WithHashCost(bcrypt.MinCost).Seed(ctx))

	accounts := newAccounts(s)
	admin, err := accounts.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	user, err := accounts.Authenticate(ctx, "user", "user123")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin())

	profile, err := accounts.Get(ctx, user.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "Beta Corp", profile.Company)

	gear, err := s.GetPartByName(ctx, "Gear A")
	require.NoError(t, err)
	assert.True(t, gear.Price.Equal(decimal.RequireFromString("12.50")))

	orders := service.NewOrders(s, clock)
	current, err := orders.ListCurrent(ctx, user.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, 10, current[0].Quantity)
	assert.Equal(t, models.StatusPending, current[0].Status)
	assert.Equal(t, "2024-06-15", current[0].Date.String())
	require.True(t, current[0].HasPart())
	assert.Equal(t, gear.ID, *current[0].PartID)

	previous, err := orders.ListPrevious(ctx, user.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, previous, 1)
	assert.True(t, previous[0].Price.Equal(decimal.RequireFromString("7.00")))
}

func TestSeeder_KeepsExistingAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	register(t, s, "admin", "")

	require.NoError(t, service.NewSeeder(s, clock).WithHashCost(bcrypt.MinCost).Seed(ctx))

	accounts := newAccounts(s)
	id, err := accounts.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.False(t, id.IsAdmin())

	n, err := s.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
