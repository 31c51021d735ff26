package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

type seedAccount struct {
	account  models.Account
	password string
}

var seedAccounts = []seedAccount{
	{
		account: models.Account{
			Username:        "admin",
			Privilege:       models.PrivilegeAdmin,
			Company:         "Acme Manufacturing",
			ShippingAddress: "100 Industrial Way",
			ContactInfo:     "admin@acme.example",
		},
		password: "admin123",
	},
	{
		account: models.Account{
			Username:        "user",
			Privilege:       models.PrivilegeStandard,
			Company:         "Beta Corp",
			ShippingAddress: "42 Supply Rd",
			ContactInfo:     "ops@beta.example",
		},
		password: "user123",
	},
}

var seedParts = []models.Part{
	{Name: "Gear A", Size: "M", Price: decimal.RequireFromString("12.50")},
	{Name: "Bolt B", Size: "S", Price: decimal.RequireFromString("0.35")},
	{Name: "Panel C", Size: "L", Price: decimal.RequireFromString("28.00")},
}

var seedOrders = []struct {
	username string
	part     string
	quantity int
	price    string
	status   models.Status
}{
	{"user", "Gear A", 10, "125.00", models.StatusPending},
	{"user", "Bolt B", 20, "7.00", models.StatusCompleted},
	{"admin", "Gear A", 20, "250.00", models.StatusProcessing},
}

// Seeder loads the demo accounts, parts and orders.
type Seeder struct {
	db       *store.Store
	now      func() time.Time
	hashCost int
}

func NewSeeder(db *store.Store, now func() time.Time) *Seeder {
	if now == nil {
		now = time.Now
	}
	return &Seeder{db: db, now: now, hashCost: bcrypt.DefaultCost}
}

// WithHashCost returns a copy of s that hashes with the given bcrypt cost.
func (s *Seeder) WithHashCost(cost int) *Seeder {
	c := *s
	c.hashCost = cost
	return &c
}

// Seed is idempotent. Accounts are created when missing, parts and orders
// only when their table is empty. Everything happens in one transaction.
func (s *Seeder) Seed(ctx context.Context) error {
	err := s.db.InTx(ctx, func(tx *store.Store) error {
		accountIDs, err := s.seedAccounts(ctx, tx)
		if err != nil {
			return err
		}
		partIDs, err := s.seedParts(ctx, tx)
		if err != nil {
			return err
		}
		return s.seedOrders(ctx, tx, accountIDs, partIDs)
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	slog.Info("Database seeded")
	return nil
}

func (s *Seeder) seedAccounts(ctx context.Context, tx *store.Store) (map[string]int64, error) {
	ids := make(map[string]int64, len(seedAccounts))
	for _, sa := range seedAccounts {
		existing, err := tx.GetAccountByUsername(ctx, sa.account.Username)
		if err == nil {
			ids[sa.account.Username] = existing.ID
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(sa.password), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account := sa.account
		account.PasswordHash = string(hash)
		id, err := tx.CreateAccount(ctx, &account)
		if err != nil {
			return nil, fmt.Errorf("create account %s: %w", account.Username, err)
		}
		ids[account.Username] = id
		slog.Debug("Seeded account", "username", account.Username, "account_id", id)
	}
	return ids, nil
}

// seedParts fills an empty parts table and returns the demo part ids by name.
func (s *Seeder) seedParts(ctx context.Context, tx *store.Store) (map[string]int64, error) {
	n, err := tx.CountParts(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return s.existingParts(ctx, tx)
	}

	ids := make(map[string]int64, len(seedParts))
	for _, p := range seedParts {
		part := p
		id, err := tx.CreatePart(ctx, &part)
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", part.Name, err)
		}
		ids[part.Name] = id
	}
	return ids, nil
}

func (s *Seeder) existingParts(ctx context.Context, tx *store.Store) (map[string]int64, error) {
	ids := make(map[string]int64, len(seedParts))
	for _, p := range seedParts {
		part, err := tx.GetPartByName(ctx, p.Name)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ids[p.Name] = part.ID
	}
	return ids, nil
}

func (s *Seeder) seedOrders(ctx context.Context, tx *store.Store, accountIDs, partIDs map[string]int64) error {
	n, err := tx.CountOrders(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	today := models.DateOf(s.now())
	for _, so := range seedOrders {
		order := &models.Order{
			AccountID: accountIDs[so.username],
			Quantity:  so.quantity,
			Price:     decimal.RequireFromString(so.price),
			Status:    so.status,
			Date:      today,
		}
		if id, ok := partIDs[so.part]; ok {
			order.PartID = &id
		}
		if _, err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order for %s: %w", so.username, err)
		}
	}
	return nil
}
