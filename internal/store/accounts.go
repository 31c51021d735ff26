package store

import (
	"context"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
)

const accountColumns = `id, username, password_hash, privilege, company, shipping_address, contact_info`

// CreateAccount inserts the account and returns its id. A taken username
// yields ErrDuplicate.
func (s *Store) CreateAccount(ctx context.Context, a *models.Account) (int64, error) {
	query := `
		INSERT INTO accounts (username, password_hash, privilege, company, shipping_address, contact_info)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	var id int64
	err := s.get(ctx, &id, query, a.Username, a.PasswordHash, a.Privilege, a.Company, a.ShippingAddress, a.ContactInfo)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	var a models.Account
	if err := s.get(ctx, &a, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// GetAccountByUsername matches the username exactly, case included.
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	if err := s.get(ctx, &a, `SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.selectAll(ctx, &accounts, `SELECT `+accountColumns+` FROM accounts ORDER BY id`); err != nil {
		return nil, translate(err)
	}
	return accounts, nil
}

func (s *Store) CountAccounts(ctx context.Context) (int, error) {
	var n int
	if err := s.get(ctx, &n, `SELECT COUNT(*) FROM accounts`); err != nil {
		return 0, err
	}
	return n, nil
}
