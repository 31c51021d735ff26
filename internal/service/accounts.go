package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/auth"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

var (
	errCredentialsRequired = apperr.NewValidation("Username and password are required.")
	errUsernameTaken       = apperr.NewConflict("Username already exists.")
	errBadCredentials      = apperr.New(apperr.InvalidCredentials, "Invalid username or password.")
)

// Registration is the create-account form after trimming.
type Registration struct {
	Username        string
	Password        string
	Privilege       string
	Company         string
	ShippingAddress string
	ContactInfo     string
}

type Accounts struct {
	repo     AccountStore
	hashCost int
}

func NewAccounts(repo AccountStore) *Accounts {
	return &Accounts{repo: repo, hashCost: bcrypt.DefaultCost}
}

// WithHashCost returns a copy of s that hashes with the given bcrypt cost.
func (s *Accounts) WithHashCost(cost int) *Accounts {
	c := *s
	c.hashCost = cost
	return &c
}

// ResolvePrivilege grants admin only for the literal "admin", in any case.
func ResolvePrivilege(requested string) models.Privilege {
	if strings.EqualFold(strings.TrimSpace(requested), string(models.PrivilegeAdmin)) {
		return models.PrivilegeAdmin
	}
	return models.PrivilegeStandard
}

// Register creates an account. Anyone may ask for admin privilege here; such
// registrations are logged at WARN so they can be audited.
func (s *Accounts) Register(ctx context.Context, reg Registration) (*models.Account, error) {
	username := strings.TrimSpace(reg.Username)
	password := strings.TrimSpace(reg.Password)
	if username == "" || password == "" {
		return nil, errCredentialsRequired
	}

	_, err := s.repo.GetAccountByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, errUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Username:        username,
		PasswordHash:    string(hash),
		Privilege:       ResolvePrivilege(reg.Privilege),
		Company:         strings.TrimSpace(reg.Company),
		ShippingAddress: strings.TrimSpace(reg.ShippingAddress),
		ContactInfo:     strings.TrimSpace(reg.ContactInfo),
	}
	account.ID, err = s.repo.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, errUsernameTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if account.Privilege.IsAdmin() {
		slog.Warn("Self-registered admin account", "account_id", account.ID, "username", username)
	} else {
		slog.Info("Account registered", "account_id", account.ID)
	}
	return account, nil
}

// Authenticate checks the credentials. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *Accounts) Authenticate(ctx context.Context, username, password string) (auth.Identity, error) {
	account, err := s.repo.GetAccountByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return auth.Identity{}, errBadCredentials
		}
		return auth.Identity{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return auth.Identity{}, errBadCredentials
	}
	return auth.Identity{AccountID: account.ID, Privilege: account.Privilege}, nil
}

func (s *Accounts) Get(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, notFound(err, "Account not found.")
	}
	return account, nil
}
