// Package auth carries the request-scoped identity and the capability checks
// that gate handlers and services.
package auth

import (
	"context"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
)

// Identity is what a logged-in session carries.
type Identity struct {
	AccountID int64
	Privilege models.Privilege
}

func (i Identity) IsAdmin() bool {
	return i.Privilege.IsAdmin()
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Decision is the outcome of a capability check. Err is one of the apperr
// kinds when the check denies.
type Decision struct {
	Allowed bool
	Err     error
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(err error) Decision {
	return Decision{Err: err}
}

func RequireAuthenticated(ctx context.Context) Decision {
	if _, ok := FromContext(ctx); !ok {
		return deny(apperr.New(apperr.Unauthenticated, "Please log in to continue."))
	}
	return allow()
}

func RequireAdmin(ctx context.Context) Decision {
	if d := RequireAuthenticated(ctx); !d.Allowed {
		return d
	}
	id, _ := FromContext(ctx)
	if !id.IsAdmin() {
		return deny(apperr.NewForbidden("Admin access required."))
	}
	return allow()
}

// CanEditOrder allows the order's owner and any admin.
func CanEditOrder(id Identity, order *models.Order) Decision {
	if order.AccountID == id.AccountID || id.IsAdmin() {
		return allow()
	}
	return deny(apperr.NewForbidden("Unauthorized to modify this order."))
}
