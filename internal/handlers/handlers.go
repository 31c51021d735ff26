// Package handlers is the HTTP surface of the dashboard: routing, sessions,
// flashes and page rendering on top of the services.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/auth"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
)

const (
	sessionName      = "mfg-session"
	sessionAccountID = "account_id"
	sessionPrivilege = "account_privilege"
)

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Accounts     *service.Accounts
	Orders       *service.Orders
	Parts        *service.Parts
	Seeder       *service.Seeder
	DB           Pinger
	SessionStore sessions.Store
	Templates    *TemplateCache
	Limiter      *RateLimiter
}

// NewRouter wires every route. CSRF protection is applied by the caller
// around the returned handler.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware)
	r.Use(IdentityMiddleware(h.SessionStore))

	limited := func(fn http.HandlerFunc) http.Handler {
		if h.Limiter == nil {
			return fn
		}
		return h.Limiter.Middleware(fn)
	}

	r.Get("/", h.Index)
	r.Get("/healthz", h.Healthz)
	r.Get("/login", h.LoginGet)
	r.Method(http.MethodPost, "/login", limited(h.LoginPost))
	r.Get("/logout", h.Logout)
	r.Get("/create_account", h.CreateAccountGet)
	r.Method(http.MethodPost, "/create_account", limited(h.CreateAccountPost))
	r.Get("/seed", h.Seed)

	r.Group(func(r chi.Router) {
		r.Use(h.Gate(auth.RequireAuthenticated))
		r.Get("/dashboard", h.Dashboard)
		r.Get("/account", h.Account)
		r.Get("/orders/current", h.CurrentOrders)
		r.Get("/orders/previous", h.PreviousOrders)
		r.Get("/orders/new", h.NewOrderForm)
		r.Post("/orders/new", h.CreateOrder)
		r.Get("/orders/{id}/edit", h.EditOrderForm)
		r.Post("/orders/{id}/edit", h.UpdateOrder)
		r.Get("/parts", h.ListParts)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.Gate(auth.RequireAdmin))
		r.Get("/admin/orders", h.AdminOrders)
		r.Post("/admin/orders/{id}/update", h.AdminUpdateOrder)
		r.Get("/parts/new", h.NewPartForm)
		r.Post("/parts/new", h.CreatePart)
		r.Get("/parts/{id}/edit", h.EditPartForm)
		r.Post("/parts/{id}/edit", h.UpdatePart)
	})

	return r
}

func (h *Handler) session(r *http.Request) *sessions.Session {
	session, err := h.SessionStore.Get(r, sessionName)
	if err != nil {
		// a stale or tampered cookie; Get still returns a fresh session
		slog.Debug("Discarding unreadable session", "error", err)
	}
	return session
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	session := h.session(r)
	session.AddFlash(FlashMessage{Type: kind, Message: message})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// render executes a page with the common data every page needs. It consumes
// the pending flashes.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		slog.Error("Template not found", "name", name)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session := h.session(r)
	if data == nil {
		data = make(map[string]interface{})
	}
	data["CsrfField"] = csrf.TemplateField(r)
	data["Flashes"] = GetFlash(session)
	if id, ok := auth.FromContext(r.Context()); ok {
		data["Identity"] = id
		data["IsAdmin"] = id.IsAdmin()
	}
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to render template", "name", name, "error", err)
	}
}

// fail surfaces err as an error flash. Kinded errors show their own message
// and go to fallback; Forbidden goes to the dashboard and Unauthenticated to
// the login page. Anything else is logged and shown generically.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	target := fallback
	switch kind := apperr.Kind(err); {
	case kind == nil:
		slog.Error("Request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		h.redirectWithFlash(w, r, target, flashError, "Something went wrong. Please try again.")
		return
	case errors.Is(kind, apperr.Unauthenticated):
		target = "/login"
	case errors.Is(kind, apperr.Forbidden):
		target = "/dashboard"
	}
	h.redirectWithFlash(w, r, target, flashError, apperr.Message(err, "Request failed."))
}

// failEdit sends a missing record to its list page and every other error
// back to the form.
func (h *Handler) failEdit(w http.ResponseWriter, r *http.Request, err error, formURL, listURL string) {
	if errors.Is(err, apperr.NotFound) {
		formURL = listURL
	}
	h.fail(w, r, err, formURL)
}

func identity(r *http.Request) auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
