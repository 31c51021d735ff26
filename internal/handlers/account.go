package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/auth"
)

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", nil)
}

func (h *Handler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/login", flashError, "Invalid form submission.")
		return
	}
	username, _ := formValue(r, fieldUsername)
	password, _ := formValue(r, fieldPassword)

	id, err := h.Accounts.Authenticate(r.Context(), username, password)
	if err != nil {
		slog.Info("Login failed", "username", username, "ip", clientIP(r))
		h.fail(w, r, err, "/login")
		return
	}

	session := h.session(r)
	session.Values[sessionAccountID] = id.AccountID
	session.Values[sessionPrivilege] = string(id.Privilege)
	session.AddFlash(FlashMessage{Type: flashSuccess, Message: "Logged in successfully."})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful", "account_id", id.AccountID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	for key := range session.Values {
		delete(session.Values, key)
	}
	session.AddFlash(FlashMessage{Type: flashInfo, Message: "Logged out."})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) CreateAccountGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "create_account.html", nil)
}

func (h *Handler) CreateAccountPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/create_account", flashError, "Invalid form submission.")
		return
	}
	if _, err := h.Accounts.Register(r.Context(), registrationForm(r)); err != nil {
		h.fail(w, r, err, "/create_account")
		return
	}
	h.redirectWithFlash(w, r, "/login", flashSuccess, "Account created. Please log in.")
}

func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	account, err := h.Accounts.Get(r.Context(), identity(r).AccountID)
	if err != nil {
		h.fail(w, r, err, "/dashboard")
		return
	}
	h.render(w, r, "account.html", map[string]interface{}{
		"Account": account,
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.Orders.Dashboard(r.Context(), identity(r))
	if err != nil {
		h.fail(w, r, err, "/login")
		return
	}
	h.render(w, r, "dashboard.html", map[string]interface{}{
		"View": view,
	})
}

// Seed loads the demo data. It is open to anyone and safe to repeat.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.Seed(r.Context()); err != nil {
		h.fail(w, r, err, "/login")
		return
	}
	h.redirectWithFlash(w, r, "/login", flashSuccess, "Database seeded.")
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
