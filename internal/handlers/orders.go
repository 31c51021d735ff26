package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/models"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
)

var errOrderNotFound = apperr.NewNotFound("Order not found.")

func (h *Handler) CurrentOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, "Current Orders", h.Orders.ListCurrent)
}

func (h *Handler) PreviousOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, "Previous Orders", h.Orders.ListPrevious)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request, title string, list func(context.Context, int64, int) ([]models.Order, error)) {
	orders, err := list(r.Context(), identity(r).AccountID, 0)
	if err != nil {
		h.fail(w, r, err, "/dashboard")
		return
	}
	parts, err := h.partLookup(r)
	if err != nil {
		h.fail(w, r, err, "/dashboard")
		return
	}
	h.render(w, r, "orders.html", map[string]interface{}{
		"Title":     title,
		"Orders":    orders,
		"PartsByID": parts,
	})
}

func (h *Handler) partLookup(r *http.Request) (map[int64]models.Part, error) {
	parts, err := h.Parts.List(r.Context())
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Part, len(parts))
	for _, p := range parts {
		byID[p.ID] = p
	}
	return byID, nil
}

func (h *Handler) NewOrderForm(w http.ResponseWriter, r *http.Request) {
	parts, err := h.Parts.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "/dashboard")
		return
	}
	h.render(w, r, "order_form.html", map[string]interface{}{
		"Parts":  parts,
		"Action": "/orders/new",
	})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/orders/new", flashError, "Invalid form submission.")
		return
	}
	if _, err := h.Orders.Create(r.Context(), newOrderForm(r, identity(r).AccountID)); err != nil {
		h.fail(w, r, err, "/orders/new")
		return
	}
	h.redirectWithFlash(w, r, "/orders/current", flashSuccess, "Order created.")
}

func (h *Handler) EditOrderForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, errOrderNotFound, "/orders/current")
		return
	}
	order, err := h.Orders.Get(r.Context(), id, identity(r))
	if err != nil {
		h.fail(w, r, err, "/orders/current")
		return
	}
	parts, err := h.Parts.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "/dashboard")
		return
	}
	h.render(w, r, "order_form.html", map[string]interface{}{
		"Parts":  parts,
		"Order":  order,
		"Action": fmt.Sprintf("/orders/%d/edit", order.ID),
	})
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, errOrderNotFound, "/orders/current")
		return
	}
	formURL := fmt.Sprintf("/orders/%d/edit", id)
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, formURL, flashError, "Invalid form submission.")
		return
	}

	order, err := h.Orders.Update(r.Context(), id, identity(r), orderUpdateForm(r, true))
	if err != nil {
		h.failEdit(w, r, err, formURL, "/orders/current")
		return
	}
	h.redirectWithFlash(w, r, service.RedirectAfterUpdate(order.Status), flashSuccess, "Order updated.")
}
