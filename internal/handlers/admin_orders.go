package handlers

import (
	"fmt"
	"net/http"
	"net/url"
)

// AdminOrders lists every order. Query parameters sort, dir and status
// control the table.
func (h *Handler) AdminOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.Orders.ListAll(r.Context(), q.Get("sort"), q.Get("dir"), q.Get("status"))
	if err != nil {
		h.fail(w, r, err, "/dashboard")
		return
	}
	h.render(w, r, "orders_admin.html", map[string]interface{}{
		"View": view,
	})
}

// AdminUpdateOrder edits any order. The date is not editable here.
func (h *Handler) AdminUpdateOrder(w http.ResponseWriter, r *http.Request) {
	back := adminOrdersURL(r)
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, errOrderNotFound, back)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, back, flashError, "Invalid form submission.")
		return
	}

	order, err := h.Orders.AdminUpdate(r.Context(), id, orderUpdateForm(r, false))
	if err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.redirectWithFlash(w, r, back, flashSuccess, fmt.Sprintf("Order %d updated by admin.", order.ID))
}

// adminOrdersURL keeps the table's sort and filter across an update.
func adminOrdersURL(r *http.Request) string {
	q := url.Values{}
	for _, key := range []string{"sort", "dir", "status"} {
		if v := r.URL.Query().Get(key); v != "" {
			q.Set(key, v)
		}
	}
	if len(q) == 0 {
		return "/admin/orders"
	}
	return "/admin/orders?" + q.Encode()
}
