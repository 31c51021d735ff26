package handlers

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/apperr"
)

var errPartNotFound = apperr.NewNotFound("Part not found.")

func (h *Handler) ListParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.Parts.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "/dashboard")
		return
	}
	h.render(w, r, "parts.html", map[string]interface{}{
		"Parts": parts,
	})
}

func (h *Handler) NewPartForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "part_form.html", map[string]interface{}{
		"Action": "/parts/new",
	})
}

// CreatePart treats a missing or unparsable price as zero.
func (h *Handler) CreatePart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/parts/new", flashError, "Invalid form submission.")
		return
	}
	name, _ := formValue(r, fieldPartName)
	size, _ := formValue(r, fieldPartSize)
	price := decimal.Zero
	if v, ok := formValue(r, fieldPartPrice); ok {
		if d, ok := parseDecimal(v); ok {
			price = d
		}
	}

	if _, err := h.Parts.Create(r.Context(), name, size, price); err != nil {
		h.fail(w, r, err, "/parts/new")
		return
	}
	h.redirectWithFlash(w, r, "/parts", flashSuccess, "Part created.")
}

func (h *Handler) EditPartForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, errPartNotFound, "/parts")
		return
	}
	part, err := h.Parts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "/parts")
		return
	}
	h.render(w, r, "part_form.html", map[string]interface{}{
		"Part":   part,
		"Action": fmt.Sprintf("/parts/%d/edit", part.ID),
	})
}

func (h *Handler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, errPartNotFound, "/parts")
		return
	}
	formURL := fmt.Sprintf("/parts/%d/edit", id)
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, formURL, flashError, "Invalid form submission.")
		return
	}
	if _, err := h.Parts.Update(r.Context(), id, partUpdateForm(r)); err != nil {
		h.failEdit(w, r, err, formURL, "/parts")
		return
	}
	h.redirectWithFlash(w, r, "/parts", flashSuccess, "Part updated.")
}
