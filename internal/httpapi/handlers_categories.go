package httpapi

import (
	"net/http"

	"github.com/dvgamerr/payme/internal/core"
)

type categoryRequest struct {
	Label         string  `json:"label"`
	DefaultAmount float64 `json:"default_amount"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	out, err := h.budget.Categories(r.Context(), u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.budget.AddCategory(r.Context(), core.BudgetCategory{
		UserID:        u.ID,
		Label:         req.Label,
		DefaultAmount: req.DefaultAmount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "category.create", "budget_category", c.ID, c.Label)
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	categoryID := urlID(r, "categoryID")
	if categoryID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.budget.UpdateCategory(r.Context(), core.BudgetCategory{
		ID:            categoryID,
		UserID:        u.ID,
		Label:         req.Label,
		DefaultAmount: req.DefaultAmount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "category.update", "budget_category", c.ID, c.Label)
	writeJSON(w, http.StatusOK, c)
}

// DeleteCategory removes a category and, through the schema's cascade,
// every budget and item referencing it.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	categoryID := urlID(r, "categoryID")
	if categoryID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.budget.DeleteCategory(r.Context(), u.ID, categoryID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "category.delete", "budget_category", categoryID, "")
	w.WriteHeader(http.StatusNoContent)
}
