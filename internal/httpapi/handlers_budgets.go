package httpapi

import (
	"net/http"

	"github.com/dvgamerr/payme/internal/core"
)

type budgetRequest struct {
	CategoryID      int64   `json:"category_id"`
	AllocatedAmount float64 `json:"allocated_amount"`
}

func (h *Handler) AddBudget(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}
	var req budgetRequest
	if err := decodeBody(r, &req); err != nil || req.CategoryID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.budget.AddBudget(r.Context(), u.ID, core.MonthlyBudget{
		MonthID:         monthID,
		CategoryID:      req.CategoryID,
		AllocatedAmount: req.AllocatedAmount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "budget.create", "monthly_budget", b.ID, b.CategoryLabel)
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, budgetID := urlID(r, "monthID"), urlID(r, "budgetID")
	if monthID == 0 || budgetID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req struct {
		AllocatedAmount float64 `json:"allocated_amount"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.budget.UpdateBudget(r.Context(), u.ID, monthID, budgetID, req.AllocatedAmount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "budget.update", "monthly_budget", b.ID, b.CategoryLabel)
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, budgetID := urlID(r, "monthID"), urlID(r, "budgetID")
	if monthID == 0 || budgetID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.budget.DeleteBudget(r.Context(), u.ID, monthID, budgetID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "budget.delete", "monthly_budget", budgetID, "")
	w.WriteHeader(http.StatusNoContent)
}
