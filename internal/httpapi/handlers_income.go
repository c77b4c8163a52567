package httpapi

import (
	"net/http"

	"github.com/dvgamerr/payme/internal/core"
)

type incomeRequest struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type reorderRequest struct {
	OrderedIDs []int64 `json:"ordered_ids"`
}

func (h *Handler) AddIncome(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}
	var req incomeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := h.budget.AddIncome(r.Context(), u.ID, core.IncomeEntry{
		MonthID: monthID,
		Label:   req.Label,
		Amount:  req.Amount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "income.create", "income_entry", e.ID, e.Label)
	writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, entryID := urlID(r, "monthID"), urlID(r, "entryID")
	if monthID == 0 || entryID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req incomeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := h.budget.UpdateIncome(r.Context(), u.ID, core.IncomeEntry{
		ID:      entryID,
		MonthID: monthID,
		Label:   req.Label,
		Amount:  req.Amount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "income.update", "income_entry", e.ID, e.Label)
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, entryID := urlID(r, "monthID"), urlID(r, "entryID")
	if monthID == 0 || entryID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.budget.DeleteIncome(r.Context(), u.ID, monthID, entryID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "income.delete", "income_entry", entryID, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReorderIncome(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.budget.ReorderIncome(r.Context(), u.ID, monthID, req.OrderedIDs); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// CopyIncome copies the previous month's income entries into this one.
func (h *Handler) CopyIncome(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}

	n, err := h.budget.CopyIncomeFromPrevious(r.Context(), u.ID, monthID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "income.copy", "month", monthID, "")
	writeJSON(w, http.StatusOK, map[string]int{"copied": n})
}
