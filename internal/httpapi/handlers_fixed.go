package httpapi

import (
	"net/http"

	"github.com/dvgamerr/payme/internal/core"
)

// Fixed-expense templates.

type fixedExpenseRequest struct {
	Label        string  `json:"label"`
	Amount       float64 `json:"amount"`
	Frequency    string  `json:"frequency"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchange_rate"`
	DisplayOrder int     `json:"display_order"`
}

func (h *Handler) ListFixedExpenses(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	out, err := h.budget.FixedExpenses(r.Context(), u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) AddFixedExpense(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req fixedExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fe, err := h.budget.AddFixedExpense(r.Context(), core.FixedExpense{
		UserID:       u.ID,
		Label:        req.Label,
		Amount:       req.Amount,
		Frequency:    core.Frequency(req.Frequency),
		Currency:     req.Currency,
		ExchangeRate: req.ExchangeRate,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "fixed_expense.create", "fixed_expense", fe.ID, fe.Label)
	writeJSON(w, http.StatusCreated, fe)
}

func (h *Handler) UpdateFixedExpense(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	expenseID := urlID(r, "expenseID")
	if expenseID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req fixedExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fe, err := h.budget.UpdateFixedExpense(r.Context(), core.FixedExpense{
		ID:           expenseID,
		UserID:       u.ID,
		Label:        req.Label,
		Amount:       req.Amount,
		Frequency:    core.Frequency(req.Frequency),
		Currency:     req.Currency,
		ExchangeRate: req.ExchangeRate,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "fixed_expense.update", "fixed_expense", fe.ID, fe.Label)
	writeJSON(w, http.StatusOK, fe)
}

func (h *Handler) DeleteFixedExpense(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	expenseID := urlID(r, "expenseID")
	if expenseID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.budget.DeleteFixedExpense(r.Context(), u.ID, expenseID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "fixed_expense.delete", "fixed_expense", expenseID, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReorderFixedExpenses(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.budget.ReorderFixedExpenses(r.Context(), u.ID, req.OrderedIDs); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// Per-month fixed instances.

type fixedMonthRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func (h *Handler) AddFixedMonth(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}
	var req fixedMonthRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fm, err := h.budget.AddFixedMonth(r.Context(), u.ID, core.FixedMonth{
		MonthID: monthID,
		Name:    req.Name,
		Amount:  req.Amount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "fixed_month.create", "fixed_month", fm.ID, fm.Name)
	writeJSON(w, http.StatusCreated, fm)
}

func (h *Handler) UpdateFixedMonth(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, fixedID := urlID(r, "monthID"), urlID(r, "fixedID")
	if monthID == 0 || fixedID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req fixedMonthRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fm, err := h.budget.UpdateFixedMonth(r.Context(), u.ID, core.FixedMonth{
		ID:      fixedID,
		MonthID: monthID,
		Name:    req.Name,
		Amount:  req.Amount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "fixed_month.update", "fixed_month", fm.ID, fm.Name)
	writeJSON(w, http.StatusOK, fm)
}

func (h *Handler) DeleteFixedMonth(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, fixedID := urlID(r, "monthID"), urlID(r, "fixedID")
	if monthID == 0 || fixedID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.budget.DeleteFixedMonth(r.Context(), u.ID, monthID, fixedID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "fixed_month.delete", "fixed_month", fixedID, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReorderFixedMonths(w http.ResponseWriter, r *http.Request) {
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

	if err := h.budget.ReorderFixedMonths(r.Context(), u.ID, monthID, req.OrderedIDs); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}
