package httpapi

import (
	"fmt"
	"net/http"
)

type createMonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	months, err := h.budget.Months(r.Context(), u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// CreateMonth gets or creates the named period. The handler is
// deliberately idempotent: first touch seeds the month, later calls
// return the existing one.
func (h *Handler) CreateMonth(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req createMonthRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.budget.GetOrCreateMonth(r.Context(), u.ID, req.Year, req.Month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "month.create", "month", m.ID, fmt.Sprintf("%d-%02d", m.Year, m.Month))
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) CurrentMonth(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	sum, err := h.budget.CurrentMonth(r.Context(), u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}

	sum, err := h.budget.Summary(r.Context(), monthID, u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handler) CloseMonth(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}

	m, err := h.budget.CloseMonth(r.Context(), monthID, u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "month.close", "month", m.ID, fmt.Sprintf("%d-%02d", m.Year, m.Month))
	writeJSON(w, http.StatusOK, m)
}
