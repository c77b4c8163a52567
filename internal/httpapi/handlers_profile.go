package httpapi

import (
	"net/http"

	"github.com/dvgamerr/payme/internal/core"
)

type amountRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) UpdateSavings(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.budget.UpdateSavings(r.Context(), u.ID, req.Amount); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "savings.update", "user", u.ID, "")
	writeJSON(w, http.StatusOK, map[string]float64{"savings": req.Amount})
}

func (h *Handler) UpdateRetirementSavings(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.budget.UpdateRetirementSavings(r.Context(), u.ID, req.Amount); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "retirement_savings.update", "user", u.ID, "")
	writeJSON(w, http.StatusOK, map[string]float64{"retirement_savings": req.Amount})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	st, err := h.budget.Settings(r.Context(), u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var st core.Settings
	if err := decodeBody(r, &st); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if st.BaseCurrency == "" || st.CurrencySymbol == "" {
		writeError(w, http.StatusBadRequest, "base_currency and currency_symbol are required")
		return
	}

	if err := h.budget.SaveSettings(r.Context(), u.ID, st); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "settings.update", "user", u.ID, st.BaseCurrency)
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	stats, err := h.budget.Stats(r.Context(), u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	snap, err := h.budget.Export(r.Context(), u.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="payme-export.json"`)
	h.record(r, u.ID, "data.export", "user", u.ID, "")
	writeJSON(w, http.StatusOK, snap)
}

// ImportJSON destructively replaces the account's data with the
// uploaded snapshot.
func (h *Handler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	var snap core.Snapshot
	if err := decodeBody(r, &snap); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.budget.Import(r.Context(), u.ID, snap); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "data.import", "user", u.ID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
