package httpapi

import (
	"net/http"

	"github.com/dvgamerr/payme/internal/core"
)

type itemRequest struct {
	CategoryID  int64   `json:"category_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	SpentOn     string  `json:"spent_on"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID := urlID(r, "monthID")
	if monthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid month id")
		return
	}
	var req itemRequest
	if err := decodeBody(r, &req); err != nil || req.CategoryID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	it, err := h.budget.AddItem(r.Context(), u.ID, core.Item{
		MonthID:     monthID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		SpentOn:     req.SpentOn,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "item.create", "item", it.ID, it.Description)
	writeJSON(w, http.StatusCreated, it)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, itemID := urlID(r, "monthID"), urlID(r, "itemID")
	if monthID == 0 || itemID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req itemRequest
	if err := decodeBody(r, &req); err != nil || req.CategoryID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	it, err := h.budget.UpdateItem(r.Context(), u.ID, core.Item{
		ID:          itemID,
		MonthID:     monthID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		SpentOn:     req.SpentOn,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "item.update", "item", it.ID, it.Description)
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, itemID := urlID(r, "monthID"), urlID(r, "itemID")
	if monthID == 0 || itemID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.budget.DeleteItem(r.Context(), u.ID, monthID, itemID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "item.delete", "item", itemID, "")
	w.WriteHeader(http.StatusNoContent)
}

// MoveItem relocates an item into another month owned by the caller.
func (h *Handler) MoveItem(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	monthID, itemID := urlID(r, "monthID"), urlID(r, "itemID")
	if monthID == 0 || itemID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req struct {
		TargetMonthID int64 `json:"target_month_id"`
	}
	if err := decodeBody(r, &req); err != nil || req.TargetMonthID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	it, err := h.budget.MoveItem(r.Context(), u.ID, monthID, itemID, req.TargetMonthID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.record(r, u.ID, "item.move", "item", it.ID, it.Description)
	writeJSON(w, http.StatusOK, it)
}
