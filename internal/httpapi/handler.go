// Package httpapi exposes the budgeting engine as a JSON REST API.
// Handlers parse and validate the request, delegate to the domain
// services, and map domain errors onto HTTP status codes.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dvgamerr/payme/internal/audit"
	"github.com/dvgamerr/payme/internal/auth"
	"github.com/dvgamerr/payme/internal/budget"
	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

type Handler struct {
	auth    *auth.Service
	budget  *budget.Service
	store   store.Store
	auditor *audit.Recorder
}

func NewHandler(authSvc *auth.Service, budgetSvc *budget.Service, st store.Store, auditor *audit.Recorder) *Handler {
	return &Handler{
		auth:    authSvc,
		budget:  budgetSvc,
		store:   st,
		auditor: auditor,
	}
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps domain errors onto status codes. Ownership
// failures arrive as store.ErrNotFound and map to 404, so a caller
// probing foreign ids learns nothing.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, budget.ErrAlreadyClosed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, budget.ErrNotLastDay),
		errors.Is(err, budget.ErrInvalidSnapshot),
		errors.Is(err, core.ErrEmptyLabel),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidFrequency),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// urlID parses a numeric path parameter; 0 means absent or malformed.
func urlID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}

// record emits one audit event for a completed mutation.
func (h *Handler) record(r *http.Request, userID int64, action, entityType string, entityID int64, details string) {
	if h.auditor == nil {
		return
	}
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	h.auditor.Record(r.Context(), core.AuditEntry{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  ip,
		UserAgent:  r.UserAgent(),
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz fails while the database is unreachable.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.OwnerOf(r.Context(), store.KindMonth, 0); err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
