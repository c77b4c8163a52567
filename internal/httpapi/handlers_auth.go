package httpapi

import (
	"errors"
	"net/http"

	"github.com/dvgamerr/payme/internal/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID                int64   `json:"id"`
	Username          string  `json:"username"`
	Savings           float64 `json:"savings"`
	RetirementSavings float64 `json:"retirement_savings"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, sess, err := h.auth.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, auth.ErrUsernameTooShort), errors.Is(err, auth.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeDomainError(w, r, err)
		return
	}

	h.setSessionCookie(w, sess)
	h.record(r, u.ID, "auth.register", "user", u.ID, "")
	writeJSON(w, http.StatusCreated, userResponse{
		ID:       u.ID,
		Username: u.Username,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, sess, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.setSessionCookie(w, sess)
	h.record(r, u.ID, "auth.login", "user", u.ID, "")
	writeJSON(w, http.StatusOK, userResponse{
		ID:                u.ID,
		Username:          u.Username,
		Savings:           u.Savings,
		RetirementSavings: u.RetirementSavings,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}
	h.clearSessionCookie(w)
	h.record(r, u.ID, "auth.logout", "user", u.ID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	writeJSON(w, http.StatusOK, userResponse{
		ID:                u.ID,
		Username:          u.Username,
		Savings:           u.Savings,
		RetirementSavings: u.RetirementSavings,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sess auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
