package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcontent-api/internal/application/account"
	"github.com/wcontent-api/internal/application/verification"
	"github.com/wcontent-api/internal/domain"
)

const (
	msgOTPSent     = "OTP sent to your email for verification. Please check your inbox."
	msgOTPVerified = "OTP verified successfully. Proceed to registration."
	msgUserDeleted = "User deleted successfully"
)

// AccountHandler serves OTP verification, registration, login and account CRUD.
type AccountHandler struct {
	accounts account.Service
	otp      verification.Service
}

func NewAccountHandler(accounts account.Service, otp verification.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts, otp: otp}
}

// RequestOTP reads the email from the query string or a form body.
func (h *AccountHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	if err := h.otp.RequestOTP(r.Context(), r.FormValue("email")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msgOTPSent})
}

func (h *AccountHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if err := h.otp.VerifyOTP(r.Context(), r.FormValue("email"), r.FormValue("otp")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msgOTPVerified})
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AccountHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleAuthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.accounts.GoogleAuth(r.Context(), req.IDToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.accounts.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msgUserDeleted})
}
