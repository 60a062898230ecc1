package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wcontent-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type ApplicationEnvelope struct {
	Message   string            `json:"message"`
	Applicant *domain.Applicant `json:"applicant"`
}

type CollabRequestEnvelope struct {
	Message string                `json:"message"`
	Request *domain.CollabRequest `json:"request"`
}

type UploadEnvelope struct {
	URL  string               `json:"url"`
	File *domain.UploadedFile `json:"file"`
}

var statusByKind = map[string]int{
	domain.KindValidation:         http.StatusBadRequest,
	domain.KindInvalidOTP:         http.StatusBadRequest,
	domain.KindDuplicateAccount:   http.StatusConflict,
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindInvalidCredentials: http.StatusUnauthorized,
	domain.KindForbidden:          http.StatusForbidden,
}

var sentinels = []error{
	domain.ErrNotFound,
	domain.ErrConflict,
	domain.ErrUnauthorized,
	domain.ErrForbidden,
	domain.ErrBadRequest,
	domain.ErrInvalidOTP,
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and kind. Internal errors are logged and
// reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.Kind(err)
	status, ok := statusByKind[kind]
	if !ok {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Error: "internal server error", Kind: domain.KindInternal})
		return
	}
	writeJSON(w, status, ErrorEnvelope{Error: publicMessage(err), Kind: kind})
}

// publicMessage drops the trailing sentinel text added by %w wrapping.
func publicMessage(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		if errors.Is(err, s) {
			msg = strings.TrimSuffix(msg, ": "+s.Error())
		}
	}
	return msg
}

func badRequest(msg string) error {
	return fmt.Errorf("%s: %w", msg, domain.ErrBadRequest)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}
