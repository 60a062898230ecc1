package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcontent-api/internal/application/collaboration"
	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/transport/http/middleware"
)

const (
	msgCollabRequested = "Collaboration request submitted successfully!"
	msgCollabDeleted   = "Collabration deleted successfully"
)

// CollaborationHandler serves collaboration posts and join requests.
type CollaborationHandler struct {
	svc collaboration.Service
}

func NewCollaborationHandler(svc collaboration.Service) *CollaborationHandler {
	return &CollaborationHandler{svc: svc}
}

// Create responds with the creator's account, whose collaboration list now includes the new post.
func (h *CollaborationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCollaborationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.Create(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *CollaborationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "id"))
	writeCollabs(w, r, list, err)
}

func (h *CollaborationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListAll(r.Context())
	writeCollabs(w, r, list, err)
}

func writeCollabs(w http.ResponseWriter, r *http.Request, list []domain.Collaboration, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Collaboration{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Delete checks ownership only when the request carries a token.
func (h *CollaborationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var actorID string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actorID = claims.AccountID
	}
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), actorID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: msgCollabDeleted})
}

func (h *CollaborationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req domain.CollabApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cr, err := h.svc.Apply(r.Context(), chi.URLParam(r, "collabId"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CollabRequestEnvelope{Message: msgCollabRequested, Request: cr})
}

func (h *CollaborationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListRequests(r.Context(), chi.URLParam(r, "collabId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
