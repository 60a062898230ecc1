package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcontent-api/internal/application/opportunity"
	"github.com/wcontent-api/internal/domain"
)

const msgApplicationSubmitted = "Application submitted successfully"

// OpportunityHandler serves opportunity postings and their applications.
type OpportunityHandler struct {
	svc opportunity.Service
}

func NewOpportunityHandler(svc opportunity.Service) *OpportunityHandler {
	return &OpportunityHandler{svc: svc}
}

func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOpportunityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.svc.Create(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OpportunityHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListAll(r.Context())
	h.writeList(w, r, list, err)
}

func (h *OpportunityHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByOwner(r.Context(), chi.URLParam(r, "userId"))
	h.writeList(w, r, list, err)
}

func (h *OpportunityHandler) writeList(w http.ResponseWriter, r *http.Request, list []domain.Opportunity, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Opportunity{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OpportunityHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req domain.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.Apply(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApplicationEnvelope{Message: msgApplicationSubmitted, Applicant: a})
}

func (h *OpportunityHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListApplicants(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OpportunityHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.MyApplications(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
