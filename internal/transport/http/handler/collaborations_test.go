package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wcontent-api/internal/domain"
	jwtinfra "github.com/wcontent-api/internal/infrastructure/jwt"
	"github.com/wcontent-api/internal/transport/http/middleware"
)

func collabRouter(svc *mockCollabSvc) http.Handler {
	h := NewCollaborationHandler(svc)
	r := chi.NewRouter()
	r.Post("/collabration/addCollab/{id}", h.Create)
	r.Get("/collabration/getCollabOfUser/{id}", h.ListByUser)
	r.Get("/collabration/getCollabOfAllUsers", h.ListAll)
	r.Post("/collabration/deleteCollab/{id}", h.Delete)
	r.Post("/collabration/applyForCollab/{collabId}", h.Apply)
	r.Get("/collabration/getCollabRequests/{collabId}", h.ListRequests)
	return r
}

func TestAddCollab_ReturnsAccount(t *testing.T) {
	svc := &mockCollabSvc{}
	req := domain.CreateCollaborationRequest{Title: "Podcast", Description: "Guest spot"}
	svc.On("Create", mock.Anything, "u1", req).Return(&domain.Account{AccountID: "u1", Collaborations: []string{"c1"}}, nil)

	rr := do(t, collabRouter(svc), http.MethodPost, "/collabration/addCollab/u1", req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"collaborations":["c1"]`)
}

func TestGetCollabOfUser_UnknownUser(t *testing.T) {
	svc := &mockCollabSvc{}
	svc.On("ListByUser", mock.Anything, "ghost").Return(nil, fmt.Errorf("User not found: %w", domain.ErrNotFound))

	rr := do(t, collabRouter(svc), http.MethodGet, "/collabration/getCollabOfUser/ghost", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetCollabOfAllUsers_EmptyIsArray(t *testing.T) {
	svc := &mockCollabSvc{}
	svc.On("ListAll", mock.Anything).Return(nil, nil)

	rr := do(t, collabRouter(svc), http.MethodGet, "/collabration/getCollabOfAllUsers", nil)

	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestDeleteCollab_OK(t *testing.T) {
	svc := &mockCollabSvc{}
	svc.On("Delete", mock.Anything, "c1", "").Return(nil)

	rr := do(t, collabRouter(svc), http.MethodPost, "/collabration/deleteCollab/c1", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), msgCollabDeleted)
}

func TestDeleteCollab_NotCreatorForbidden(t *testing.T) {
	svc := &mockCollabSvc{}
	svc.On("Delete", mock.Anything, "c1", "u2").
		Return(fmt.Errorf("only the creator can delete this collaboration: %w", domain.ErrForbidden))

	req := httptest.NewRequest(http.MethodPost, "/collabration/deleteCollab/c1", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ClaimsKey, &jwtinfra.Claims{AccountID: "u2"}))
	rr := httptest.NewRecorder()
	collabRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), domain.KindForbidden)
	svc.AssertExpectations(t)
}

func TestApplyForCollab_OK(t *testing.T) {
	svc := &mockCollabSvc{}
	req := domain.CollabApplyRequest{RequesterName: "Bob", RequesterEmail: "bob@x.io", Message: "hi"}
	svc.On("Apply", mock.Anything, "c1", req).Return(&domain.CollabRequest{RequestID: "r1"}, nil)

	rr := do(t, collabRouter(svc), http.MethodPost, "/collabration/applyForCollab/c1", req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), msgCollabRequested)
}

func TestGetCollabRequests_NotFound(t *testing.T) {
	svc := &mockCollabSvc{}
	svc.On("ListRequests", mock.Anything, "c9").Return(nil, fmt.Errorf("Collaboration not found: %w", domain.ErrNotFound))

	rr := do(t, collabRouter(svc), http.MethodGet, "/collabration/getCollabRequests/c9", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Collaboration not found", decodeError(t, rr).Error)
}
