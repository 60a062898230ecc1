package handler

import (
	"net/http"

	fileapp "github.com/wcontent-api/internal/application/file"
	"github.com/wcontent-api/internal/transport/http/middleware"
)

// MaxResumeSize bounds a resume upload, including multipart overhead.
const MaxResumeSize = 10 << 20

// FileHandler handles resume uploads.
type FileHandler struct {
	svc fileapp.Service
}

func NewFileHandler(svc fileapp.Service) *FileHandler { return &FileHandler{svc: svc} }

// UploadResume accepts a multipart form with a "file" part and a "userId"
// field. With authentication on, the token's account wins over the form field.
func (h *FileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxResumeSize)
	if err := r.ParseMultipartForm(MaxResumeSize); err != nil {
		writeError(w, r, badRequest("invalid multipart form"))
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, badRequest("missing file field"))
		return
	}
	defer f.Close()

	ownerID := r.FormValue("userId")
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.AccountID != "" {
		ownerID = claims.AccountID
	}
	uploaded, err := h.svc.UploadResume(r.Context(), fileapp.ResumeInput{
		OwnerID:  ownerID,
		Filename: header.Filename,
		Reader:   f,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadEnvelope{URL: uploaded.URL, File: uploaded})
}
