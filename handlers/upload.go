package handlers

import (
	"net/http"

	"student-records/apperrors"
	"student-records/filestore"
	"student-records/models"

	"go.uber.org/zap"
)

// UploadHandler stores standalone photo uploads
type UploadHandler struct {
	files *filestore.Store
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(files *filestore.Store) *UploadHandler {
	return &UploadHandler{files: files}
}

// UploadPhoto handles POST /upload - returns the generated filename for a later student write
func (h *UploadHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	form, err := parseRequestForm(w, r, h.files.MaxBytes())
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.cleanup()

	fh := form.file("photo")
	if fh == nil {
		writeError(w, r, apperrors.NewValidationError("No file uploaded"))
		return
	}
	if err := checkImage(h.files, fh); err != nil {
		writeError(w, r, err)
		return
	}

	name := filestore.GeneratedName(fh.Filename)
	if err := savePhoto(h.files, fh, name); err != nil {
		writeError(w, r, err)
		return
	}

	logRequest(r, "info", "File uploaded successfully", zap.String("filename", name), zap.Int64("size", fh.Size))

	writeJSON(w, r, http.StatusOK, models.UploadResponse{
		Status:   models.StatusSuccess,
		Message:  "File uploaded successfully",
		Filename: name,
	})
}
