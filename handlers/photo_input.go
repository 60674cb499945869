package handlers

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"student-records/apperrors"
	"student-records/filestore"
)

type photoKind int

const (
	photoAbsent photoKind = iota
	// photoNewFile is a file uploaded with the request
	photoNewFile
	// photoExisting names a file stored by an earlier POST /upload
	photoExisting
)

// photoInput is the "photo" part of a student write
type photoInput struct {
	kind photoKind
	file *multipart.FileHeader
	name string
}

func readPhotoInput(form *requestForm) photoInput {
	if fh := form.file("photo"); fh != nil {
		return photoInput{kind: photoNewFile, file: fh}
	}
	if name := form.value("photo"); strings.TrimSpace(name) != "" {
		return photoInput{kind: photoExisting, name: name}
	}
	return photoInput{kind: photoAbsent}
}

// ext is the original extension of a new file, dot included
func (p photoInput) ext() string {
	if p.file == nil {
		return ""
	}
	return filepath.Ext(p.file.Filename)
}

// checkPhoto applies the image rules to a new file and the name rules to a reference
func checkPhoto(files *filestore.Store, p photoInput) error {
	switch p.kind {
	case photoNewFile:
		return checkImage(files, p.file)
	case photoExisting:
		if !filestore.ValidName(p.name) {
			return apperrors.NewValidationError("Invalid photo filename")
		}
	}
	return nil
}

func checkImage(files *filestore.Store, fh *multipart.FileHeader) error {
	switch err := files.CheckImage(fh.Filename, fh.Size); {
	case errors.Is(err, filestore.ErrNotImage):
		return apperrors.NewUploadError("Only image files are allowed!", err)
	case errors.Is(err, filestore.ErrTooLarge):
		return apperrors.NewUploadError("File too large", err)
	case err != nil:
		return apperrors.NewUploadError("Invalid file", err)
	}
	return nil
}

// savePhoto copies an uploaded part into the store under name
func savePhoto(files *filestore.Store, fh *multipart.FileHeader, name string) error {
	if !filestore.ValidName(name) {
		return apperrors.NewValidationError("Invalid photo filename")
	}

	src, err := fh.Open()
	if err != nil {
		return &apperrors.Error{Kind: apperrors.KindInternal, Message: "Failed to save photo", Err: err}
	}
	defer src.Close()

	if err := files.Save(name, src); err != nil {
		if errors.Is(err, filestore.ErrTooLarge) {
			return apperrors.NewUploadError("File too large", err)
		}
		return &apperrors.Error{Kind: apperrors.KindInternal, Message: "Failed to save photo", Err: err}
	}
	return nil
}

// stagePhoto writes an uploaded part to a staged file to be committed under name
func stagePhoto(files *filestore.Store, fh *multipart.FileHeader, name string) (string, error) {
	if !filestore.ValidName(name) {
		return "", apperrors.NewValidationError("Invalid photo filename")
	}

	src, err := fh.Open()
	if err != nil {
		return "", &apperrors.Error{Kind: apperrors.KindInternal, Message: "Failed to save photo", Err: err}
	}
	defer src.Close()

	staged, err := files.Stage(src)
	if err != nil {
		if errors.Is(err, filestore.ErrTooLarge) {
			return "", apperrors.NewUploadError("File too large", err)
		}
		return "", &apperrors.Error{Kind: apperrors.KindInternal, Message: "Failed to save photo", Err: err}
	}
	return staged, nil
}
