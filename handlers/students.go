package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"student-records/apperrors"
	"student-records/filestore"
	"student-records/models"
	"student-records/repositories"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StudentStore is the student persistence the handler needs.
// *repositories.StudentRepository implements it.
type StudentStore interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, idno string) (*models.Student, error)
	Create(ctx context.Context, student models.Student) error
	Update(ctx context.Context, student models.Student) error
	Delete(ctx context.Context, idno string) error
}

// StudentHandler handles student records and their photos
type StudentHandler struct {
	students StudentStore
	files    *filestore.Store
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(students StudentStore, files *filestore.Store) *StudentHandler {
	return &StudentHandler{
		students: students,
		files:    files,
	}
}

type studentFields struct {
	idno, lastname, firstname, course, level string
}

func readStudentFields(form *requestForm) studentFields {
	return studentFields{
		idno:      form.value("idno"),
		lastname:  form.value("lastname"),
		firstname: form.value("firstname"),
		course:    form.value("course"),
		level:     form.value("level"),
	}
}

// validate checks presence of every field and parses level. The same rule
// applies to create and update; "0" is a present level.
func (f studentFields) validate() (int, error) {
	if f.idno == "" || f.lastname == "" || f.firstname == "" || f.course == "" || f.level == "" {
		return 0, apperrors.NewValidationError("All fields are required")
	}
	level, err := strconv.Atoi(f.level)
	if err != nil {
		return 0, &apperrors.Error{Kind: apperrors.KindValidation, Message: "Level must be a whole number", Err: err}
	}
	return level, nil
}

// ListStudents handles GET /students - all students ordered by last name
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	logRequest(r, "info", "Listing students")

	students, err := h.students.List(r.Context())
	if err != nil {
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	for i := range students {
		students[i] = students[i].WithPhotoURL()
	}

	logRequest(r, "info", "Students retrieved successfully", zap.Int("count", len(students)))
	writeJSON(w, r, http.StatusOK, students)
}

// GetStudent handles GET /students/{idno}
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	idno := mux.Vars(r)["idno"]
	logRequest(r, "info", "Getting student", zap.String("idno", idno))

	student, err := h.findStudent(r, idno)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, models.StudentResponse{
		Status:  models.StatusSuccess,
		Student: student.WithPhotoURL(),
	})
}

// CreateStudent handles POST /students - photo may be a file or the name of an earlier upload
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	form, err := parseRequestForm(w, r, h.files.MaxBytes())
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.cleanup()

	fields := readStudentFields(form)
	level, err := fields.validate()
	if err != nil {
		writeError(w, r, err)
		return
	}
	photo := readPhotoInput(form)
	if err := checkPhoto(h.files, photo); err != nil {
		writeError(w, r, err)
		return
	}

	logRequest(r, "info", "Creating student", zap.String("idno", fields.idno))

	// early exit only; the primary key decides below
	if _, err := h.students.Get(r.Context(), fields.idno); err == nil {
		writeError(w, r, apperrors.NewConflictError("Student with this ID already exists"))
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	student := models.Student{
		IDNo:      fields.idno,
		LastName:  fields.lastname,
		FirstName: fields.firstname,
		Course:    fields.course,
		Level:     level,
	}

	written := ""
	switch photo.kind {
	case photoNewFile:
		name := filestore.StudentPhotoName(fields.idno, fields.firstname, fields.lastname, photo.ext())
		if err := savePhoto(h.files, photo.file, name); err != nil {
			writeError(w, r, err)
			return
		}
		written = name
		student.Photo = &name
	case photoExisting:
		name := photo.name
		student.Photo = &name
	}

	if err := h.students.Create(r.Context(), student); err != nil {
		if written != "" {
			h.discardFailedUpload(r, fields.idno, written)
		}
		if errors.Is(err, repositories.ErrDuplicate) {
			writeError(w, r, apperrors.NewConflictError("Student with this ID already exists"))
			return
		}
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	logRequest(r, "info", "Student created successfully", zap.String("idno", student.IDNo))

	writeJSON(w, r, http.StatusCreated, models.StudentResponse{
		Status:  models.StatusSuccess,
		Message: "Student added successfully",
		Student: student.WithPhotoURL(),
	})
}

// UpdateStudent handles PUT /students/{idno}. Without a photo part the stored photo is kept.
func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	idno := mux.Vars(r)["idno"]

	form, err := parseRequestForm(w, r, h.files.MaxBytes())
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.cleanup()

	fields := readStudentFields(form)
	fields.idno = idno
	level, err := fields.validate()
	if err != nil {
		writeError(w, r, err)
		return
	}
	photo := readPhotoInput(form)
	if err := checkPhoto(h.files, photo); err != nil {
		writeError(w, r, err)
		return
	}

	logRequest(r, "info", "Updating student", zap.String("idno", idno))

	existing, err := h.findStudent(r, idno)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated := models.Student{
		IDNo:      idno,
		LastName:  fields.lastname,
		FirstName: fields.firstname,
		Course:    fields.course,
		Level:     level,
		Photo:     existing.Photo,
	}

	// a new file is staged and only replaces the stored one once the row is updated
	staged := ""
	switch photo.kind {
	case photoNewFile:
		name := filestore.StudentPhotoName(idno, fields.firstname, fields.lastname, photo.ext())
		staged, err = stagePhoto(h.files, photo.file, name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		updated.Photo = &name
	case photoExisting:
		name := photo.name
		updated.Photo = &name
	}

	if err := h.students.Update(r.Context(), updated); err != nil {
		if staged != "" {
			h.files.Discard(staged)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, r, apperrors.NewNotFoundError("Student not found"))
			return
		}
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	if staged != "" {
		if err := h.files.Commit(staged, updated.PhotoName()); err != nil {
			writeError(w, r, &apperrors.Error{Kind: apperrors.KindInternal, Message: "Failed to save photo", Err: err})
			return
		}
	}

	if old := existing.PhotoName(); old != "" && old != updated.PhotoName() {
		h.removePhoto(r, old)
	}

	logRequest(r, "info", "Student updated successfully", zap.String("idno", idno))

	writeJSON(w, r, http.StatusOK, models.StudentResponse{
		Status:  models.StatusSuccess,
		Message: "Student updated successfully",
		Student: updated.WithPhotoURL(),
	})
}

// DeleteStudent handles DELETE /students/{idno} - removes the row and its photo
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	idno := mux.Vars(r)["idno"]
	logRequest(r, "info", "Deleting student", zap.String("idno", idno))

	existing, err := h.findStudent(r, idno)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if photo := existing.PhotoName(); photo != "" {
		h.removePhoto(r, photo)
	}

	if err := h.students.Delete(r.Context(), idno); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, r, apperrors.NewNotFoundError("Student not found"))
			return
		}
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	logRequest(r, "info", "Student deleted successfully", zap.String("idno", idno))

	writeJSON(w, r, http.StatusOK, models.DeleteStudentResponse{
		Status:  models.StatusSuccess,
		Message: "Student deleted successfully",
		IDNo:    idno,
	})
}

func (h *StudentHandler) findStudent(r *http.Request, idno string) (*models.Student, error) {
	student, err := h.students.Get(r.Context(), idno)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("Student not found")
	}
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return student, nil
}

// removePhoto deletes a photo file. Failure is logged and never fails the request.
func (h *StudentHandler) removePhoto(r *http.Request, name string) {
	if err := h.files.Remove(name); err != nil {
		logRequest(r, "error", "Error deleting photo, continuing", zap.String("photo", name), zap.Error(err))
		return
	}
	logRequest(r, "info", "Removed photo", zap.String("photo", name))
}

// discardFailedUpload removes a photo written for a create that lost the
// insert, unless the row that won now points at the same file.
func (h *StudentHandler) discardFailedUpload(r *http.Request, idno, name string) {
	if winner, err := h.students.Get(r.Context(), idno); err == nil && winner.PhotoName() == name {
		return
	}
	h.removePhoto(r, name)
}
