package handlers

import (
	"errors"
	"net/http"

	"student-records/apperrors"
	"student-records/models"
	"student-records/repositories"

	"go.uber.org/zap"
)

// maxAuthBody bounds register and login bodies
const maxAuthBody = 64 << 10

// AuthHandler handles registration, login and the user listing.
// Passwords are compared as stored; there is no hashing and no session.
type AuthHandler struct {
	users *repositories.UserRepository
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *repositories.UserRepository) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, err := parseRequestForm(w, r, maxAuthBody)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.cleanup()

	req := models.RegisterRequest{
		Name:     form.value("name"),
		Email:    form.value("email"),
		Password: form.value("password"),
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, r, apperrors.NewValidationError("All fields are required"))
		return
	}

	logRequest(r, "info", "Registering user", zap.String("email", req.Email))

	exists, err := h.users.ExistsByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}
	if exists {
		writeError(w, r, apperrors.NewConflictError("User with this email already exists"))
		return
	}

	id, err := h.users.Create(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, repositories.ErrDuplicate) {
		writeError(w, r, apperrors.NewConflictError("User with this email already exists"))
		return
	}
	if err != nil {
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	logRequest(r, "info", "User registered successfully", zap.Int64("user_id", id))

	writeJSON(w, r, http.StatusCreated, models.RegisterResponse{
		Status:  models.StatusSuccess,
		Message: "Registration successful",
		UserID:  id,
	})
}

// Login handles POST /login. Unknown email and wrong password get the same answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := parseRequestForm(w, r, maxAuthBody)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.cleanup()

	req := models.LoginRequest{
		Email:    form.value("email"),
		Password: form.value("password"),
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, r, apperrors.NewValidationError("Email and password are required"))
		return
	}

	logRequest(r, "info", "Login request", zap.String("email", req.Email))

	user, err := h.users.FindByCredentials(r.Context(), req.Email, req.Password)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, apperrors.NewAuthenticationError("Invalid email or password"))
		return
	}
	if err != nil {
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	logRequest(r, "info", "Login successful", zap.Int64("user_id", user.ID))

	writeJSON(w, r, http.StatusOK, models.LoginResponse{
		Status:  models.StatusSuccess,
		Message: "Login successful",
		User:    user.Summary(),
	})
}

// ListUsers handles GET /users - passwords are never selected
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logRequest(r, "info", "Listing users")

	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, apperrors.NewStoreError(err))
		return
	}

	logRequest(r, "info", "Users retrieved successfully", zap.Int("count", len(users)))

	writeJSON(w, r, http.StatusOK, models.UsersResponse{
		Status: models.StatusSuccess,
		Users:  users,
	})
}
