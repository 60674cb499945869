package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"student-records/database"
	"student-records/models"

	"github.com/jmoiron/sqlx"
)

// UserRepository reads and writes the users table
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and returns its id
func (r *UserRepository) Create(ctx context.Context, name, email, password string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password) VALUES (?, ?, ?)", name, email, password)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", email, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read user id: %w", err)
	}
	return id, nil
}

// ExistsByEmail reports whether a user with this exact email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email)
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

// FindByCredentials returns the user whose email and password both match exactly
func (r *UserRepository) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		"SELECT id, name, email, password FROM users WHERE email = ? AND password = ?", email, password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// List returns every user without passwords
func (r *UserRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	if err := r.db.SelectContext(ctx, &users, "SELECT id, name, email FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
