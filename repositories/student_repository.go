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

const studentColumns = "idno, lastname, firstname, course, level, photo"

// StudentRepository reads and writes the students table
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students ordered by last name
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	err := r.db.SelectContext(ctx, &students,
		"SELECT "+studentColumns+" FROM students ORDER BY lastname ASC")
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Get returns the student with the given idno
func (r *StudentRepository) Get(ctx context.Context, idno string) (*models.Student, error) {
	var student models.Student
	err := r.db.GetContext(ctx, &student,
		"SELECT "+studentColumns+" FROM students WHERE idno = ?", idno)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student %q: %w", idno, err)
	}
	return &student, nil
}

// Create inserts a student. A taken idno yields ErrDuplicate, also when a
// concurrent insert won the race after the caller's existence check.
func (r *StudentRepository) Create(ctx context.Context, s models.Student) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO students (`+studentColumns+`)
		VALUES (:idno, :lastname, :firstname, :course, :level, :photo)`, s)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("insert student %q: %w", s.IDNo, ErrDuplicate)
		}
		return fmt.Errorf("insert student %q: %w", s.IDNo, err)
	}
	return nil
}

// Update overwrites every mutable column of the student
func (r *StudentRepository) Update(ctx context.Context, s models.Student) error {
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE students
		SET lastname = :lastname, firstname = :firstname, course = :course, level = :level, photo = :photo
		WHERE idno = :idno`, s)
	if err != nil {
		return fmt.Errorf("update student %q: %w", s.IDNo, err)
	}
	return requireAffected(result, s.IDNo)
}

// Delete removes the student row
func (r *StudentRepository) Delete(ctx context.Context, idno string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE idno = ?", idno)
	if err != nil {
		return fmt.Errorf("delete student %q: %w", idno, err)
	}
	return requireAffected(result, idno)
}

func requireAffected(result sql.Result, idno string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %q: %w", idno, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
