package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"studereg/internal/models"
	apperrors "studereg/pkg/errors"
)

// ConnectionProvider hands out the live database handle, connecting lazily.
// *database.Store satisfies it.
type ConnectionProvider interface {
	DB() (*sqlx.DB, error)
}

// studentRow mirrors the students table. The driver hands the DATE-typed
// registration_date column back as a time.Time, so it scans through NullTime.
type studentRow struct {
	ID               int64        `db:"id"`
	Name             string       `db:"name"`
	Age              *int         `db:"age"`
	Course           *string      `db:"course"`
	Score            *float64     `db:"score"`
	RegistrationDate sql.NullTime `db:"registration_date"`
}

func (row studentRow) toModel() (*models.Student, error) {
	var registered time.Time
	if row.RegistrationDate.Valid {
		registered = row.RegistrationDate.Time
	}
	course := ""
	if row.Course != nil {
		course = *row.Course
	}
	return models.RehydrateStudent(row.ID, row.Name, row.Age, course, row.Score, registered)
}

// StudentRepository owns every statement issued against the students table.
type StudentRepository struct {
	store ConnectionProvider
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(store ConnectionProvider) *StudentRepository {
	return &StudentRepository{store: store}
}

// Create inserts the student and returns the canonical persisted copy with
// the generated id and registration date populated.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	course := sql.NullString{String: student.Course(), Valid: student.Course() != ""}
	res, err := db.ExecContext(ctx,
		`INSERT INTO students (name, age, course, score) VALUES (?, ?, ?, ?)`,
		student.Name(), student.Age(), course, student.Score(),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "create student")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "read generated id")
	}
	return r.FindByID(ctx, id)
}

// FindByID fetches one student, reporting ErrNotFound when no row matches.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var row studentRow
	err = db.GetContext(ctx, &row,
		`SELECT id, name, age, course, score, registration_date FROM students WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("student %d not found", id))
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "find student")
	}
	return row.toModel()
}

// FindByName returns students whose name contains the given fragment,
// ordered by name. The match is unanchored, so an empty fragment returns
// every student; case behavior is whatever the engine's LIKE applies.
func (r *StudentRepository) FindByName(ctx context.Context, fragment string) ([]*models.Student, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []studentRow
	err = db.SelectContext(ctx, &rows,
		`SELECT id, name, age, course, score, registration_date FROM students WHERE name LIKE ? ORDER BY name`,
		"%"+fragment+"%")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "search students")
	}
	return rowsToModels(rows)
}

// ListAll returns every student ordered by name.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	var rows []studentRow
	err = db.SelectContext(ctx, &rows,
		`SELECT id, name, age, course, score, registration_date FROM students ORDER BY name`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "list students")
	}
	return rowsToModels(rows)
}

// Update overwrites every mutable field of an already persisted student.
// The row must still exist; the write is a single statement, never partial.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (bool, error) {
	if !student.Persisted() {
		return false, apperrors.Clone(apperrors.ErrValidation, "student must have an id to be updated")
	}

	if _, err := r.FindByID(ctx, student.ID()); err != nil {
		return false, err
	}

	db, err := r.store.DB()
	if err != nil {
		return false, err
	}

	course := sql.NullString{String: student.Course(), Valid: student.Course() != ""}
	_, err = db.ExecContext(ctx,
		`UPDATE students SET name = ?, age = ?, course = ?, score = ? WHERE id = ?`,
		student.Name(), student.Age(), course, student.Score(), student.ID(),
	)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "update student")
	}
	return true, nil
}

// Remove deletes a student by id, checking existence first.
func (r *StudentRepository) Remove(ctx context.Context, id int64) (bool, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return false, err
	}

	db, err := r.store.DB()
	if err != nil {
		return false, err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id); err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "remove student")
	}
	return true, nil
}

// Count returns the total number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	db, err := r.store.DB()
	if err != nil {
		return 0, err
	}

	var total int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "count students")
	}
	return total, nil
}

// Statistics computes the registry aggregate in one pass of small queries.
// Ties for the top score break on the lowest id so the result is stable.
func (r *StudentRepository) Statistics(ctx context.Context) (*models.Statistics, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{}

	if err := db.GetContext(ctx, &stats.Total, `SELECT COUNT(*) FROM students`); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "count students")
	}

	err = db.SelectContext(ctx, &stats.ByCourse,
		`SELECT course, COUNT(*) AS count FROM students
		 WHERE course IS NOT NULL AND course != ''
		 GROUP BY course ORDER BY count DESC`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "aggregate courses")
	}

	var avg *float64
	err = db.GetContext(ctx, &avg, `SELECT ROUND(AVG(score), 2) FROM students WHERE score IS NOT NULL`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "average score")
	}
	stats.AverageScore = avg

	err = db.GetContext(ctx, &stats.RegisteredToday,
		`SELECT COUNT(*) FROM students WHERE registration_date = DATE('now')`)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "count today")
	}

	var top models.TopScore
	err = db.GetContext(ctx, &top,
		`SELECT name, ROUND(score, 1) AS score FROM students
		 WHERE score IS NOT NULL ORDER BY students.score DESC, id ASC LIMIT 1`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "top score")
	}
	if err == nil {
		stats.TopStudent = &top
	}

	return stats, nil
}

func rowsToModels(rows []studentRow) ([]*models.Student, error) {
	students := make([]*models.Student, 0, len(rows))
	for _, row := range rows {
		student, err := row.toModel()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "hydrate student")
		}
		students = append(students, student)
	}
	return students, nil
}
