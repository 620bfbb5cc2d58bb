package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/academic-records-api/internal/model"
)

type StudentRepo struct{ DB *sql.DB }

func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{DB: db} }

// ListActive returns every student row that has not been soft deleted.
func (r *StudentRepo) ListActive(ctx context.Context) ([]model.Student, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,major,deleted_at FROM student WHERE deleted_at IS NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Major, &s.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches a single live student. ErrStudentNotFound is returned
// when the row is absent or already soft deleted.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (model.Student, error) {
	var s model.Student
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,major,deleted_at FROM student WHERE id=? AND deleted_at IS NULL LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.Major, &s.DeletedAt)
	if err == sql.ErrNoRows {
		return model.Student{}, ErrStudentNotFound
	}
	return s, err
}

// Create inserts a student and returns the row with its assigned ID.
func (r *StudentRepo) Create(ctx context.Context, name, major string) (model.Student, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO student (name, major) VALUES (?,?)", name, major)
	if err != nil {
		return model.Student{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Student{}, err
	}
	return model.Student{ID: uint64(id), Name: name, Major: major}, nil
}

// Update rewrites name and major on a live student and returns the
// updated row. Updating a deleted or missing student yields
// ErrStudentNotFound.
func (r *StudentRepo) Update(ctx context.Context, id uint64, name, major string) (model.Student, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE student SET name=?, major=? WHERE id=? AND deleted_at IS NULL",
		name, major, id); err != nil {
		return model.Student{}, err
	}
	// Re-read so the caller sees exactly what was stored; also detects
	// the case where the UPDATE matched nothing.
	return r.GetByID(ctx, id)
}

// SoftDelete marks a student deleted by stamping deleted_at. A row that
// is absent or already deleted yields ErrStudentNotFound.
func (r *StudentRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE student SET deleted_at=? WHERE id=? AND deleted_at IS NULL",
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}
	return nil
}
