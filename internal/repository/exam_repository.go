package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// ExamRepo reads the exam entities the planner needs.  Exams themselves are
// created and managed by the course/exam subsystem; this service only loads
// them.
type ExamRepo struct {
	db *sql.DB
}

// NewExamRepo constructs an ExamRepo with the given DB handle.
func NewExamRepo(db *sql.DB) *ExamRepo {
	return &ExamRepo{db: db}
}

// GetByID fetches one exam.  A missing exam yields (nil, nil) so that the
// planner can report its own not-found error with context.
func (r *ExamRepo) GetByID(ctx context.Context, examID uint64) (*model.Exam, error) {
	const q = `SELECT id, title, created_at FROM exams WHERE id = ?`
	var exam model.Exam
	err := r.db.QueryRowContext(ctx, q, examID).Scan(&exam.ID, &exam.Title, &exam.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &exam, nil
}
