package repository

import (
	"context"
	"database/sql"
)

// AssignmentRepo manages the exam ↔ room link records.  Assignments for one
// exam are always replaced as a whole, so all mutation methods operate
// inside a caller-provided transaction.
type AssignmentRepo struct {
	db *sql.DB
}

// NewAssignmentRepo constructs an AssignmentRepo with the given DB handle.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// DeleteAllByExamIDTx removes every assignment of the exam.
func (r *AssignmentRepo) DeleteAllByExamIDTx(ctx context.Context, tx *sql.Tx, examID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM exam_room_assignments WHERE exam_id = ?`, examID)
	return err
}

// CreateBulkTx inserts one assignment per room id.
func (r *AssignmentRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, examID uint64, roomIDs []uint64) error {
	if len(roomIDs) == 0 {
		return nil
	}
	query := `INSERT INTO exam_room_assignments (exam_id, room_id) VALUES `
	args := make([]interface{}, 0, len(roomIDs)*2)
	for i, roomID := range roomIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, examID, roomID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// FindRoomIDsByExamID returns the room ids currently assigned to an exam.
func (r *AssignmentRepo) FindRoomIDsByExamID(ctx context.Context, examID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT room_id FROM exam_room_assignments WHERE exam_id = ? ORDER BY id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
