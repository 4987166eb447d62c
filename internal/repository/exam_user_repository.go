package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// ExamUserRepo reads and updates exam participants.  Only the planned room
// and planned seat columns are ever written by this service.
type ExamUserRepo struct {
	db *sql.DB
}

// NewExamUserRepo constructs an ExamUserRepo with the given DB handle.
func NewExamUserRepo(db *sql.DB) *ExamUserRepo {
	return &ExamUserRepo{db: db}
}

// FindByExamID retrieves all participants of an exam ordered by id.  The
// order is stable across calls; it determines which participant receives
// which seat during distribution.
func (r *ExamUserRepo) FindByExamID(ctx context.Context, examID uint64) ([]*model.ExamUser, error) {
	const q = `SELECT id, exam_id, user_login, planned_room, planned_seat
	           FROM exam_users WHERE exam_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.ExamUser
	for rows.Next() {
		var user model.ExamUser
		if err := rows.Scan(&user.ID, &user.ExamID, &user.UserLogin, &user.PlannedRoom, &user.PlannedSeat); err != nil {
			return nil, err
		}
		result = append(result, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdatePlannedSeatsTx writes the planned room and seat of each user within
// an existing transaction.
func (r *ExamUserRepo) UpdatePlannedSeatsTx(ctx context.Context, tx *sql.Tx, users []*model.ExamUser) error {
	const q = `UPDATE exam_users SET planned_room = ?, planned_seat = ? WHERE id = ?`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, user := range users {
		if _, err := stmt.ExecContext(ctx, user.PlannedRoom, user.PlannedSeat, user.ID); err != nil {
			return err
		}
	}
	return nil
}
