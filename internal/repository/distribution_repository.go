package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// DistributionRepo persists the outcome of one planning run.  Replacing the
// exam's room assignments and writing the participants' planned seats
// happen in a single transaction: a mid-sequence failure leaves no partial
// distribution visible.
type DistributionRepo struct {
	db          *sql.DB
	assignments *AssignmentRepo
	examUsers   *ExamUserRepo
}

// NewDistributionRepo constructs a DistributionRepo with the given DB
// handle and collaborating repositories.
func NewDistributionRepo(db *sql.DB, assignments *AssignmentRepo, examUsers *ExamUserRepo) *DistributionRepo {
	return &DistributionRepo{db: db, assignments: assignments, examUsers: examUsers}
}

// SaveDistribution atomically replaces the exam's room assignments and
// updates the planned room/seat of every given participant.
func (r *DistributionRepo) SaveDistribution(ctx context.Context, examID uint64, roomIDs []uint64, users []*model.ExamUser) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.assignments.DeleteAllByExamIDTx(ctx, tx, examID); err != nil {
		return err
	}
	if err := r.assignments.CreateBulkTx(ctx, tx, examID, roomIDs); err != nil {
		return err
	}
	if err := r.examUsers.UpdatePlannedSeatsTx(ctx, tx, users); err != nil {
		return err
	}
	return tx.Commit()
}
