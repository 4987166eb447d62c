package model

import "time"

// Exam is the slice of the exam entity the planner needs: an identifier and
// a title for event payloads.  Everything else about exams (dates, courses,
// grading) lives outside this service.
type Exam struct {
	ID        uint64    // exams.id
	Title     string    // exams.title
	CreatedAt time.Time // exams.created_at
}

// ExamUser is a participant registered for an exam.  The planner only ever
// sets or clears the planned room and seat; the record itself is owned by
// an external registration flow.
//
// Fields:
//
//	ID          – primary key identifier.
//	ExamID      – exam the user is registered for.
//	UserLogin   – login of the participant.
//	PlannedRoom – room number assigned by the last distribution run (nil when unassigned).
//	PlannedSeat – seat label assigned by the last distribution run (nil when unassigned).
type ExamUser struct {
	ID          uint64  // exam_users.id
	ExamID      uint64  // exam_users.exam_id
	UserLogin   string  // exam_users.user_login
	PlannedRoom *string // exam_users.planned_room (nullable)
	PlannedSeat *string // exam_users.planned_seat (nullable)
}

// ExamRoomAssignment links an exam to a room selected for it.  The live set
// of assignments for an exam is replaced atomically by each planning run.
type ExamRoomAssignment struct {
	ID     uint64 // exam_room_assignments.id
	ExamID uint64 // exam_room_assignments.exam_id
	RoomID uint64 // exam_room_assignments.room_id
}
