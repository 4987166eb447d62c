// Package planner distributes the registered participants of an exam
// across a selected set of exam rooms.  One Distribute call is one
// synchronous unit of work: it either rejects the request before touching
// anything, or replaces the exam's room assignments and planned seats in a
// single storage transaction.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/exam-room-planner/internal/examroom"
	"github.com/iliyamo/exam-room-planner/internal/model"
)

// ErrExamNotFound is returned when the exam id does not exist.
var ErrExamNotFound = errors.New("exam not found")

// ErrRoomNotFound is returned when one of the selected room ids does not
// exist.
var ErrRoomNotFound = errors.New("exam room not found")

// NotEnoughSeatsError rejects a distribution whose selected rooms cannot
// seat all registered participants.  It is raised before any mutation, so
// retrying with more or larger rooms is always safe.
type NotEnoughSeatsError struct {
	Available int
	Required  int
}

func (e *NotEnoughSeatsError) Error() string {
	return fmt.Sprintf("not enough seats: %d available, %d required", e.Available, e.Required)
}

// ExamStore loads exams.
type ExamStore interface {
	GetByID(ctx context.Context, examID uint64) (*model.Exam, error)
}

// ExamUserStore loads the participants registered for an exam, in a stable
// order.
type ExamUserStore interface {
	FindByExamID(ctx context.Context, examID uint64) ([]*model.ExamUser, error)
}

// RoomStore loads rooms together with their seats and layout strategies.
type RoomStore interface {
	FindWithLayoutsByIDs(ctx context.Context, roomIDs []uint64) ([]*model.Room, error)
}

// DistributionStore persists the outcome of one planning run atomically:
// it replaces the exam's room assignments and updates the participants'
// planned room and seat in a single transaction.
type DistributionStore interface {
	SaveDistribution(ctx context.Context, examID uint64, roomIDs []uint64, users []*model.ExamUser) error
}

// Planner wires the stores a distribution run needs.
type Planner struct {
	exams         ExamStore
	examUsers     ExamUserStore
	rooms         RoomStore
	distributions DistributionStore
}

// New constructs a Planner over the given stores.
func New(exams ExamStore, examUsers ExamUserStore, rooms RoomStore, distributions DistributionStore) *Planner {
	return &Planner{exams: exams, examUsers: examUsers, rooms: rooms, distributions: distributions}
}

// Distribute assigns every participant of the exam a (room, seat) pair
// across the selected rooms, using each room's default layout strategy.
//
// Rooms are filled in the order the caller supplied their ids (duplicates
// collapse to the first occurrence); within a room, seats are consumed in
// the usable-seat order of the default layout.  When the combined default
// capacity is smaller than the number of participants the run fails with
// NotEnoughSeatsError and no state changes.
func (p *Planner) Distribute(ctx context.Context, examID uint64, roomIDs []uint64) error {
	roomIDs = dedupeIDs(roomIDs)

	exam, err := p.exams.GetByID(ctx, examID)
	if err != nil {
		return err
	}
	if exam == nil {
		return fmt.Errorf("%w: id %d", ErrExamNotFound, examID)
	}

	users, err := p.examUsers.FindByExamID(ctx, examID)
	if err != nil {
		return err
	}

	orderedRooms, err := p.loadRoomsInOrder(ctx, roomIDs)
	if err != nil {
		return err
	}

	type roomPlan struct {
		roomNumber string
		seats      []model.Seat
	}
	plans := make([]roomPlan, 0, len(orderedRooms))
	available := 0
	for _, room := range orderedRooms {
		strategy, err := examroom.DefaultLayoutStrategy(room)
		if err != nil {
			return err
		}
		seats, err := examroom.SelectedSeats(room, strategy)
		if err != nil {
			return err
		}
		available += strategy.Capacity
		plans = append(plans, roomPlan{roomNumber: room.RoomNumber, seats: seats})
	}

	if available < len(users) {
		return &NotEnoughSeatsError{Available: available, Required: len(users)}
	}

	// All checks passed; from here on the run mutates state.  Assign seats
	// room by room until the participants are exhausted.
	next := 0
assignment:
	for _, plan := range plans {
		for _, seat := range plan.seats {
			if next >= len(users) {
				break assignment
			}
			roomNumber := plan.roomNumber
			label := seat.Label
			users[next].PlannedRoom = &roomNumber
			users[next].PlannedSeat = &label
			next++
		}
	}

	return p.distributions.SaveDistribution(ctx, examID, roomIDs, users)
}

// CombinedCapacities returns the summed default-layout capacity and the
// summed maximum-layout capacity over the given rooms.  It lets callers
// preview whether a room selection can seat an exam before distributing.
func (p *Planner) CombinedCapacities(ctx context.Context, roomIDs []uint64) (defaultCapacity, maximumCapacity int, err error) {
	rooms, err := p.loadRoomsInOrder(ctx, dedupeIDs(roomIDs))
	if err != nil {
		return 0, 0, err
	}

	for _, room := range rooms {
		strategy, err := examroom.DefaultLayoutStrategy(room)
		if err != nil {
			return 0, 0, err
		}
		defaultCapacity += strategy.Capacity

		max := 0
		for _, candidate := range room.LayoutStrategies {
			if candidate.Capacity > max {
				max = candidate.Capacity
			}
		}
		maximumCapacity += max
	}
	return defaultCapacity, maximumCapacity, nil
}

// loadRoomsInOrder fetches the rooms and returns them in the order of the
// given ids, failing when any id is unknown.
func (p *Planner) loadRoomsInOrder(ctx context.Context, roomIDs []uint64) ([]*model.Room, error) {
	rooms, err := p.rooms.FindWithLayoutsByIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	ordered := make([]*model.Room, 0, len(roomIDs))
	for _, id := range roomIDs {
		room, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrRoomNotFound, id)
		}
		ordered = append(ordered, room)
	}
	return ordered, nil
}

func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
