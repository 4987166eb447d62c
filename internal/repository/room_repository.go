package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// ErrExamRoomNotFound is returned when a room lookup yields no rows.
var ErrExamRoomNotFound = errors.New("exam room not found")

// ExamRoomRepo provides access to exam rooms and their owned seats and
// layout strategies.  Rooms are versioned: every upload inserts fresh rows
// and the "newest" room per (room_number, name, building) is the current
// one.
type ExamRoomRepo struct {
	db *sql.DB
}

// NewExamRoomRepo constructs an ExamRoomRepo with the given DB handle.
func NewExamRoomRepo(db *sql.DB) *ExamRoomRepo {
	return &ExamRoomRepo{db: db}
}

// CreateBulk inserts the given rooms together with their seats and layout
// strategies in a single transaction.  Either all rooms are stored or none
// of them.  On success each room's ID is populated.
func (r *ExamRoomRepo) CreateBulk(ctx context.Context, rooms []*model.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, room := range rooms {
		if err := r.createRoomTx(ctx, tx, room); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ExamRoomRepo) createRoomTx(ctx context.Context, tx *sql.Tx, room *model.Room) error {
	const q = `INSERT INTO exam_rooms (room_number, name, building, alternative_room_number, alternative_name, created_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		room.RoomNumber, room.Name, room.Building,
		room.AlternativeRoomNumber, room.AlternativeName, room.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)

	if err := r.createSeatsTx(ctx, tx, room.ID, room.Seats); err != nil {
		return err
	}
	return r.createLayoutsTx(ctx, tx, room.ID, room.LayoutStrategies)
}

// createSeatsTx bulk-inserts the seats of one room.  sort_order preserves
// the document order, which is significant for distribution.
func (r *ExamRoomRepo) createSeatsTx(ctx context.Context, tx *sql.Tx, roomID uint64, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO exam_seats (room_id, sort_order, label, seat_condition, x, y) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, roomID, i, seat.Label, string(seat.Condition), seat.X, seat.Y)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *ExamRoomRepo) createLayoutsTx(ctx context.Context, tx *sql.Tx, roomID uint64, layouts []model.LayoutStrategy) error {
	if len(layouts) == 0 {
		return nil
	}
	query := `INSERT INTO layout_strategies (room_id, name, type, capacity, parameters) VALUES `
	args := make([]interface{}, 0, len(layouts)*5)
	for i, layout := range layouts {
		params, err := marshalLayoutParams(layout.Params)
		if err != nil {
			return err
		}
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, roomID, layout.Name, string(layout.Type), layout.Capacity, params)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// FindWithLayoutsByIDs loads rooms by id, including seats (in stored order)
// and layout strategies.  Unknown ids are simply absent from the result.
func (r *ExamRoomRepo) FindWithLayoutsByIDs(ctx context.Context, roomIDs []uint64) ([]*model.Room, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, room_number, name, building, alternative_room_number, alternative_name, created_at
	          FROM exam_rooms WHERE id IN (` + placeholders(len(roomIDs)) + `)`
	rows, err := r.db.QueryContext(ctx, query, idArgs(roomIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Room
	byID := make(map[uint64]*model.Room)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(
			&room.ID, &room.RoomNumber, &room.Name, &room.Building,
			&room.AlternativeRoomNumber, &room.AlternativeName, &room.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &room)
		byID[room.ID] = &room
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	if err := r.loadSeats(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.loadLayouts(ctx, byID); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID loads a single room with seats and layouts.
func (r *ExamRoomRepo) GetByID(ctx context.Context, roomID uint64) (*model.Room, error) {
	rooms, err := r.FindWithLayoutsByIDs(ctx, []uint64{roomID})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrExamRoomNotFound
	}
	return rooms[0], nil
}

// FindNewestUniqueWithLayouts loads the newest version of every distinct
// (room_number, name, building) room, with seats and layouts.
func (r *ExamRoomRepo) FindNewestUniqueWithLayouts(ctx context.Context) ([]*model.Room, error) {
	const q = `SELECT MAX(id) FROM exam_rooms GROUP BY room_number, name, building`
	rows, err := r.db.QueryContext(ctx, q)
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
	return r.FindWithLayoutsByIDs(ctx, ids)
}

// CountStored returns the total number of stored rooms, seats and layout
// strategies, across all versions.
func (r *ExamRoomRepo) CountStored(ctx context.Context) (rooms, seats, layouts int, err error) {
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exam_rooms`).Scan(&rooms); err != nil {
		return 0, 0, 0, err
	}
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exam_seats`).Scan(&seats); err != nil {
		return 0, 0, 0, err
	}
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layout_strategies`).Scan(&layouts); err != nil {
		return 0, 0, 0, err
	}
	return rooms, seats, layouts, nil
}

// DeleteOutdatedAndUnused removes every room version that is superseded by
// a newer upload of the same (room_number, name) and is not referenced by
// any exam.  It returns the number of deleted rooms.
func (r *ExamRoomRepo) DeleteOutdatedAndUnused(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	const sel = `SELECT DISTINCT r.id
	             FROM exam_rooms r
	             JOIN exam_rooms newer
	               ON newer.room_number = r.room_number
	              AND newer.name = r.name
	              AND (newer.created_at > r.created_at OR (newer.created_at = r.created_at AND newer.id > r.id))
	             LEFT JOIN exam_room_assignments a ON a.room_id = r.id
	             WHERE a.id IS NULL`
	rows, err := tx.QueryContext(ctx, sel)
	if err != nil {
		return 0, err
	}
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	if len(ids) == 0 {
		return 0, tx.Commit()
	}

	in := placeholders(len(ids))
	args := idArgs(ids)
	if _, err := tx.ExecContext(ctx, `DELETE FROM layout_strategies WHERE room_id IN (`+in+`)`, args...); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM exam_seats WHERE room_id IN (`+in+`)`, args...); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM exam_rooms WHERE id IN (`+in+`)`, args...)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return deleted, tx.Commit()
}

func (r *ExamRoomRepo) loadSeats(ctx context.Context, rooms map[uint64]*model.Room) error {
	ids := roomIDSet(rooms)
	query := `SELECT id, room_id, label, seat_condition, x, y
	          FROM exam_seats WHERE room_id IN (` + placeholders(len(ids)) + `)
	          ORDER BY room_id, sort_order`
	rows, err := r.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var seat model.Seat
		var condition string
		if err := rows.Scan(&seat.ID, &seat.RoomID, &seat.Label, &condition, &seat.X, &seat.Y); err != nil {
			return err
		}
		seat.Condition = model.SeatCondition(condition)
		room := rooms[seat.RoomID]
		room.Seats = append(room.Seats, seat)
	}
	return rows.Err()
}

func (r *ExamRoomRepo) loadLayouts(ctx context.Context, rooms map[uint64]*model.Room) error {
	ids := roomIDSet(rooms)
	query := `SELECT id, room_id, name, type, capacity, parameters
	          FROM layout_strategies WHERE room_id IN (` + placeholders(len(ids)) + `)
	          ORDER BY room_id, id`
	rows, err := r.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var layout model.LayoutStrategy
		var typ string
		var raw []byte
		if err := rows.Scan(&layout.ID, &layout.RoomID, &layout.Name, &typ, &layout.Capacity, &raw); err != nil {
			return err
		}
		layout.Type = model.LayoutType(typ)
		params, err := unmarshalLayoutParams(layout.Type, raw)
		if err != nil {
			return err
		}
		layout.Params = params
		room := rooms[layout.RoomID]
		room.LayoutStrategies = append(room.LayoutStrategies, layout)
	}
	return rows.Err()
}

// marshalLayoutParams serializes strategy parameters for the JSON column.
func marshalLayoutParams(params model.LayoutParameters) ([]byte, error) {
	switch p := params.(type) {
	case model.FixedSelectionParams:
		return json.Marshal(p.SeatRefs)
	case model.RelativeDistanceParams:
		return json.Marshal(p)
	default:
		return nil, fmt.Errorf("unsupported layout parameters %T", params)
	}
}

func unmarshalLayoutParams(typ model.LayoutType, raw []byte) (model.LayoutParameters, error) {
	switch typ {
	case model.LayoutFixedSelection:
		var refs []string
		if err := json.Unmarshal(raw, &refs); err != nil {
			return nil, err
		}
		return model.FixedSelectionParams{SeatRefs: refs}, nil
	case model.LayoutRelativeDistance:
		var params model.RelativeDistanceParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return params, nil
	default:
		return nil, fmt.Errorf("unsupported layout type %q", typ)
	}
}

// placeholders returns n comma-separated "?" markers for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []uint64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func roomIDSet(rooms map[uint64]*model.Room) []uint64 {
	ids := make([]uint64, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	return ids
}
