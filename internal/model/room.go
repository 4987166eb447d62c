package model

import "time"

// SeatCondition classifies whether a seat can be used in an exam sitting.
// The set is closed: room documents reference conditions through short
// flag tokens and any token outside the known set is rejected at parse time.
type SeatCondition string

const (
	SeatUsable     SeatCondition = "USABLE"
	SeatBroken     SeatCondition = "BROKEN"
	SeatRestricted SeatCondition = "RESTRICTED"
)

// Usable reports whether the seat condition allows seating a student.
func (c SeatCondition) Usable() bool { return c == SeatUsable }

// Seat is one physical seat inside an exam room.  Seats carry no identity
// of their own beyond the owning room; their order within Room.Seats is
// the order they appeared in the source document and is significant for
// seat distribution.
//
// Fields:
//
//	ID        – primary key identifier (zero until persisted).
//	RoomID    – room to which this seat belongs.
//	Label     – display label, composed as "<row>, <seat>" when both parts exist.
//	Condition – usability classification.
//	X, Y      – position of the seat inside the room (Y grows with the row index).
type Seat struct {
	ID        uint64        // exam_seats.id
	RoomID    uint64        // exam_seats.room_id
	Label     string        // exam_seats.label
	Condition SeatCondition // exam_seats.seat_condition
	X         float64       // exam_seats.x
	Y         float64       // exam_seats.y
}

// Room represents one version of an exam room as ingested from a room
// archive.  A room exclusively owns its seats and layout strategies; both
// are fully populated before the room is considered valid and never change
// afterwards.  Re-uploading a room produces a new row with a newer
// CreatedAt rather than updating the old one.
//
// Fields:
//
//	ID                    – primary key identifier (zero until persisted).
//	RoomNumber            – official room number, derived from the archive entry name.
//	Name                  – official room name.
//	Building              – building the room is located in.
//	AlternativeRoomNumber – secondary room number; nil when equal to RoomNumber.
//	AlternativeName       – secondary name; nil when equal to Name.
//	Seats                 – seats in document order.
//	LayoutStrategies      – named seating layouts declared by the document.
//	CreatedAt             – ingestion timestamp, used to find the newest version.
type Room struct {
	ID                    uint64           // exam_rooms.id
	RoomNumber            string           // exam_rooms.room_number
	Name                  string           // exam_rooms.name
	Building              string           // exam_rooms.building
	AlternativeRoomNumber *string          // exam_rooms.alternative_room_number (nullable)
	AlternativeName       *string          // exam_rooms.alternative_name (nullable)
	Seats                 []Seat           // owned, document order
	LayoutStrategies      []LayoutStrategy // owned
	CreatedAt             time.Time        // exam_rooms.created_at
}

// DedupKey identifies a room definition for deduplication during a single
// archive ingestion: two documents describing the same (roomNumber, name,
// building) triple are considered the same room and only the first one
// encountered is kept.
type DedupKey struct {
	RoomNumber string
	Name       string
	Building   string
}

// Key returns the deduplication key of the room.
func (r *Room) Key() DedupKey {
	return DedupKey{RoomNumber: r.RoomNumber, Name: r.Name, Building: r.Building}
}
