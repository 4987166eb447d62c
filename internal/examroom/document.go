package examroom

import "encoding/json"

// Room documents are the JSON entries inside an uploaded room archive.  The
// types below mirror the external schema; pointers and raw messages are
// used where the validation rules distinguish "absent" from "empty".

// RoomDocument is one decoded room description.
type RoomDocument struct {
	Number    string                     `json:"number"`    // alternative room number
	Name      string                     `json:"name"`      // required
	Shortname string                     `json:"shortname"` // alternative name
	Building  string                     `json:"building"`  // required
	Rows      []RowDocument              `json:"rows"`      // nil when absent
	Layouts   map[string]json.RawMessage `json:"layouts"`   // nil when absent
}

// RowDocument is one row of seats. A row with a JSON-null or missing seats
// list is malformed; an empty list is fine.
type RowDocument struct {
	Label string         `json:"label"`
	Seats []SeatDocument `json:"seats"` // nil when absent
}

// SeatDocument is one seat entry. Position is required; Flag encodes the
// seat condition and defaults to usable when empty.
type SeatDocument struct {
	Label    string            `json:"label"`
	Flag     string            `json:"flag"`
	Position *PositionDocument `json:"position"`
}

// PositionDocument is the seat coordinate inside the room.
type PositionDocument struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout type tags as they appear in room documents.  Each layout entry is
// an object with exactly one of these keys; the value shape depends on the
// tag.
const (
	layoutTagFixedSelection   = "fixed_selection"
	layoutTagRelativeDistance = "relative_distance"
)
