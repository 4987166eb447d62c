package examroom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// validDoc builds a small well-formed document that individual tests then
// break in exactly one way.
func validDoc() *RoomDocument {
	return &RoomDocument{
		Name:     "Audimax",
		Building: "Main",
		Rows: []RowDocument{
			{Label: "1", Seats: []SeatDocument{
				{Label: "1", Position: &PositionDocument{X: 0, Y: 0}},
				{Label: "2", Flag: "b", Position: &PositionDocument{X: 1, Y: 0}},
			}},
			{Label: "2", Seats: []SeatDocument{
				{Label: "1", Flag: "r", Position: &PositionDocument{X: 0, Y: 1}},
			}},
		},
		Layouts: map[string]json.RawMessage{
			"default": json.RawMessage(`{"fixed_selection": ["1, 1", "2, 1"]}`),
		},
	}
}

func TestParseRoomValidDocument(t *testing.T) {
	room, err := ParseRoom("H-101", validDoc())
	require.NoError(t, err)

	assert.Equal(t, "H-101", room.RoomNumber)
	assert.Equal(t, "Audimax", room.Name)
	assert.Equal(t, "Main", room.Building)
	assert.Nil(t, room.AlternativeRoomNumber, "no alternative number given")
	assert.Nil(t, room.AlternativeName, "no alternative name given")

	require.Len(t, room.Seats, 3)
	assert.Equal(t, "1, 1", room.Seats[0].Label)
	assert.Equal(t, model.SeatUsable, room.Seats[0].Condition)
	assert.Equal(t, "1, 2", room.Seats[1].Label)
	assert.Equal(t, model.SeatBroken, room.Seats[1].Condition)
	assert.Equal(t, "2, 1", room.Seats[2].Label)
	assert.Equal(t, model.SeatRestricted, room.Seats[2].Condition)

	require.Len(t, room.LayoutStrategies, 1)
	strategy := room.LayoutStrategies[0]
	assert.Equal(t, "default", strategy.Name)
	assert.Equal(t, model.LayoutFixedSelection, strategy.Type)
	assert.Equal(t, 2, strategy.Capacity, "fixed selection capacity is the reference count")
}

func TestParseRoomAlternativeIdentifiers(t *testing.T) {
	doc := validDoc()
	doc.Number = "H-101" // same as the room number, must be dropped
	doc.Shortname = "AM" // differs from the name, must be kept

	room, err := ParseRoom("H-101", doc)
	require.NoError(t, err)
	assert.Nil(t, room.AlternativeRoomNumber)
	require.NotNil(t, room.AlternativeName)
	assert.Equal(t, "AM", *room.AlternativeName)

	doc = validDoc()
	doc.Number = "B6-H-101"
	doc.Shortname = "Audimax" // same as the name, must be dropped

	room, err = ParseRoom("H-101", doc)
	require.NoError(t, err)
	require.NotNil(t, room.AlternativeRoomNumber)
	assert.Equal(t, "B6-H-101", *room.AlternativeRoomNumber)
	assert.Nil(t, room.AlternativeName)
}

func TestParseRoomSeatLabelWithoutRowLabel(t *testing.T) {
	doc := validDoc()
	doc.Rows = []RowDocument{
		{Seats: []SeatDocument{{Label: "7", Position: &PositionDocument{}}}},
	}
	doc.Layouts = map[string]json.RawMessage{}

	room, err := ParseRoom("H-101", doc)
	require.NoError(t, err)
	require.Len(t, room.Seats, 1)
	assert.Equal(t, "7", room.Seats[0].Label, "a missing row label collapses to the seat label alone")
}

func TestParseRoomRejectsBlankRoomNumber(t *testing.T) {
	_, err := ParseRoom("   ", validDoc())
	assert.ErrorIs(t, err, ErrMissingRoomNumber)
}

func TestParseRoomRejectsNilDocument(t *testing.T) {
	_, err := ParseRoom("H-101", nil)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestParseRoomRejectsMissingNameOrBuilding(t *testing.T) {
	doc := validDoc()
	doc.Name = " "
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMissingNameOrBuilding)

	doc = validDoc()
	doc.Building = ""
	_, err = ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMissingNameOrBuilding)
}

func TestParseRoomRejectsMissingRows(t *testing.T) {
	doc := validDoc()
	doc.Rows = nil
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMissingSeats)
}

func TestParseRoomAcceptsEmptyRows(t *testing.T) {
	doc := validDoc()
	doc.Rows = []RowDocument{}
	doc.Layouts = map[string]json.RawMessage{}

	room, err := ParseRoom("H-101", doc)
	require.NoError(t, err)
	assert.Empty(t, room.Seats, "an empty rows list is a room with no seats, not an error")
}

func TestParseRoomRejectsRowWithoutSeats(t *testing.T) {
	doc := validDoc()
	doc.Rows[1].Seats = nil
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestParseRoomRejectsSeatWithoutPosition(t *testing.T) {
	doc := validDoc()
	doc.Rows[0].Seats[1].Position = nil
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMalformedSeat)
}

func TestParseRoomRejectsInvalidSeatFlag(t *testing.T) {
	doc := validDoc()
	doc.Rows[0].Seats[0].Flag = "z"
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrInvalidSeatCondition)
}

func TestParseRoomRejectsMissingLayouts(t *testing.T) {
	doc := validDoc()
	doc.Layouts = nil
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMissingLayouts)
}

func TestParseRoomAcceptsEmptyLayouts(t *testing.T) {
	doc := validDoc()
	doc.Layouts = map[string]json.RawMessage{}

	room, err := ParseRoom("H-101", doc)
	require.NoError(t, err)
	assert.Empty(t, room.LayoutStrategies)
}

func TestParseRoomRejectsAmbiguousLayout(t *testing.T) {
	doc := validDoc()
	doc.Layouts["twofold"] = json.RawMessage(
		`{"fixed_selection": [], "relative_distance": {"first_row": 1, "xspace": 1, "yspace": 1}}`)
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMalformedLayout, "a layout carrying two type tags is ambiguous")
}

func TestParseRoomRejectsUnknownLayoutType(t *testing.T) {
	doc := validDoc()
	doc.Layouts["odd"] = json.RawMessage(`{"checkerboard": {}}`)
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrUnknownLayoutType)
}

func TestParseRoomRejectsWrongShapedLayoutParams(t *testing.T) {
	doc := validDoc()
	doc.Layouts["default"] = json.RawMessage(`{"fixed_selection": {"not": "a list"}}`)
	_, err := ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMalformedLayout)

	doc = validDoc()
	doc.Layouts["default"] = json.RawMessage(`{"relative_distance": null}`)
	_, err = ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMalformedLayout, "null parameters must not decode to a zero config")

	doc = validDoc()
	doc.Layouts["default"] = json.RawMessage(`{"fixed_selection": null}`)
	_, err = ParseRoom("H-101", doc)
	assert.ErrorIs(t, err, ErrMalformedLayout, "null references must not decode to an empty selection")
}

func TestParseRoomRelativeDistanceCapacity(t *testing.T) {
	doc := validDoc()
	doc.Layouts = map[string]json.RawMessage{
		"spaced": json.RawMessage(`{"relative_distance": {"first_row": 1, "xspace": 0, "yspace": 0}}`),
	}

	room, err := ParseRoom("H-101", doc)
	require.NoError(t, err)
	require.Len(t, room.LayoutStrategies, 1)
	strategy := room.LayoutStrategies[0]
	assert.Equal(t, model.LayoutRelativeDistance, strategy.Type)
	// validDoc has 3 seats, one broken and one restricted.
	assert.Equal(t, 1, strategy.Capacity, "only usable seats count towards a relative-distance capacity")
}

func TestParseRoomLayoutOrderIsDeterministic(t *testing.T) {
	doc := validDoc()
	doc.Layouts = map[string]json.RawMessage{
		"zebra":   json.RawMessage(`{"fixed_selection": []}`),
		"default": json.RawMessage(`{"fixed_selection": ["1, 1"]}`),
		"alpha":   json.RawMessage(`{"fixed_selection": []}`),
	}

	room, err := ParseRoom("H-101", doc)
	require.NoError(t, err)
	require.Len(t, room.LayoutStrategies, 3)
	assert.Equal(t, "alpha", room.LayoutStrategies[0].Name)
	assert.Equal(t, "default", room.LayoutStrategies[1].Name)
	assert.Equal(t, "zebra", room.LayoutStrategies[2].Name)
}
