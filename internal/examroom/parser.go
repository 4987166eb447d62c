package examroom

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// ParseRoom validates one decoded room document and converts it into a Room
// value.  Validation fails fast: the first violated rule aborts the parse
// and the returned error wraps the corresponding sentinel together with the
// room number for context.
//
// Seats are always parsed before layout strategies, because the capacity of
// a relative-distance layout depends on the full seat list.
func ParseRoom(roomNumber string, doc *RoomDocument) (*model.Room, error) {
	if strings.TrimSpace(roomNumber) == "" {
		return nil, ErrMissingRoomNumber
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: room %s", ErrMalformedDocument, roomNumber)
	}
	if strings.TrimSpace(doc.Name) == "" || strings.TrimSpace(doc.Building) == "" {
		return nil, fmt.Errorf("%w: room %s", ErrMissingNameOrBuilding, roomNumber)
	}

	room := &model.Room{
		RoomNumber: roomNumber,
		Name:       doc.Name,
		Building:   doc.Building,
		CreatedAt:  time.Now().UTC(),
	}
	// Alternative identifiers are only kept when they differ from the
	// primary ones.
	if doc.Number != "" && doc.Number != roomNumber {
		alt := doc.Number
		room.AlternativeRoomNumber = &alt
	}
	if doc.Shortname != "" && doc.Shortname != doc.Name {
		alt := doc.Shortname
		room.AlternativeName = &alt
	}

	seats, err := parseSeats(roomNumber, doc.Rows)
	if err != nil {
		return nil, err
	}
	room.Seats = seats

	layouts, err := parseLayouts(roomNumber, doc.Layouts, seats)
	if err != nil {
		return nil, err
	}
	room.LayoutStrategies = layouts

	return room, nil
}

// parseSeats flattens the document rows into the room's ordered seat list.
// An absent rows section is an error, an empty one is not.
func parseSeats(roomNumber string, rows []RowDocument) ([]model.Seat, error) {
	if rows == nil {
		return nil, fmt.Errorf("%w: room %s", ErrMissingSeats, roomNumber)
	}

	var seats []model.Seat
	for _, row := range rows {
		if row.Seats == nil {
			return nil, fmt.Errorf("%w: room %s, row %q", ErrMalformedRow, roomNumber, row.Label)
		}
		for _, seat := range row.Seats {
			if seat.Position == nil {
				return nil, fmt.Errorf("%w: room %s, row %q", ErrMalformedSeat, roomNumber, row.Label)
			}
			condition, err := DecodeSeatCondition(seat.Flag)
			if err != nil {
				return nil, fmt.Errorf("%w: room %s", err, roomNumber)
			}
			seats = append(seats, model.Seat{
				Label:     composeSeatLabel(row.Label, seat.Label),
				Condition: condition,
				X:         seat.Position.X,
				Y:         seat.Position.Y,
			})
		}
	}
	return seats, nil
}

// composeSeatLabel joins row and seat labels as "<row>, <seat>".  Missing
// parts collapse to the other part alone, never to a null-ish placeholder.
func composeSeatLabel(rowLabel, seatLabel string) string {
	if rowLabel == "" {
		return seatLabel
	}
	return rowLabel + ", " + seatLabel
}

// parseLayouts decodes the layout mapping into typed strategies with
// precomputed capacities.  Strategy names are processed in sorted order so
// repeated parses of the same document yield the same strategy list.
func parseLayouts(roomNumber string, layouts map[string]json.RawMessage, seats []model.Seat) ([]model.LayoutStrategy, error) {
	if layouts == nil {
		return nil, fmt.Errorf("%w: room %s", ErrMissingLayouts, roomNumber)
	}

	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)

	strategies := make([]model.LayoutStrategy, 0, len(layouts))
	for _, name := range names {
		strategy, err := parseLayout(name, layouts[name], seats)
		if err != nil {
			return nil, fmt.Errorf("%w: room %s", err, roomNumber)
		}
		strategies = append(strategies, strategy)
	}
	return strategies, nil
}

// parseLayout decodes one layout entry.  The entry must be an object with
// exactly one type tag; an ambiguous entry with several tags is rejected
// rather than silently picking one.
func parseLayout(name string, raw json.RawMessage, seats []model.Seat) (model.LayoutStrategy, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil || len(tagged) != 1 {
		return model.LayoutStrategy{}, fmt.Errorf("%w: layout %q must carry exactly one type tag", ErrMalformedLayout, name)
	}

	var tag string
	var value json.RawMessage
	for k, v := range tagged {
		tag, value = k, v
	}

	switch tag {
	case layoutTagFixedSelection:
		var refs []string
		if err := strictUnmarshalList(value, &refs); err != nil {
			return model.LayoutStrategy{}, fmt.Errorf("%w: layout %q: fixed selection must be a list", ErrMalformedLayout, name)
		}
		params := model.FixedSelectionParams{SeatRefs: refs}
		return model.LayoutStrategy{
			Name:     name,
			Type:     model.LayoutFixedSelection,
			Capacity: len(refs),
			Params:   params,
		}, nil

	case layoutTagRelativeDistance:
		var params model.RelativeDistanceParams
		if err := strictUnmarshalObject(value, &params); err != nil {
			return model.LayoutStrategy{}, fmt.Errorf("%w: layout %q: relative distance must be an object", ErrMalformedLayout, name)
		}
		selected := selectSpacedSeats(seats, params)
		return model.LayoutStrategy{
			Name:     name,
			Type:     model.LayoutRelativeDistance,
			Capacity: len(selected),
			Params:   params,
		}, nil

	default:
		return model.LayoutStrategy{}, fmt.Errorf("%w: layout %q has type %q", ErrUnknownLayoutType, name, tag)
	}
}

// strictUnmarshalObject rejects JSON values that are not objects before
// unmarshalling, since encoding/json would accept "null" for a struct.
func strictUnmarshalObject(raw json.RawMessage, v any) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return err
	}
	if probe == nil {
		return fmt.Errorf("json: value is not an object")
	}
	return json.Unmarshal(raw, v)
}

// strictUnmarshalList rejects JSON values that are not arrays before
// unmarshalling, since encoding/json would accept "null" for a slice.
func strictUnmarshalList(raw json.RawMessage, v any) error {
	var probe []json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return err
	}
	if probe == nil {
		return fmt.Errorf("json: value is not a list")
	}
	return json.Unmarshal(raw, v)
}
