// Package examroom implements the room-layout ingestion engine: decoding
// room archives, validating room documents, and computing layout-strategy
// capacities.  All operations are all-or-nothing; a single invalid document
// aborts an entire archive upload and nothing is persisted.
package examroom

import "errors"

// Validation errors raised while parsing room documents.  Any one of them
// rejects the whole archive.  Callers can rely on errors.Is against these
// sentinels; the wrapped message carries the room number or archive entry
// the failure occurred in.
var (
	// ErrMissingRoomNumber is returned when an archive entry name yields a
	// blank room number.
	ErrMissingRoomNumber = errors.New("missing room number")

	// ErrMalformedDocument is returned when a document is absent or is not
	// valid JSON of the expected shape.
	ErrMalformedDocument = errors.New("malformed room document")

	// ErrMissingNameOrBuilding is returned when a document lacks the
	// required name or building field.
	ErrMissingNameOrBuilding = errors.New("missing room name or building")

	// ErrMissingSeats is returned when a document has no rows section.
	ErrMissingSeats = errors.New("missing seats")

	// ErrMalformedRow is returned when a row is missing its seats list.
	ErrMalformedRow = errors.New("malformed seat row")

	// ErrMalformedSeat is returned when a seat entry has no position.
	ErrMalformedSeat = errors.New("malformed seat")

	// ErrInvalidSeatCondition is returned when a seat's condition flag is
	// not in the closed set of known tokens.
	ErrInvalidSeatCondition = errors.New("invalid seat condition")

	// ErrMissingLayouts is returned when a document has no layouts section.
	ErrMissingLayouts = errors.New("missing layout strategies")

	// ErrMalformedLayout is returned when a layout entry does not carry
	// exactly one type tag, or its parameters have the wrong shape.
	ErrMalformedLayout = errors.New("malformed layout strategy")

	// ErrUnknownLayoutType is returned when a layout's type tag is not one
	// of the recognized identifiers.
	ErrUnknownLayoutType = errors.New("unknown layout strategy type")
)

// ErrArchiveRead is returned when the archive itself cannot be read.  It is
// an infrastructure failure, not a validation one; the wrapped message
// carries the underlying cause.
var ErrArchiveRead = errors.New("cannot read room archive")

// ErrNoLayoutStrategy is returned when a room without any layout strategy
// is used in an operation that needs its default layout.
var ErrNoLayoutStrategy = errors.New("room has no layout strategy")

var validationErrors = []error{
	ErrMissingRoomNumber,
	ErrMalformedDocument,
	ErrMissingNameOrBuilding,
	ErrMissingSeats,
	ErrMalformedRow,
	ErrMalformedSeat,
	ErrInvalidSeatCondition,
	ErrMissingLayouts,
	ErrMalformedLayout,
	ErrUnknownLayoutType,
}

// IsValidationError reports whether err is one of the document validation
// errors, as opposed to an archive I/O or storage failure.  Handlers use it
// to map failures to a 400 response.
func IsValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
