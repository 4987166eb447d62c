package examroom

import (
	"fmt"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// DecodeSeatCondition maps a seat's flag token from a room document to a
// SeatCondition.  An absent flag (empty token) means the seat is usable.
// Tokens outside the closed mapping are a validation error, never a silent
// default.
func DecodeSeatCondition(flag string) (model.SeatCondition, error) {
	switch flag {
	case "", "u":
		return model.SeatUsable, nil
	case "b":
		return model.SeatBroken, nil
	case "r":
		return model.SeatRestricted, nil
	default:
		return "", fmt.Errorf("%w: flag %q", ErrInvalidSeatCondition, flag)
	}
}
