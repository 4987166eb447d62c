package examroom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

func TestDecodeSeatConditionKnownTokens(t *testing.T) {
	cases := map[string]model.SeatCondition{
		"":  model.SeatUsable,
		"u": model.SeatUsable,
		"b": model.SeatBroken,
		"r": model.SeatRestricted,
	}
	for flag, want := range cases {
		got, err := DecodeSeatCondition(flag)
		assert.NoError(t, err, "flag %q should decode", flag)
		assert.Equal(t, want, got, "flag %q", flag)
	}
}

func TestDecodeSeatConditionRejectsUnknownToken(t *testing.T) {
	_, err := DecodeSeatCondition("x")
	assert.ErrorIs(t, err, ErrInvalidSeatCondition, "unknown flag must not default to usable")

	_, err = DecodeSeatCondition("B")
	assert.ErrorIs(t, err, ErrInvalidSeatCondition, "flags are case sensitive")
}
