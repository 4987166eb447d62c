package examroom

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// seatGrid builds rows x cols usable seats with unit spacing.  Labels are
// "<row>, <seat>" with 1-based indices, matching the parser's composition.
func seatGrid(rows, cols int) []model.Seat {
	seats := make([]model.Seat, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			seats = append(seats, model.Seat{
				Label:     fmt.Sprintf("%d, %d", y+1, x+1),
				Condition: model.SeatUsable,
				X:         float64(x),
				Y:         float64(y),
			})
		}
	}
	return seats
}

func TestDefaultLayoutStrategyPrefersDefaultName(t *testing.T) {
	room := &model.Room{
		RoomNumber: "H-101",
		LayoutStrategies: []model.LayoutStrategy{
			{Name: "alpha"},
			{Name: "default", Capacity: 12},
			{Name: "zebra"},
		},
	}
	strategy, err := DefaultLayoutStrategy(room)
	require.NoError(t, err)
	assert.Equal(t, "default", strategy.Name)
	assert.Equal(t, 12, strategy.Capacity)
}

func TestDefaultLayoutStrategyFallsBackToFirst(t *testing.T) {
	room := &model.Room{
		RoomNumber: "H-101",
		LayoutStrategies: []model.LayoutStrategy{
			{Name: "alpha"},
			{Name: "zebra"},
		},
	}
	strategy, err := DefaultLayoutStrategy(room)
	require.NoError(t, err)
	assert.Equal(t, "alpha", strategy.Name)
}

func TestDefaultLayoutStrategyRequiresOne(t *testing.T) {
	room := &model.Room{RoomNumber: "H-101"}
	_, err := DefaultLayoutStrategy(room)
	assert.ErrorIs(t, err, ErrNoLayoutStrategy)
}

func TestFixedSelectionResolvesSeats(t *testing.T) {
	room := &model.Room{Seats: seatGrid(2, 2)}
	strategy := model.LayoutStrategy{
		Name: "default",
		Type: model.LayoutFixedSelection,
		Params: model.FixedSelectionParams{
			SeatRefs: []string{"2, 1", "1, 2", "9, 9"},
		},
	}

	seats, err := SelectedSeats(room, strategy)
	require.NoError(t, err)
	require.Len(t, seats, 3, "every reference counts, matched or not")

	assert.Equal(t, "2, 1", seats[0].Label)
	assert.Equal(t, 1.0, seats[0].Y, "matched references carry the room seat's coordinates")
	assert.Equal(t, "1, 2", seats[1].Label)
	assert.Equal(t, "9, 9", seats[2].Label, "unmatched references become label-only seats")
	assert.Equal(t, model.SeatUsable, seats[2].Condition)
}

func TestFixedSelectionSizes(t *testing.T) {
	room := &model.Room{Seats: seatGrid(5, 10)}
	for _, n := range []int{0, 1, 50} {
		refs := make([]string, n)
		for i := range refs {
			refs[i] = fmt.Sprintf("%d, %d", i/10+1, i%10+1)
		}
		seats, err := SelectedSeats(room, model.LayoutStrategy{
			Type:   model.LayoutFixedSelection,
			Params: model.FixedSelectionParams{SeatRefs: refs},
		})
		require.NoError(t, err)
		assert.Len(t, seats, n)
	}
}

func TestRelativeDistanceZeroSpacingSelectsAllUsable(t *testing.T) {
	seats := seatGrid(3, 4)
	seats[5].Condition = model.SeatBroken
	seats[7].Condition = model.SeatRestricted

	selected := selectSpacedSeats(seats, model.RelativeDistanceParams{FirstRow: 1})
	assert.Len(t, selected, 10, "zero spacing keeps every usable seat")
	for _, seat := range selected {
		assert.True(t, seat.Condition.Usable(), "seat %s", seat.Label)
	}
}

func TestRelativeDistanceFirstRowBoundary(t *testing.T) {
	seats := seatGrid(4, 2)

	selected := selectSpacedSeats(seats, model.RelativeDistanceParams{FirstRow: 3})
	require.NotEmpty(t, selected)
	for _, seat := range selected {
		assert.GreaterOrEqual(t, seat.Y, 2.0, "rows ahead of the first allowed one are excluded")
	}
	assert.Len(t, selected, 4, "the boundary row itself is included")
}

func TestRelativeDistanceFirstRowMinusOne(t *testing.T) {
	seats := seatGrid(4, 2)
	unrestricted := selectSpacedSeats(seats, model.RelativeDistanceParams{FirstRow: -1})
	fromRowOne := selectSpacedSeats(seats, model.RelativeDistanceParams{FirstRow: 1})
	assert.Equal(t, fromRowOne, unrestricted, "-1 behaves like starting at row 1")
}

func TestRelativeDistanceSpacingInvariant(t *testing.T) {
	seats := seatGrid(6, 8)
	params := model.RelativeDistanceParams{FirstRow: 1, XSpace: 1.5, YSpace: 1}

	selected := selectSpacedSeats(seats, params)
	require.NotEmpty(t, selected)
	for i, a := range selected {
		for _, b := range selected[i+1:] {
			tooCloseX := math.Abs(a.X-b.X) <= params.XSpace
			tooCloseY := math.Abs(a.Y-b.Y) <= params.YSpace
			assert.False(t, tooCloseX && tooCloseY,
				"seats %s and %s violate the spacing on both axes", a.Label, b.Label)
		}
	}
}

func TestRelativeDistanceSingleAxisDistanceSuffices(t *testing.T) {
	// Two seats in the same row, far enough apart on x alone.
	seats := []model.Seat{
		{Label: "1, 1", Condition: model.SeatUsable, X: 0, Y: 0},
		{Label: "1, 2", Condition: model.SeatUsable, X: 3, Y: 0},
	}
	selected := selectSpacedSeats(seats, model.RelativeDistanceParams{FirstRow: 1, XSpace: 2, YSpace: 5})
	assert.Len(t, selected, 2, "distance on one axis alone satisfies the spacing rule")
}

func TestRelativeDistanceGreedyOrder(t *testing.T) {
	// With unit spacing on both axes the greedy walk over a 2x3 grid keeps
	// every second seat of the first row; every second-row seat sits inside
	// some picked seat's exclusion box.
	seats := seatGrid(2, 3)
	params := model.RelativeDistanceParams{FirstRow: 1, XSpace: 1, YSpace: 1}

	selected := selectSpacedSeats(seats, params)
	require.Len(t, selected, 2)
	assert.Equal(t, "1, 1", selected[0].Label)
	assert.Equal(t, "1, 3", selected[1].Label)
}

func TestRelativeDistanceDeterministic(t *testing.T) {
	seats := seatGrid(5, 5)
	params := model.RelativeDistanceParams{FirstRow: 2, XSpace: 1, YSpace: 1}
	first := selectSpacedSeats(seats, params)
	second := selectSpacedSeats(seats, params)
	assert.Equal(t, first, second)
}

func TestSelectedSeatsRejectsMissingParams(t *testing.T) {
	room := &model.Room{Seats: seatGrid(1, 1)}
	_, err := SelectedSeats(room, model.LayoutStrategy{Name: "broken"})
	assert.ErrorIs(t, err, ErrMalformedLayout)
}
