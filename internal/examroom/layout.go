package examroom

import (
	"fmt"
	"math"
	"sort"

	"github.com/iliyamo/exam-room-planner/internal/model"
)

// SelectedSeats returns the ordered list of usable seats of a room under
// one layout strategy.  The result order is the order students are seated
// in during a distribution run: the raw seat-reference order for a fixed
// selection, the greedy selection order for a relative-distance layout.
// The function is pure; identical inputs always yield the identical list.
func SelectedSeats(room *model.Room, strategy model.LayoutStrategy) ([]model.Seat, error) {
	switch params := strategy.Params.(type) {
	case model.FixedSelectionParams:
		return fixedSelectionSeats(room.Seats, params), nil
	case model.RelativeDistanceParams:
		return selectSpacedSeats(room.Seats, params), nil
	default:
		return nil, fmt.Errorf("%w: layout %q", ErrMalformedLayout, strategy.Name)
	}
}

// DefaultLayoutStrategy picks the strategy used when a caller does not name
// one: the strategy called "default" when present, otherwise the first
// declared strategy.  Rooms without any strategy cannot be distributed to.
func DefaultLayoutStrategy(room *model.Room) (model.LayoutStrategy, error) {
	if len(room.LayoutStrategies) == 0 {
		return model.LayoutStrategy{}, fmt.Errorf("%w: room %s", ErrNoLayoutStrategy, room.RoomNumber)
	}
	for _, strategy := range room.LayoutStrategies {
		if strategy.Name == "default" {
			return strategy, nil
		}
	}
	return room.LayoutStrategies[0], nil
}

// fixedSelectionSeats resolves the listed seat references against the
// room's seats where possible, so the returned seats carry coordinates and
// condition.  References without a matching seat still count; they become
// label-only seats, since a fixed selection's capacity is defined as the
// length of its reference list.
func fixedSelectionSeats(seats []model.Seat, params model.FixedSelectionParams) []model.Seat {
	byLabel := make(map[string]model.Seat, len(seats))
	for _, seat := range seats {
		if _, ok := byLabel[seat.Label]; !ok {
			byLabel[seat.Label] = seat
		}
	}

	selected := make([]model.Seat, 0, len(params.SeatRefs))
	for _, ref := range params.SeatRefs {
		if seat, ok := byLabel[ref]; ok {
			selected = append(selected, seat)
		} else {
			selected = append(selected, model.Seat{Label: ref, Condition: model.SeatUsable})
		}
	}
	return selected
}

// selectSpacedSeats runs the greedy minimum-spacing filter of a
// relative-distance layout.
//
// Candidates are the usable seats at or behind the configured first row,
// sorted ascending by (y, x).  Walking that order, a candidate is accepted
// unless some already-accepted seat lies within the exclusion box on both
// axes at once; being far enough on a single axis is sufficient to accept.
// This is the documented incremental heuristic, not a maximum-independent-
// set solver.
func selectSpacedSeats(seats []model.Seat, params model.RelativeDistanceParams) []model.Seat {
	if len(seats) == 0 {
		return nil
	}

	firstRow := params.FirstRow
	if firstRow == -1 {
		// -1 means "no restriction", which is the same as starting at row 1.
		firstRow = 1
	}
	minY := float64(firstRow - 1)

	candidates := make([]model.Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.Y >= minY && seat.Condition.Usable() {
			candidates = append(candidates, seat)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Y != candidates[j].Y {
			return candidates[i].Y < candidates[j].Y
		}
		return candidates[i].X < candidates[j].X
	})

	var selected []model.Seat
	for _, candidate := range candidates {
		blocked := false
		for _, picked := range selected {
			if math.Abs(picked.Y-candidate.Y) <= params.YSpace && math.Abs(picked.X-candidate.X) <= params.XSpace {
				blocked = true
				break
			}
		}
		if !blocked {
			selected = append(selected, candidate)
		}
	}
	return selected
}
