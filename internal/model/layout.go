package model

// LayoutType distinguishes the two supported kinds of layout strategies.
type LayoutType string

const (
	// LayoutFixedSelection enumerates its usable seats explicitly.
	LayoutFixedSelection LayoutType = "FIXED_SELECTION"
	// LayoutRelativeDistance computes usable seats with a minimum-spacing
	// greedy filter over the seat coordinates.
	LayoutRelativeDistance LayoutType = "RELATIVE_DISTANCE"
)

// LayoutParameters is the tagged union of the per-type layout parameters.
// Exactly one concrete type exists per LayoutType.
type LayoutParameters interface {
	isLayoutParameters()
}

// FixedSelectionParams lists the seat labels usable under a fixed-selection
// layout, in the order students should be seated.
type FixedSelectionParams struct {
	SeatRefs []string
}

func (FixedSelectionParams) isLayoutParameters() {}

// RelativeDistanceParams configures the spacing filter of a
// relative-distance layout.  FirstRow is a 1-based row index; -1 means "no
// restriction" and behaves like row 1.  XSpace and YSpace are the minimum
// allowed separation along each axis; a candidate seat is excluded only
// when a previously selected seat is closer than both at once.
type RelativeDistanceParams struct {
	FirstRow int     `json:"first_row"`
	XSpace   float64 `json:"xspace"`
	YSpace   float64 `json:"yspace"`
}

func (RelativeDistanceParams) isLayoutParameters() {}

// LayoutStrategy is a named seating policy declared by a room document.
// Capacity is computed once at parse time and never negative.  One room may
// declare several strategies; the strategy named "default" (or the first
// declared one when no such name exists) is the default for distribution.
//
// Fields:
//
//	ID       – primary key identifier (zero until persisted).
//	RoomID   – room to which this strategy belongs.
//	Name     – strategy name, the key in the document's layout mapping.
//	Type     – fixed selection or relative distance.
//	Capacity – number of usable seats under this strategy.
//	Params   – type-specific parameters.
type LayoutStrategy struct {
	ID       uint64           // layout_strategies.id
	RoomID   uint64           // layout_strategies.room_id
	Name     string           // layout_strategies.name
	Type     LayoutType       // layout_strategies.type
	Capacity int              // layout_strategies.capacity
	Params   LayoutParameters // layout_strategies.parameters (JSON)
}
