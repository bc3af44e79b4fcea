package domain

// SeatID is a stable identifier for a seat in a match, distinct from the
// connection identity that occupies it (spec 9, "Identity handling").
type SeatID string

// SeatRole distinguishes a human-occupied seat from an AI-controlled one.
type SeatRole int

const (
	SeatHuman SeatRole = iota
	SeatAI
)

// Seat is a player slot at the table: opaque identifier, display name, and
// role (spec 3.1 "Player Seat").
type Seat struct {
	ID          SeatID
	DisplayName string
	Role        SeatRole
	StrategyID  string // only meaningful when Role == SeatAI
	Connected   bool
}

// IsAI reports whether the seat is AI-controlled.
func (s Seat) IsAI() bool {
	return s.Role == SeatAI
}
