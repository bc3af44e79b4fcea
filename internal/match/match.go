package match

import (
	"math/rand"

	"mexicantrain/internal/domain"
	"mexicantrain/internal/rules"
)

// Status is the lifecycle stage of a Match (spec 4.4).
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Seat is one occupant of a match across its whole lifetime, distinct from
// domain.Seat which is scoped to a single game.
type Seat struct {
	ID          domain.SeatID
	DisplayName string
	IsAI        bool
	StrategyID  string
	JoinOrder   int // earliest-joined-first tie-break, spec 4.4 item 4
}

// GameRecord is one completed game's contribution to the match.
type GameRecord struct {
	GameIndex       int
	WinnerSeat      domain.SeatID
	Deadlock        bool
	Scores          map[domain.SeatID]int // pips each seat held at game end
	DurationTurns   int                   // turns taken to finish the round (spec 4.4 item 3)
	TotalPipsScored int                   // sum of every seat's pip total at round end
	PeakHandSize    int                   // largest hand any seat held during the round
	MarginOfVictory int                   // winner's 0 vs. the runner-up's pip total; 0 on a deadlock
}

// Match aggregates a fixed number of games with cumulative scoring (spec
// 4.4), grounded on the teacher's app.Service owning a single *domain.Game,
// generalized to own a bounded sequence of them.
type Match struct {
	ID     string
	Status Status

	Seats    []Seat
	MaxPip   int
	GamesMax int // default 13, spec 6.2

	Current *domain.Game
	History []GameRecord

	// Cumulative holds each seat's running pip total across every completed
	// game; the spec 4.4 "per-player cumulative-score list" lives here, not
	// on the single-round domain.Game, since a Game is scoped to one round.
	Cumulative map[domain.SeatID]int
}

// New creates a waiting match for the given seats.
func New(id string, seats []Seat, maxPip, gamesMax int) *Match {
	cumulative := make(map[domain.SeatID]int, len(seats))
	for _, s := range seats {
		cumulative[s.ID] = 0
	}
	return &Match{
		ID:         id,
		Status:     StatusWaiting,
		Seats:      seats,
		MaxPip:     maxPip,
		GamesMax:   gamesMax,
		Cumulative: cumulative,
	}
}

// seatIDs returns seats in join order.
func (m *Match) seatIDs() []domain.SeatID {
	ordered := append([]Seat{}, m.Seats...)
	sortByJoinOrder(ordered)
	ids := make([]domain.SeatID, len(ordered))
	for i, s := range ordered {
		ids[i] = s.ID
	}
	return ids
}

func sortByJoinOrder(seats []Seat) {
	for i := 1; i < len(seats); i++ {
		for j := i; j > 0 && seats[j].JoinOrder < seats[j-1].JoinOrder; j-- {
			seats[j], seats[j-1] = seats[j-1], seats[j]
		}
	}
}

// StartNextGame deals and starts the next round, transitioning the match
// into in_progress. It is a no-op error if the match already has a live
// game or has reached GamesMax.
func (m *Match) StartNextGame(rng *rand.Rand) (*domain.Game, error) {
	if m.Current != nil && m.Current.Phase != domain.PhaseEnded {
		return nil, ErrGameInProgress
	}
	if len(m.History) >= m.GamesMax {
		return nil, ErrMatchComplete
	}

	g := rules.Deal(m.seatIDs(), m.MaxPip, rng)
	if err := rules.Start(g); err != nil {
		return nil, err
	}
	m.Current = g
	m.Status = StatusInProgress
	return g, nil
}
