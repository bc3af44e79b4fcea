package rules

import "mexicantrain/internal/domain"

// EventKind identifies a state change emitted by the rules engine for the
// session manager to broadcast, grounded on the teacher's app.EventKind
// pattern generalized from Tien Len's fixed event set to Mexican Train's.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventMovePlayed     EventKind = "move_played"
	EventDoubleUnsatisfied EventKind = "double_unsatisfied"
	EventTileDrawn      EventKind = "tile_drawn"
	EventTurnPassed     EventKind = "turn_passed"
	EventTrainOpened    EventKind = "train_opened"
	EventGameEnded      EventKind = "game_ended"
)

// Event is a rules-engine outcome with optional per-recipient targeting;
// empty Recipients means broadcast to every seat and spectator.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.SeatID
}

// GameStartedPayload describes the per-player hand dealt for a new game; an
// event carrying it must be scoped to that seat via Recipients, since hands
// must never be broadcast (spec 4.5.1 personalization). No code path in this
// module emits it.
type GameStartedPayload struct {
	EnginePip     int
	FirstSeat     domain.SeatID
	Hand          domain.Hand
}

// MovePlayedPayload describes an accepted tile placement.
type MovePlayedPayload struct {
	Seat          domain.SeatID
	Tile          domain.Tile
	TrainOwner    domain.SeatID // "" means the Mexican train
	NewTail       int
	PlaysAgain    bool // current player must satisfy a double they just created
	TrainOpened   domain.SeatID // non-empty if this move opened that seat's train
}

// TileDrawnPayload describes a boneyard draw, successful or on an empty
// boneyard.
type TileDrawnPayload struct {
	Seat        domain.SeatID
	Tile        *domain.Tile // nil if the boneyard was empty
	CanPlayDrawn bool
	TurnPassed  bool
	TrainOpened domain.SeatID // non-empty if the forced pass opened seat's own train
}

// TurnPassedPayload announces that a seat's turn ended without a play.
type TurnPassedPayload struct {
	Seat       domain.SeatID
	NextSeat   domain.SeatID
	TrainOpened domain.SeatID
}

// GameEndedPayload reports round scores and the winner (spec 4.2.4).
type GameEndedPayload struct {
	WinnerSeat  domain.SeatID
	Scores      map[domain.SeatID]int
	Deadlock    bool
}
