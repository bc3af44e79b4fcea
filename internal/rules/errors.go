package rules

import "errors"

// Error kinds returned by the rules engine (spec 4.2.6, 7).
var (
	ErrNotYourTurn       = errors.New("not_your_turn")
	ErrTileNotInHand     = errors.New("tile_not_in_hand")
	ErrIllegalDestination = errors.New("illegal_destination")
	ErrMustPlayNotDraw   = errors.New("must_play_not_draw")
	ErrGameNotInPlay     = errors.New("game_not_in_play")
	ErrUnknownSeat       = errors.New("unknown_seat")
)
