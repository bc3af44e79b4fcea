package match

import "errors"

var (
	ErrGameInProgress = errors.New("game_in_progress")
	ErrMatchComplete  = errors.New("match_complete")
	ErrNoCurrentGame  = errors.New("no_current_game")
)
