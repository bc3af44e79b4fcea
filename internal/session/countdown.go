package session

import "mexicantrain/internal/match"

// CountdownUpdateView reports minutes remaining before a waiting match
// auto-starts or is deleted (spec 4.6).
type CountdownUpdateView struct {
	MinutesRemaining int `json:"minutes_remaining"`
}

// GameDeletedView announces a waiting match was torn down for never
// reaching the minimum seat count (spec 4.6).
type GameDeletedView struct {
	Reason string `json:"reason"`
}

// processCountdown wakes every countdownStepTicks (spec 4.6: "every 30s"),
// and on each wake: auto-starts a waiting match past its deadline with
// enough seated players, auto-deletes one past its deadline without enough,
// or broadcasts a countdown_update when the remaining-minutes count has
// crossed a minute boundary since the last wake.
func (s *Session) processCountdown() []Outbound {
	if s.Status != match.StatusWaiting {
		return nil
	}
	if s.LastTick%countdownStepTicks != 0 {
		return nil
	}

	if s.LastTick < s.CountdownDeadline {
		minutesRemaining := int((s.CountdownDeadline - s.LastTick) / (60 * TickHz))
		if minutesRemaining == s.LastMinutesNotice {
			return nil
		}
		s.LastMinutesNotice = minutesRemaining
		return []Outbound{toAll("countdown_update", CountdownUpdateView{MinutesRemaining: minutesRemaining})}
	}

	if s.Occupied() >= s.Defaults.MinPlayers {
		return s.autoStart()
	}

	s.Status = match.StatusCompleted
	return []Outbound{toAll("game_deleted", GameDeletedView{Reason: "not enough players joined before the countdown deadline"})}
}

// autoStart deals the first game once the countdown deadline passes with
// enough seats filled, generalized from the teacher's
// processBots/LastSinglePlayerTick auto-fill timer into this session's
// auto-start-or-delete countdown path.
func (s *Session) autoStart() []Outbound {
	s.fillWithAIIfSolo()

	seats := make([]match.Seat, len(s.Seats))
	copy(seats, s.Seats)
	s.M = match.New(s.ID, seats, s.Defaults.MaxPip, s.Defaults.GamesPerMatch)
	if _, err := s.M.StartNextGame(s.Rng); err != nil {
		return nil
	}
	s.Status = match.StatusInProgress

	out := []Outbound{toAll("game_auto_started", s.buildMatchState())}
	out = append(out, s.gameStateBroadcasts()...)
	out = append(out, s.armAITrigger()...)
	return out
}
