package session

import (
	"fmt"

	"mexicantrain/internal/bot"
	"mexicantrain/internal/domain"
	"mexicantrain/internal/rules"
)

// Tick runs the session's per-tick scheduling (spec 4.5.2, 4.6), driven by
// the transport adapter's MatchLoop invocation. It is the cooperative
// scheduler's suspension point: no goroutine ever sleeps for an AI move or
// a countdown wait, both are expressed as tick-count comparisons.
func (s *Session) Tick(now int64) []Outbound {
	s.LastTick = now
	var out []Outbound
	out = append(out, s.processAI()...)
	out = append(out, s.processCountdown()...)
	return out
}

// armAITrigger schedules the next AI move if the current player is
// AI-controlled, or clears any pending schedule otherwise.
func (s *Session) armAITrigger() []Outbound {
	g := s.CurrentGame()
	if g == nil || !s.IsAISeat(g.CurrentSeat()) {
		s.AIWaitUntilTick = 0
		s.AITimeoutTick = 0
		return nil
	}
	s.AIWaitUntilTick = s.LastTick + aiMoveDelayTicks
	s.AITimeoutTick = s.LastTick + aiMoveTimeoutTicks
	s.AILoopCount = 0
	return nil
}

// processAI drives a scheduled AI turn: waits out the configured delay,
// plays up to aiLoopMax consecutive AI turns (covering an AI that draws and
// can immediately play the drawn tile), and force-advances on timeout or
// internal error (spec 7).
func (s *Session) processAI() []Outbound {
	g := s.CurrentGame()
	if g == nil || s.AIWaitUntilTick == 0 {
		return nil
	}
	if !s.IsAISeat(g.CurrentSeat()) {
		s.AIWaitUntilTick = 0
		return nil
	}
	if s.LastTick >= s.AITimeoutTick {
		return s.forceAdvance("ai_timeout", "AI move timed out")
	}
	if s.LastTick < s.AIWaitUntilTick {
		return nil
	}

	var out []Outbound
	for i := 0; i < aiLoopMax; i++ {
		g = s.CurrentGame()
		if g == nil || !s.IsAISeat(g.CurrentSeat()) {
			break
		}
		seat := g.CurrentSeat()
		agent := s.Bots[seat]

		moveOut, err := s.applyAIMove(agent, seat, g)
		if err != nil {
			out = append(out, s.forceAdvance("ai_internal_error", err.Error())...)
			return out
		}
		out = append(out, moveOut...)

		if ended, _ := rules.Ended(g); ended {
			break
		}
	}

	s.AIWaitUntilTick = 0
	out = append(out, s.armAITrigger()...)
	return out
}

// applyAIMove asks agent for a decision and applies it, recovering any
// panic from a misbehaving tactic as an ai_internal_error (spec 7).
func (s *Session) applyAIMove(agent *bot.Agent, seat domain.SeatID, g *domain.Game) (out []Outbound, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	move := agent.Decide(g, s.Defaults.MaxPip)

	switch {
	case move.Play != nil:
		payload, playErr := rules.PlayMove(g, seat, move.Play.Tile.ID, move.Play.Dest)
		if playErr != nil {
			return nil, playErr
		}
		out = append(out, toAll("ai_move", payload))
		agent.OnEvent(rules.Event{Kind: rules.EventMovePlayed, Payload: payload})
	case move.Draw:
		payload, drawErr := rules.Draw(g, seat)
		if drawErr != nil {
			return nil, drawErr
		}
		out = append(out, toAll("ai_move", payload))
		agent.OnEvent(rules.Event{Kind: rules.EventTileDrawn, Payload: payload})
	default:
		if _, passErr := rules.Pass(g, seat); passErr != nil {
			return nil, passErr
		}
	}

	out = append(out, s.gameStateBroadcasts()...)
	if ended, _ := rules.Ended(g); ended {
		out = append(out, s.finishGame()...)
	}
	return out, nil
}

// forceAdvance reports an AI error and moves the turn on without a play, so
// one stuck AI seat can never stall the match (spec 7).
func (s *Session) forceAdvance(kind, message string) []Outbound {
	g := s.CurrentGame()
	out := []Outbound{toAll("ai_error", ErrorPayload{Kind: kind, Message: message})}
	if g != nil {
		rules.ForceAdvanceTurn(g)
		out = append(out, s.gameStateBroadcasts()...)
	}
	s.AIWaitUntilTick = 0
	out = append(out, s.armAITrigger()...)
	return out
}
