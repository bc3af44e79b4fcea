package bot

import (
	"math/rand"

	"mexicantrain/internal/bot/brain"
	"mexicantrain/internal/domain"
	"mexicantrain/internal/rules"
)

// Agent is one AI-controlled seat, grounded on the teacher's bot.Agent.
type Agent struct {
	Seat       domain.SeatID
	StrategyID string
	Memory     *brain.GameMemory
	rng        *rand.Rand
}

// NewAgent creates an agent seated at seat, playing strategyID. rng seeds
// the novice fallback and any future stochastic tactic.
func NewAgent(seat domain.SeatID, strategyID string, rng *rand.Rand) *Agent {
	return &Agent{Seat: seat, StrategyID: strategyID, Memory: brain.NewMemory(), rng: rng}
}

// Decide picks this agent's action for the current turn: play a tile if any
// legal move exists, otherwise draw. rules.Draw itself ends the turn when
// the drawn tile is unplayable; a playable drawn tile is chosen by the next
// Decide call.
func (a *Agent) Decide(g *domain.Game, maxPip int) Move {
	a.Memory.Sync(g, a.Seat)

	moves := rules.LegalMoves(g)
	if len(moves) == 0 {
		return Move{Draw: true}
	}

	strategy, ok := Strategies[a.StrategyID]
	if !ok {
		strategy = StrategyStandard
	}

	ctx := TacticContext{
		Game:      g,
		Seat:      a.Seat,
		MaxPip:    maxPip,
		Rng:       a.rng,
		Memory:    a.Memory,
		Estimator: brain.NewEstimator(a.Memory),
	}
	chosen := strategy.Evaluate(ctx, moves, a.rng)
	return Move{Play: &chosen}
}

// OnEvent updates the agent's memory from a rules-engine event broadcast,
// grounded on the teacher's Agent.OnGameEvent.
func (a *Agent) OnEvent(event rules.Event) {
	switch p := event.Payload.(type) {
	case rules.MovePlayedPayload:
		a.Memory.MarkPlayed(p.Tile)
	case rules.TileDrawnPayload:
		if p.Tile != nil && p.Seat != a.Seat {
			a.Memory.MarkOpponent(*p.Tile, p.Seat)
		}
	}
}
