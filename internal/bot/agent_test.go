package bot

import (
	"math/rand"
	"testing"

	"mexicantrain/internal/bot/brain"
	"mexicantrain/internal/domain"
	"mexicantrain/internal/rules"
)

func TestAgentDecidePlaysWhenLegalMoveExists(t *testing.T) {
	g := newGameForBot()
	agent := NewAgent("a", StrategyStandard.ID, rand.New(rand.NewSource(1)))

	move := agent.Decide(g, 12)
	if move.Play == nil || move.Draw || move.Pass {
		t.Fatalf("expected a play decision, got %+v", move)
	}
}

func TestAgentDecideDrawsWhenStuck(t *testing.T) {
	a := domain.SeatID("a")
	g := &domain.Game{
		Phase:     domain.PhaseInPlay,
		EnginePip: 6,
		Seats:     []domain.SeatID{a},
		Hands:     map[domain.SeatID]domain.Hand{a: {domain.NewTile(2, 5)}},
		Trains:    map[domain.SeatID]*domain.Train{a: domain.NewPersonalTrain(a)},
		Mexican:   domain.NewMexicanTrain(),
	}
	agent := NewAgent(a, StrategyStandard.ID, rand.New(rand.NewSource(1)))

	move := agent.Decide(g, 12)
	if !move.Draw {
		t.Fatalf("expected the agent to draw when no legal move exists")
	}
}

func TestAgentOnEventTracksPlayedTiles(t *testing.T) {
	agent := NewAgent("a", StrategyStandard.ID, rand.New(rand.NewSource(1)))
	tile := domain.NewTile(3, 4)
	agent.OnEvent(rules.Event{Kind: rules.EventMovePlayed, Payload: rules.MovePlayedPayload{Tile: tile}})

	if agent.Memory.Status[tile.ID] != brain.StatusPlayed {
		t.Fatalf("expected OnEvent to mark the played tile")
	}
}
