package bot

import (
	"math/rand"
	"testing"

	"mexicantrain/internal/domain"
	"mexicantrain/internal/rules"
)

func newGameForBot() *domain.Game {
	a := domain.SeatID("a")
	g := &domain.Game{
		Phase:      domain.PhaseInPlay,
		EnginePip:  6,
		Seats:      []domain.SeatID{a},
		Hands:      map[domain.SeatID]domain.Hand{a: {domain.NewTile(6, 1), domain.NewTile(6, 9)}},
		Trains:     map[domain.SeatID]*domain.Train{a: domain.NewPersonalTrain(a)},
		Mexican:    domain.NewMexicanTrain(),
	}
	return g
}

func TestStrategyStandardPrefersDepletingHeaviestTile(t *testing.T) {
	g := newGameForBot()
	moves := rules.LegalMoves(g)
	if len(moves) != 4 { // each tile on the own train and on the Mexican train
		t.Fatalf("expected 4 legal moves, got %d", len(moves))
	}

	ctx := TacticContext{Game: g, Seat: "a", MaxPip: 12}
	chosen := StrategyStandard.Evaluate(ctx, moves, rand.New(rand.NewSource(1)))

	if chosen.Tile.Value() != 15 { // (6,9)
		t.Fatalf("expected the standard strategy to prefer the heavier tile, got value %d", chosen.Tile.Value())
	}
}

func TestStrategyNoviceFallsBackToRandom(t *testing.T) {
	g := newGameForBot()
	moves := rules.LegalMoves(g)
	ctx := TacticContext{Game: g, Seat: "a", MaxPip: 12}

	chosen := StrategyNovice.Evaluate(ctx, moves, rand.New(rand.NewSource(1)))
	found := false
	for _, m := range moves {
		if m.Tile.ID == chosen.Tile.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the novice fallback to choose one of the legal moves")
	}
}

func TestStrategyForLevelDefaults(t *testing.T) {
	if StrategyForLevel(3) != StrategyStandard.ID {
		t.Fatalf("expected level 3 to map to standard")
	}
	if StrategyForLevel(99) != StrategyStandard.ID {
		t.Fatalf("expected an out-of-range level to default to standard")
	}
}
