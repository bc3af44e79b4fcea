package rules

import (
	"math/rand"
	"testing"

	"mexicantrain/internal/domain"
)

func seats(n int) []domain.SeatID {
	out := make([]domain.SeatID, n)
	for i := range out {
		out[i] = domain.SeatID(rune('a' + i))
	}
	return out
}

func TestDealConservesTiles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Deal(seats(4), MaxPip, rng)

	if !ConservesTiles(g, MaxPip) {
		t.Fatalf("expected dealt game to conserve all tiles")
	}
	if !TurnCursorValid(g) {
		t.Fatalf("expected a valid turn cursor after deal")
	}
	if g.Phase != domain.PhaseSetup {
		t.Fatalf("expected PhaseSetup after deal, got %v", g.Phase)
	}
}

func TestDealHandSizesMatchPlayerCount(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	players := seats(3)
	g := Deal(players, MaxPip, rng)

	want := domain.HandSize(len(players)) - 1 // starter's hand lost the engine tile
	if got := len(g.Hands[g.Seats[g.CurrentTurn]]); got != want && got != want+1 {
		t.Fatalf("starter hand size = %d, want %d or %d", got, want, want+1)
	}
}

func TestSelectStarterPrefersHighestDouble(t *testing.T) {
	a, b := domain.SeatID("a"), domain.SeatID("b")
	hands := map[domain.SeatID]domain.Hand{
		a: {domain.NewTile(3, 3), domain.NewTile(1, 2)},
		b: {domain.NewTile(9, 9), domain.NewTile(0, 1)},
	}
	seat, tile, pip := selectStarter([]domain.SeatID{a, b}, hands)
	if seat != b {
		t.Fatalf("expected seat b to start (holds highest double), got %v", seat)
	}
	if !tile.IsDouble() || pip != 9 {
		t.Fatalf("expected engine tile (9,9) with pip 9, got %+v pip=%d", tile, pip)
	}
}

func TestSelectStarterFallsBackToHighestTile(t *testing.T) {
	a, b := domain.SeatID("a"), domain.SeatID("b")
	hands := map[domain.SeatID]domain.Hand{
		a: {domain.NewTile(3, 4), domain.NewTile(1, 2)},
		b: {domain.NewTile(5, 6), domain.NewTile(0, 1)},
	}
	seat, tile, pip := selectStarter([]domain.SeatID{a, b}, hands)
	if seat != b {
		t.Fatalf("expected seat b to start (holds highest-value tile), got %v", seat)
	}
	if tile.Value() != 11 || pip != 6 {
		t.Fatalf("expected engine tile (5,6) with pip 6, got %+v pip=%d", tile, pip)
	}
}
