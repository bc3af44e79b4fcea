package rules

import (
	"math/rand"

	"mexicantrain/internal/domain"
)

// MaxPip is the default maximum pip value for the tile set (spec 3.1, 6.2).
const MaxPip = 12

// Deal builds a fresh Game for the given seated players, shuffling with rng
// and selecting the starting double per spec 4.2.1. seats must be in seat
// order; rng is injected so tests and replays are deterministic, grounded on
// the teacher's app.NewService(rng) pattern.
func Deal(seats []domain.SeatID, maxPip int, rng *rand.Rand) *domain.Game {
	tiles := domain.FullSet(maxPip)
	rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

	handSize := domain.HandSize(len(seats))
	hands := make(map[domain.SeatID]domain.Hand, len(seats))
	idx := 0
	for _, seat := range seats {
		hands[seat] = append(domain.Hand{}, tiles[idx:idx+handSize]...)
		idx += handSize
	}
	boneyard := domain.Boneyard(append([]domain.Tile{}, tiles[idx:]...))

	starter, engineTile, enginePip := selectStarter(seats, hands)
	hands[starter], _ = hands[starter].Remove(engineTile.ID)

	trains := make(map[domain.SeatID]*domain.Train, len(seats))
	for _, seat := range seats {
		trains[seat] = domain.NewPersonalTrain(seat)
	}

	startIdx := 0
	for i, s := range seats {
		if s == starter {
			startIdx = i
			break
		}
	}

	return &domain.Game{
		Phase:        domain.PhaseSetup,
		EnginePip:    enginePip,
		EngineTile:   engineTile,
		Seats:        append([]domain.SeatID{}, seats...),
		Hands:        hands,
		Trains:       trains,
		Mexican:      domain.NewMexicanTrain(),
		Boneyard:     boneyard,
		CurrentTurn:  startIdx,
		PeakHandSize: handSize,
	}
}

// selectStarter implements spec 4.2.1 step 3: the holder of the highest
// double starts, and that double becomes the engine tile. If no hand holds
// a double, the holder of the highest-valued tile starts instead and that
// tile becomes the engine tile, with enginePip taken as max(A, B) of it. In
// both branches the tile returned is the real tile removed from the
// starter's hand, never a synthesized one, so tile conservation (spec 8)
// holds.
func selectStarter(seats []domain.SeatID, hands map[domain.SeatID]domain.Hand) (domain.SeatID, domain.Tile, int) {
	bestPip := -1
	var bestSeat domain.SeatID
	var bestTile domain.Tile
	found := false

	for _, seat := range seats {
		for _, t := range hands[seat] {
			if t.IsDouble() && t.A > bestPip {
				bestPip = t.A
				bestSeat = seat
				bestTile = t
				found = true
			}
		}
	}
	if found {
		return bestSeat, bestTile, bestPip
	}

	// No double held anywhere: fall back to highest-valued tile.
	bestValue := -1
	for _, seat := range seats {
		for _, t := range hands[seat] {
			if t.Value() > bestValue {
				bestValue = t.Value()
				bestSeat = seat
				bestTile = t
			}
		}
	}
	k := bestTile.A
	if bestTile.B > k {
		k = bestTile.B
	}
	return bestSeat, bestTile, k
}
