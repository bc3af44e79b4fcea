package rules

import "mexicantrain/internal/domain"

// Destination names one place a tile can legally land.
type Destination struct {
	Owner domain.SeatID // "" means the Mexican train
}

// LegalMove pairs a tile in the current player's hand with a destination it
// can legally be placed on.
type LegalMove struct {
	Tile domain.Tile
	Dest Destination
}

// LegalMoves enumerates every tile/destination pair the current player may
// play this turn (spec 4.2.2). An obligation can outlive the turn of the
// player who created it (a non-double play, draw, or pass still advances the
// turn), so whenever any unsatisfied double obligation exists, whoever is
// current may only play moves that land on one of those trains and touch its
// exposed pip, taking priority over every other destination, mirroring the
// teacher's CanBeat-gated move generation in domain/rules.go.
func LegalMoves(g *domain.Game) []LegalMove {
	seat := g.CurrentSeat()
	hand := g.Hands[seat]

	if len(g.UnsatisfiedDoubles) > 0 {
		return doubleMoves(g, hand)
	}
	return openMoves(g, seat, hand)
}

func doubleMoves(g *domain.Game, hand domain.Hand) []LegalMove {
	var moves []LegalMove
	for _, owner := range g.UnsatisfiedDoubles {
		train := g.TrainFor(owner)
		pip := train.HeadValue(g.EnginePip)
		for _, t := range hand {
			if t.Matches(pip) {
				moves = append(moves, LegalMove{Tile: t, Dest: Destination{Owner: owner}})
			}
		}
	}
	return moves
}

func openMoves(g *domain.Game, seat domain.SeatID, hand domain.Hand) []LegalMove {
	var moves []LegalMove

	own := g.Trains[seat]
	for _, t := range hand {
		if own.CanAccept(t, g.EnginePip) {
			moves = append(moves, LegalMove{Tile: t, Dest: Destination{Owner: seat}})
		}
	}

	for _, t := range hand {
		if g.Mexican.CanAccept(t, g.EnginePip) {
			moves = append(moves, LegalMove{Tile: t, Dest: Destination{Owner: ""}})
		}
	}

	for _, other := range g.Seats {
		if other == seat {
			continue
		}
		train := g.Trains[other]
		if !train.Open {
			continue
		}
		for _, t := range hand {
			if train.CanAccept(t, g.EnginePip) {
				moves = append(moves, LegalMove{Tile: t, Dest: Destination{Owner: other}})
			}
		}
	}

	return moves
}

// HasLegalMove reports whether the current player has any legal placement,
// without allocating the full move list.
func HasLegalMove(g *domain.Game) bool {
	return len(LegalMoves(g)) > 0
}
