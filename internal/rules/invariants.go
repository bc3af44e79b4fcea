package rules

import "mexicantrain/internal/domain"

// ConservesTiles reports whether the union of every hand, every train, the
// boneyard, and the engine tile accounts for the full tile set exactly once
// each (spec 8). Intended for use in tests and, optionally, as a periodic
// assertion in non-production builds.
func ConservesTiles(g *domain.Game, maxPip int) bool {
	want := domain.FullSet(maxPip)
	got := g.AllTiles()
	if len(want) != len(got) {
		return false
	}
	// Tiles are compared by pip pair: FullSet mints fresh IDs on every call.
	seen := make(map[[2]int]int, len(got))
	for _, t := range got {
		seen[[2]int{t.A, t.B}]++
	}
	for _, t := range want {
		if seen[[2]int{t.A, t.B}] != 1 {
			return false
		}
	}
	return true
}

// HeadsConsistent reports whether every train's exposed tail actually
// matches the pip of its last placed tile not touching the prior head (or
// the engine pip, for an empty train).
func HeadsConsistent(g *domain.Game) bool {
	for _, train := range g.AllTrains() {
		head := g.EnginePip
		for _, pt := range train.Tiles {
			if !pt.Tile.Matches(head) {
				return false
			}
			if pt.Tail != pt.Tile.OtherEnd(head) {
				return false
			}
			head = pt.Tail
		}
	}
	return true
}

// TurnCursorValid reports whether CurrentTurn indexes a real seat.
func TurnCursorValid(g *domain.Game) bool {
	return g.CurrentTurn >= 0 && g.CurrentTurn < len(g.Seats)
}

// UnsatisfiedDoublesExact reports whether UnsatisfiedDoubles names exactly
// the owners whose train's last placed tile is an unresolved double.
func UnsatisfiedDoublesExact(g *domain.Game) bool {
	want := map[domain.SeatID]bool{}
	for _, train := range g.AllTrains() {
		if last, ok := train.LastTile(); ok && last.Tile.IsDouble() && train.UnsatisfiedDouble {
			want[train.Owner] = true
		}
	}
	if len(want) != len(g.UnsatisfiedDoubles) {
		return false
	}
	for _, owner := range g.UnsatisfiedDoubles {
		if !want[owner] {
			return false
		}
	}
	return true
}
