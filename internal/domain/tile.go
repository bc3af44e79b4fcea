// Package domain holds the pure value types of Mexican Train: tiles, trains,
// hands, the boneyard, and the per-game state they compose into. Nothing in
// this package performs I/O or depends on the rules engine or transport.
package domain

import "github.com/google/uuid"

// TileID is the opaque identifier assigned to a tile at deal time so clients
// can reference a tile across snapshots without the server leaking hand
// contents (spec 3.1).
type TileID string

// NewTileID mints a fresh opaque tile identifier.
func NewTileID() TileID {
	return TileID(uuid.NewString())
}

// Tile is an unordered pair of pip counts (a <= b).
type Tile struct {
	ID   TileID
	A    int
	B    int
}

// NewTile builds a tile, normalizing so A <= B.
func NewTile(a, b int) Tile {
	if a > b {
		a, b = b, a
	}
	return Tile{ID: NewTileID(), A: a, B: b}
}

// Value is the sum of pips on the tile.
func (t Tile) Value() int {
	return t.A + t.B
}

// IsDouble reports whether both halves match.
func (t Tile) IsDouble() bool {
	return t.A == t.B
}

// Matches reports whether the tile has a half equal to pip.
func (t Tile) Matches(pip int) bool {
	return t.A == pip || t.B == pip
}

// OtherEnd returns the pip value opposite the given end, assuming the tile
// matches that end.
func (t Tile) OtherEnd(pip int) int {
	if t.A == pip {
		return t.B
	}
	return t.A
}

// FullSet builds every unordered pip pair (a, b) with 0 <= a <= b <= maxPip,
// the (maxPip+1)(maxPip+2)/2 tile set of spec 4.2.1 step 1.
func FullSet(maxPip int) []Tile {
	tiles := make([]Tile, 0, (maxPip+1)*(maxPip+2)/2)
	for a := 0; a <= maxPip; a++ {
		for b := a; b <= maxPip; b++ {
			tiles = append(tiles, NewTile(a, b))
		}
	}
	return tiles
}

// SumPips sums the value of every tile in the slice.
func SumPips(tiles []Tile) int {
	total := 0
	for _, t := range tiles {
		total += t.Value()
	}
	return total
}
