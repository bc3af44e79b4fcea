package domain

// TrainKind distinguishes a personal train from the shared Mexican train.
type TrainKind int

const (
	TrainPersonal TrainKind = iota
	TrainMexican
)

// PlacedTile is one tile placed on a train, oriented so Tail is the pip
// value exposed at the free end.
type PlacedTile struct {
	Tile Tile
	Tail int
}

// Train is an ordered sequence of placed tiles extending from the engine.
type Train struct {
	Kind              TrainKind
	Owner             SeatID // zero value for the Mexican train
	Tiles             []PlacedTile
	Open              bool
	UnsatisfiedDouble bool
}

// NewPersonalTrain creates a closed personal train for the given seat.
func NewPersonalTrain(owner SeatID) *Train {
	return &Train{Kind: TrainPersonal, Owner: owner}
}

// NewMexicanTrain creates the always-open Mexican train.
func NewMexicanTrain() *Train {
	return &Train{Kind: TrainMexican, Open: true}
}

// HeadValue is the engine pip if the train is empty, else the exposed tail
// of the last placed tile.
func (t *Train) HeadValue(enginePip int) int {
	if len(t.Tiles) == 0 {
		return enginePip
	}
	return t.Tiles[len(t.Tiles)-1].Tail
}

// CanAccept reports whether tile legally extends this train.
func (t *Train) CanAccept(tile Tile, enginePip int) bool {
	return tile.Matches(t.HeadValue(enginePip))
}

// Place extends the train with tile, orienting it so the matching pip joins
// the current head and the other pip becomes the new exposed tail. It
// updates UnsatisfiedDouble per spec 4.2.1 and returns the new tail value.
func (t *Train) Place(tile Tile, enginePip int) int {
	head := t.HeadValue(enginePip)
	tail := tile.OtherEnd(head)
	t.Tiles = append(t.Tiles, PlacedTile{Tile: tile, Tail: tail})
	t.UnsatisfiedDouble = tile.IsDouble()
	return tail
}

// LastTile returns the most recently placed tile, or false if the train is
// empty.
func (t *Train) LastTile() (PlacedTile, bool) {
	if len(t.Tiles) == 0 {
		return PlacedTile{}, false
	}
	return t.Tiles[len(t.Tiles)-1], true
}

// Tally sums the pip value of every tile on the train.
func (t *Train) Tally() int {
	total := 0
	for _, pt := range t.Tiles {
		total += pt.Tile.Value()
	}
	return total
}
