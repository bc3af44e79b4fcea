package domain

// Phase is the lifecycle stage of a single Game (spec 4.2.5).
type Phase string

const (
	PhaseSetup  Phase = "setup"
	PhaseInPlay Phase = "in_play"
	PhaseEnded  Phase = "ended"
)

// Game is the authoritative state of one round of Mexican Train.
type Game struct {
	Phase Phase

	EnginePip int
	EngineTile Tile // the highest double dealt, or the highest-valued tile if no double was dealt; removed from the starter's hand

	Seats []SeatID // seating order, index is the turn cursor's unit

	Hands  map[SeatID]Hand
	Trains map[SeatID]*Train
	Mexican *Train

	Boneyard Boneyard

	CurrentTurn int // index into Seats

	UnsatisfiedDoubles []SeatID // owners of trains with an open double obligation
	PlayedDoubleThisTurn bool   // current_player_played_double_this_turn
	DoubleTrainThisTurn SeatID  // train owner that received the double named above, valid only while PlayedDoubleThisTurn

	// RoundScores holds each seated player's pip total for this game, set
	// once Phase transitions to PhaseEnded.
	RoundScores map[SeatID]int
	WinnerSeat  SeatID

	TurnsTaken int // safety counter, spec 5's 1,000-turn stall cap

	PeakHandSize int // largest hand size any seat has held this round (spec 4.4 item 3)
}

// CurrentSeat returns the seat id whose turn it is.
func (g *Game) CurrentSeat() SeatID {
	if len(g.Seats) == 0 {
		return ""
	}
	return g.Seats[g.CurrentTurn]
}

// TrainFor returns the train belonging to owner, or the Mexican train if
// owner is empty.
func (g *Game) TrainFor(owner SeatID) *Train {
	if owner == "" {
		return g.Mexican
	}
	return g.Trains[owner]
}

// AllTrains returns every train in the game (personal trains in seat order,
// then the Mexican train).
func (g *Game) AllTrains() []*Train {
	trains := make([]*Train, 0, len(g.Seats)+1)
	for _, seat := range g.Seats {
		trains = append(trains, g.Trains[seat])
	}
	return append(trains, g.Mexican)
}

// HasUnsatisfiedDouble reports whether owner's train carries an open double
// obligation.
func (g *Game) HasUnsatisfiedDouble(owner SeatID) bool {
	for _, s := range g.UnsatisfiedDoubles {
		if s == owner {
			return true
		}
	}
	return false
}

// ClearUnsatisfiedDouble removes owner's open double obligation, once a
// non-double tile has been placed on that train to satisfy it.
func (g *Game) ClearUnsatisfiedDouble(owner SeatID) {
	out := g.UnsatisfiedDoubles[:0]
	for _, s := range g.UnsatisfiedDoubles {
		if s != owner {
			out = append(out, s)
		}
	}
	g.UnsatisfiedDoubles = out
}

// AllTiles returns the union of every hand, every train, the boneyard, and
// the engine tile — the full tile set exactly once each (spec 8, "tile
// conservation").
func (g *Game) AllTiles() []Tile {
	var tiles []Tile
	for _, h := range g.Hands {
		tiles = append(tiles, h...)
	}
	for _, t := range g.AllTrains() {
		for _, pt := range t.Tiles {
			tiles = append(tiles, pt.Tile)
		}
	}
	tiles = append(tiles, g.Boneyard...)
	tiles = append(tiles, g.EngineTile)
	return tiles
}
