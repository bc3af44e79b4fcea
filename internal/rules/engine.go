package rules

import "mexicantrain/internal/domain"

// MaxStallTurns is the safety cap on turns taken before a game is forced
// into a deadlock termination (spec 5).
const MaxStallTurns = 1000

// Start transitions a dealt Game from setup into play, grounded on the
// teacher's Service.StartGame.
func Start(g *domain.Game) error {
	if g.Phase != domain.PhaseSetup {
		return ErrGameNotInPlay
	}
	g.Phase = domain.PhaseInPlay
	return nil
}

// PlayMove applies seat's placement of tile onto dest, validating turn
// order, hand ownership, and destination legality (spec 4.2.2-4.2.3). It
// returns the MovePlayedPayload describing the accepted move, or an error
// naming the rejected precondition.
func PlayMove(g *domain.Game, seat domain.SeatID, tileID domain.TileID, dest Destination) (MovePlayedPayload, error) {
	if g.Phase != domain.PhaseInPlay {
		return MovePlayedPayload{}, ErrGameNotInPlay
	}
	if seat != g.CurrentSeat() {
		return MovePlayedPayload{}, ErrNotYourTurn
	}
	hand, ok := g.Hands[seat]
	if !ok {
		return MovePlayedPayload{}, ErrUnknownSeat
	}
	tile, ok := hand.Find(tileID)
	if !ok {
		return MovePlayedPayload{}, ErrTileNotInHand
	}

	legal := false
	for _, m := range LegalMoves(g) {
		if m.Tile.ID == tileID && m.Dest.Owner == dest.Owner {
			legal = true
			break
		}
	}
	if !legal {
		return MovePlayedPayload{}, ErrIllegalDestination
	}

	hadPendingDouble := g.PlayedDoubleThisTurn
	pendingDoubleTrain := g.DoubleTrainThisTurn

	newHand, _ := hand.Remove(tileID)
	g.Hands[seat] = newHand

	train := g.TrainFor(dest.Owner)
	newTail := train.Place(tile, g.EnginePip)

	g.PlayedDoubleThisTurn = tile.IsDouble()
	if tile.IsDouble() {
		addUnsatisfiedDouble(g, dest.Owner)
		g.DoubleTrainThisTurn = dest.Owner
	} else {
		removeSatisfiedDouble(g, dest.Owner)
	}

	// spec 4.2.3 bullet 3: a non-double play that abandons the double the
	// current player owes this turn opens their own personal train.
	var trainOpened domain.SeatID
	if !tile.IsDouble() && hadPendingDouble && g.HasUnsatisfiedDouble(pendingDoubleTrain) {
		trainOpened = openPersonalTrain(g, seat)
	}

	if len(newHand) == 0 {
		endGame(g, seat, false)
		return MovePlayedPayload{Seat: seat, Tile: tile, TrainOwner: dest.Owner, NewTail: newTail, TrainOpened: trainOpened}, nil
	}

	playsAgain := tile.IsDouble()
	if !playsAgain {
		advanceTurn(g)
	}

	return MovePlayedPayload{
		Seat:        seat,
		Tile:        tile,
		TrainOwner:  dest.Owner,
		NewTail:     newTail,
		PlaysAgain:  playsAgain,
		TrainOpened: trainOpened,
	}, nil
}

func addUnsatisfiedDouble(g *domain.Game, owner domain.SeatID) {
	if g.HasUnsatisfiedDouble(owner) {
		return
	}
	g.UnsatisfiedDoubles = append(g.UnsatisfiedDoubles, owner)
}

// removeSatisfiedDouble clears dest's double obligation once a non-double
// tile has been placed on its train.
func removeSatisfiedDouble(g *domain.Game, dest domain.SeatID) {
	if g.HasUnsatisfiedDouble(dest) {
		g.ClearUnsatisfiedDouble(dest)
	}
}

// Draw pulls one tile from the boneyard into seat's hand when they have no
// legal move (spec 4.2.2). If the drawn tile can be played it must be
// played immediately or the turn passes; if the boneyard is empty the turn
// passes without drawing.
func Draw(g *domain.Game, seat domain.SeatID) (TileDrawnPayload, error) {
	if g.Phase != domain.PhaseInPlay {
		return TileDrawnPayload{}, ErrGameNotInPlay
	}
	if seat != g.CurrentSeat() {
		return TileDrawnPayload{}, ErrNotYourTurn
	}
	if HasLegalMove(g) {
		return TileDrawnPayload{}, ErrMustPlayNotDraw
	}

	drawn, remaining, ok := g.Boneyard.Draw()
	g.Boneyard = remaining
	if !ok {
		trainOpened := openPersonalTrain(g, seat)
		advanceTurn(g)
		return TileDrawnPayload{Seat: seat, Tile: nil, TurnPassed: true, TrainOpened: trainOpened}, nil
	}

	g.Hands[seat] = append(g.Hands[seat], drawn)
	if n := len(g.Hands[seat]); n > g.PeakHandSize {
		g.PeakHandSize = n
	}
	canPlay := tileHasDestination(g, seat, drawn)
	if canPlay {
		return TileDrawnPayload{Seat: seat, Tile: &drawn, CanPlayDrawn: true}, nil
	}

	trainOpened := openPersonalTrain(g, seat)
	advanceTurn(g)
	return TileDrawnPayload{Seat: seat, Tile: &drawn, CanPlayDrawn: false, TurnPassed: true, TrainOpened: trainOpened}, nil
}

// openPersonalTrain opens seat's personal train if not already open (spec
// 4.2.3's forced-opening penalty for passing or drawing without a play),
// returning seat if it made a change, "" otherwise.
func openPersonalTrain(g *domain.Game, seat domain.SeatID) domain.SeatID {
	own := g.Trains[seat]
	if own.Open {
		return ""
	}
	own.Open = true
	return seat
}

func tileHasDestination(g *domain.Game, seat domain.SeatID, tile domain.Tile) bool {
	for _, m := range LegalMoves(g) {
		if m.Tile.ID == tile.ID {
			return true
		}
	}
	return false
}

// Pass ends seat's turn without a play. Legal only when seat has no legal
// move and either already drew or the boneyard is empty; the session layer
// is responsible for calling Draw first per spec 4.2.2's draw-before-pass
// rule.
func Pass(g *domain.Game, seat domain.SeatID) (TurnPassedPayload, error) {
	if g.Phase != domain.PhaseInPlay {
		return TurnPassedPayload{}, ErrGameNotInPlay
	}
	if seat != g.CurrentSeat() {
		return TurnPassedPayload{}, ErrNotYourTurn
	}
	if HasLegalMove(g) {
		return TurnPassedPayload{}, ErrMustPlayNotDraw
	}

	trainOpened := openPersonalTrain(g, seat)

	advanceTurn(g)
	return TurnPassedPayload{Seat: seat, NextSeat: g.CurrentSeat(), TrainOpened: trainOpened}, nil
}

// ForceAdvanceTurn moves the turn cursor on without a play or draw,
// bypassing normal legality checks. Used by the session manager to recover
// from an AI timeout or internal error (spec 7) and by the admin
// admin_advance_turn operation (spec 6.3).
func ForceAdvanceTurn(g *domain.Game) {
	advanceTurn(g)
}

// advanceTurn moves the cursor to the next seated player and checks for a
// stall-deadlock termination (spec 5, 8).
func advanceTurn(g *domain.Game) {
	g.CurrentTurn = (g.CurrentTurn + 1) % len(g.Seats)
	g.PlayedDoubleThisTurn = false
	g.TurnsTaken++

	if g.TurnsTaken >= MaxStallTurns && g.Phase == domain.PhaseInPlay {
		endGame(g, "", true)
	}
}

// endGame transitions the game to PhaseEnded, computing round scores from
// each remaining hand's pip total (spec 4.2.4). winner is empty on a
// deadlock.
func endGame(g *domain.Game, winner domain.SeatID, deadlock bool) {
	g.Phase = domain.PhaseEnded
	g.WinnerSeat = winner

	scores := make(map[domain.SeatID]int, len(g.Seats))
	for _, seat := range g.Seats {
		scores[seat] = g.Hands[seat].Pips()
	}
	g.RoundScores = scores
}

// Ended reports whether the game has finished, and whether it ended by
// deadlock rather than an empty-hand win.
func Ended(g *domain.Game) (ended bool, deadlock bool) {
	return g.Phase == domain.PhaseEnded, g.WinnerSeat == "" && g.Phase == domain.PhaseEnded
}
