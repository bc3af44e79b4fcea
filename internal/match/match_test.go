package match

import (
	"math/rand"
	"testing"

	"mexicantrain/internal/domain"
)

func newTestMatch(gamesMax int) *Match {
	seats := []Seat{
		{ID: "a", DisplayName: "Casey", JoinOrder: 0},
		{ID: "b", DisplayName: "Drew", JoinOrder: 1},
	}
	return New("m1", seats, 12, gamesMax)
}

func TestStartNextGameDealsAndTransitionsStatus(t *testing.T) {
	m := newTestMatch(2)
	rng := rand.New(rand.NewSource(1))

	g, err := m.StartNextGame(rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != StatusInProgress {
		t.Fatalf("expected StatusInProgress, got %v", m.Status)
	}
	if g.Phase != domain.PhaseInPlay {
		t.Fatalf("expected the dealt game to be started")
	}
}

func TestStartNextGameRejectsWhileInProgress(t *testing.T) {
	m := newTestMatch(2)
	rng := rand.New(rand.NewSource(1))
	if _, err := m.StartNextGame(rng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.StartNextGame(rng); err != ErrGameInProgress {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestFinishCurrentGameAccumulatesAndCompletesMatch(t *testing.T) {
	m := newTestMatch(1)
	rng := rand.New(rand.NewSource(1))
	if _, err := m.StartNextGame(rng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Current.Phase = domain.PhaseEnded
	m.Current.WinnerSeat = "a"
	m.Current.RoundScores = map[domain.SeatID]int{"a": 0, "b": 42}

	record, err := m.FinishCurrentGame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil {
		t.Fatalf("expected a completion record once GamesMax is reached")
	}
	if m.Status != StatusCompleted {
		t.Fatalf("expected match to complete")
	}
	if m.Cumulative["b"] != 42 {
		t.Fatalf("expected cumulative score for seat b to be 42, got %d", m.Cumulative["b"])
	}
	if record.Standings[0].Seat != "a" {
		t.Fatalf("expected seat a (lower total) to rank first")
	}
}

func TestFinishCurrentGameRejectsWhenNoGameHasEnded(t *testing.T) {
	m := newTestMatch(2)
	if _, err := m.FinishCurrentGame(); err != ErrNoCurrentGame {
		t.Fatalf("expected ErrNoCurrentGame, got %v", err)
	}
}

func TestFinishCurrentGameRecordsPerGameStatistics(t *testing.T) {
	m := newTestMatch(1)
	rng := rand.New(rand.NewSource(1))
	if _, err := m.StartNextGame(rng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Current.Phase = domain.PhaseEnded
	m.Current.WinnerSeat = "a"
	m.Current.TurnsTaken = 7
	m.Current.PeakHandSize = 13
	m.Current.RoundScores = map[domain.SeatID]int{"a": 0, "b": 42}

	if _, err := m.FinishCurrentGame(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := m.History[0]
	if rec.DurationTurns != 7 {
		t.Fatalf("expected DurationTurns 7, got %d", rec.DurationTurns)
	}
	if rec.TotalPipsScored != 42 {
		t.Fatalf("expected TotalPipsScored 42, got %d", rec.TotalPipsScored)
	}
	if rec.PeakHandSize != 13 {
		t.Fatalf("expected PeakHandSize 13, got %d", rec.PeakHandSize)
	}
	if rec.MarginOfVictory != 42 {
		t.Fatalf("expected MarginOfVictory 42, got %d", rec.MarginOfVictory)
	}
}

func TestStandingsTieBreakByGamesWonThenJoinOrder(t *testing.T) {
	m := newTestMatch(2)
	rng := rand.New(rand.NewSource(1))

	if _, err := m.StartNextGame(rng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Current.Phase = domain.PhaseEnded
	m.Current.WinnerSeat = "a"
	m.Current.RoundScores = map[domain.SeatID]int{"a": 0, "b": 20}
	if _, err := m.FinishCurrentGame(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.StartNextGame(rng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Current.Phase = domain.PhaseEnded
	m.Current.WinnerSeat = "b"
	m.Current.RoundScores = map[domain.SeatID]int{"a": 20, "b": 0}
	record, err := m.FinishCurrentGame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil {
		t.Fatalf("expected a completion record once GamesMax is reached")
	}

	// Both seats end with a cumulative total of 20 and one game won each;
	// seat a joined first, so it must rank ahead on the join-order tie-break.
	if record.Standings[0].Seat != "a" {
		t.Fatalf("expected seat a to win the tie-break by earliest join order, got %+v", record.Standings)
	}
	if record.Standings[0].GamesWon != 1 || record.Standings[1].GamesWon != 1 {
		t.Fatalf("expected both seats to show one game won each, got %+v", record.Standings)
	}
}

func TestCleanSweepAchievement(t *testing.T) {
	m := newTestMatch(1)
	rng := rand.New(rand.NewSource(1))
	if _, err := m.StartNextGame(rng); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Current.Phase = domain.PhaseEnded
	m.Current.WinnerSeat = "a"
	m.Current.RoundScores = map[domain.SeatID]int{"a": 0, "b": 10}

	record, err := m.FinishCurrentGame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, ach := range record.Achievements {
		if ach.Seat == "a" && ach.Kind == "clean_sweep" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a clean_sweep achievement for seat a, got %+v", record.Achievements)
	}
}
