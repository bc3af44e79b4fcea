package brain

import (
	"testing"

	"mexicantrain/internal/domain"
)

func TestEstimatorSafeToOpenFullyUnaccounted(t *testing.T) {
	m := NewMemory()
	e := NewEstimator(m)

	// 13 tiles touch pip 6 in a double-12 set (one per partner pip 0..12).
	if got := e.SafeToOpen(12, 6); got != 1.0/14.0 {
		t.Fatalf("expected 1/(count+1) for fully unaccounted pip 6, got %f", got)
	}
}

func TestEstimatorSafeToOpenAllAccountedFor(t *testing.T) {
	m := NewMemory()
	e := NewEstimator(m)
	for _, tl := range domain.FullSet(12) {
		if tl.Matches(6) {
			m.MarkPlayed(tl)
		}
	}

	if got := e.SafeToOpen(12, 6); got != 1.0 {
		t.Fatalf("expected certainty once every matching tile is accounted for, got %f", got)
	}
}

func TestEstimatorOpponentNearingOut(t *testing.T) {
	m := NewMemory()
	e := NewEstimator(m)
	m.profile("b").TilesRemaining = 1

	if !e.OpponentNearingOut("b") {
		t.Fatalf("expected seat b with 1 tile remaining to be flagged as nearing out")
	}
	if e.OpponentNearingOut("c") {
		t.Fatalf("expected an untracked seat not to be flagged")
	}
}
