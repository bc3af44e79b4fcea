package brain

import "mexicantrain/internal/domain"

// Estimator provides probabilistic judgments derived from a GameMemory,
// grounded on the teacher's brain.Estimator.
type Estimator struct {
	Memory *GameMemory
}

// NewEstimator creates a reasoning engine over m.
func NewEstimator(m *GameMemory) *Estimator {
	return &Estimator{Memory: m}
}

// SafeToOpen estimates the chance that opening train onto pip this turn
// will not immediately hand an opponent a free continuation, based on how
// many unaccounted-for tiles still touch pip and whether any opponent has
// already shown evidence of lacking it. maxPip is the tile set's maximum
// pip value (spec 3.1).
func (e *Estimator) SafeToOpen(maxPip int, pip int) float64 {
	unaccounted := 0
	for _, t := range domain.FullSet(maxPip) {
		if t.Matches(pip) && e.Memory.IsUnaccountedFor(t) {
			unaccounted++
		}
	}
	if unaccounted == 0 {
		return 1.0
	}

	for _, p := range e.Memory.Opponents {
		if p.LikelyLacksPip(pip) {
			return 0.8
		}
	}
	return 1.0 / float64(unaccounted+1)
}

// OpponentNearingOut flags a seat whose tracked hand size is low enough to
// warrant defensive play (spec-grounded heuristic, no fixed threshold in
// the rules; 2 tiles is the conventional "about to go out" signal).
func (e *Estimator) OpponentNearingOut(seat domain.SeatID) bool {
	p, ok := e.Memory.Opponents[seat]
	return ok && p.TilesRemaining > 0 && p.TilesRemaining <= 2
}
