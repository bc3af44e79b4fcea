package bot

import (
	"log"
	"math/rand"
	"sort"

	"mexicantrain/internal/rules"
)

// WeightedTactic pairs a named tactic with the weight and priority a
// Strategy applies to it, mirroring spec 4.3's (name, weight, priority)
// triple. Priority only orders evaluation; tactic contributions are summed,
// and addition is commutative, so it never changes which move wins — it is
// kept so a Strategy value is a faithful (name, weight, priority) record.
type WeightedTactic struct {
	Tactic   string
	Weight   float64
	Priority int
}

// Strategy is an ordered, weighted list of tactics, grounded on the
// teacher's PhaseWeights-driven BuildScoredMoves/ScoreHand pattern in
// internal/scoring.go, generalized into a data-driven list so skill tiers
// are config, not new Go types.
type Strategy struct {
	ID      string
	Tactics []WeightedTactic
}

// Evaluate scores every candidate move and returns the highest-scoring one,
// ties broken by insertion order (spec 4.3). An unknown tactic name
// contributes nothing and is logged as a warning. A Strategy with no
// resolvable tactics falls back to uniform random choice among the
// candidates, so a misconfigured strategy degrades gracefully instead of
// refusing to move.
func (s Strategy) Evaluate(ctx TacticContext, moves []rules.LegalMove, rng *rand.Rand) rules.LegalMove {
	if len(moves) == 1 {
		return moves[0]
	}

	resolved := make([]WeightedTactic, 0, len(s.Tactics))
	for _, wt := range s.Tactics {
		if _, ok := LookupTactic(wt.Tactic); ok {
			resolved = append(resolved, wt)
		} else {
			log.Printf("warning: strategy %q references unknown tactic %q; it contributes nothing", s.ID, wt.Tactic)
		}
	}
	if len(resolved) == 0 {
		return moves[rng.Intn(len(moves))]
	}
	sort.SliceStable(resolved, func(i, j int) bool { return resolved[i].Priority < resolved[j].Priority })

	ctx.Rng = rng
	auxes := buildMoveAuxes(ctx, moves)

	bestIdx := 0
	bestScore := scoreMove(ctx, resolved, moves[0], auxes[0])
	for i := 1; i < len(moves); i++ {
		score := scoreMove(ctx, resolved, moves[i], auxes[i])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return moves[bestIdx]
}

func scoreMove(ctx TacticContext, tactics []WeightedTactic, move rules.LegalMove, aux moveAux) float64 {
	total := 0.0
	for _, wt := range tactics {
		t, _ := LookupTactic(wt.Tactic)
		total += wt.Weight * t.Score(ctx, move, aux)
	}
	return total
}

// buildMoveAuxes precomputes the per-move shared values every tactic reads
// (spec 4.3's max_value_in_legal_set, max_chain_across_moves, and each
// move's own chain_from_move), once per candidate rather than once per
// tactic.
func buildMoveAuxes(ctx TacticContext, moves []rules.LegalMove) []moveAux {
	maxValue := 0.0
	for _, m := range moves {
		if v := float64(m.Tile.Value()); v > maxValue {
			maxValue = v
		}
	}

	totalRemaining := 0
	for _, h := range ctx.Game.Hands {
		totalRemaining += len(h)
	}

	hand := ctx.Game.Hands[ctx.Seat]
	auxes := make([]moveAux, len(moves))
	maxChain := 0.0
	for i, m := range moves {
		train := ctx.Game.TrainFor(m.Dest.Owner)
		head := train.HeadValue(ctx.Game.EnginePip)
		tail := m.Tile.OtherEnd(head)

		remaining, _ := hand.Remove(m.Tile.ID)
		budget := chainRecursionBudget
		chain := float64(1 + chainDepth(remaining, tail, &budget))

		auxes[i] = moveAux{
			maxValueInSet:       maxValue,
			chainFromMove:       chain,
			exposedTail:         tail,
			remainingHand:       remaining,
			totalRemainingTiles: totalRemaining,
		}
		if chain > maxChain {
			maxChain = chain
		}
	}
	for i := range auxes {
		auxes[i].maxChainAcrossMoves = maxChain
	}
	return auxes
}

// Built-in strategies. Skill levels map onto these by ID via
// internal/config's level-mapping loader (spec 4.3, 6.2); this set is the
// embedded fallback used when no config override is present.
var (
	StrategyNovice = Strategy{
		ID:      "novice",
		Tactics: []WeightedTactic{{Tactic: "random", Weight: 1.0, Priority: 0}},
	}

	StrategyStandard = Strategy{
		ID: "standard",
		Tactics: []WeightedTactic{
			{Tactic: "maximize_pips", Weight: 1.0, Priority: 0},
			{Tactic: "prefer_own_train", Weight: 0.5, Priority: 1},
			{Tactic: "preserve_doubles", Weight: 0.5, Priority: 2},
		},
	}

	StrategySharp = Strategy{
		ID: "sharp",
		Tactics: []WeightedTactic{
			{Tactic: "maximize_pips", Weight: 1.0, Priority: 0},
			{Tactic: "prefer_own_train", Weight: 0.5, Priority: 1},
			{Tactic: "preserve_doubles", Weight: 0.8, Priority: 2},
			{Tactic: "block_opponents", Weight: 1.0, Priority: 3},
			{Tactic: "endgame_awareness", Weight: 1.0, Priority: 4},
			{Tactic: "hand_composition", Weight: 0.5, Priority: 5},
			{Tactic: "prefer_mexican_train", Weight: 0.3, Priority: 6},
		},
	}

	StrategyExpert = Strategy{
		ID: "expert",
		Tactics: []WeightedTactic{
			{Tactic: "maximize_pips", Weight: 1.0, Priority: 0},
			{Tactic: "prefer_own_train", Weight: 0.6, Priority: 1},
			{Tactic: "preserve_doubles", Weight: 1.2, Priority: 2},
			{Tactic: "block_opponents", Weight: 1.5, Priority: 3},
			{Tactic: "endgame_awareness", Weight: 1.5, Priority: 4},
			{Tactic: "hand_composition", Weight: 0.8, Priority: 5},
			{Tactic: "prefer_mexican_train", Weight: 0.3, Priority: 6},
			{Tactic: "prefer_open_trains", Weight: 0.4, Priority: 7},
			{Tactic: "chain_length", Weight: 1.0, Priority: 8},
			{Tactic: "safe_train_play", Weight: 1.0, Priority: 9},
		},
	}
)

// Strategies indexes the built-in set by ID.
var Strategies = map[string]Strategy{
	StrategyNovice.ID:   StrategyNovice,
	StrategyStandard.ID: StrategyStandard,
	StrategySharp.ID:    StrategySharp,
	StrategyExpert.ID:   StrategyExpert,
}
