package bot

import (
	"mexicantrain/internal/bot/brain"
	"mexicantrain/internal/domain"
	"mexicantrain/internal/rules"
)

// TacticContext is everything a Tactic needs to score one candidate move,
// grounded on the teacher's PhaseWeights/BotTuning pattern in
// internal/bot/tuning.go, generalized from card-combination scoring to
// domino tile placement.
type TacticContext struct {
	Game   *domain.Game
	Seat   domain.SeatID
	MaxPip int
	Rng    RNG

	// Memory/Estimator back the one supplemental tactic beyond the required
	// table (safe_train_play); the twelve required tactics below all read
	// ground truth off Game directly, matching their spec formulas exactly.
	Memory    *brain.GameMemory
	Estimator *brain.Estimator
}

// RNG is the random source a Tactic may draw from (satisfied by *rand.Rand).
type RNG interface {
	Float64() float64
}

// moveAux holds the values shared across every tactic scoring a single
// candidate move, computed once per move rather than once per tactic.
type moveAux struct {
	maxValueInSet       float64
	chainFromMove        float64
	maxChainAcrossMoves  float64
	exposedTail          int
	remainingHand        domain.Hand // the seat's hand after this move is played
	totalRemainingTiles  int
}

// Tactic is a single named scoring dimension applied to one candidate move.
// Higher is better; tactics are summed with a Strategy's configured weight.
type Tactic struct {
	Name  string
	Score func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64
}

// registry is the closed set of named tactics a Strategy may reference by
// name (spec 4.3's tactic/strategy split). The first twelve are the spec's
// required tactics, implemented to its literal contribution formulas;
// safe_train_play is a supplemental tactic drawing on the opponent-hand
// inference package. Unknown names are a configuration error handled by the
// caller, not by this package.
var registry = map[string]Tactic{
	"random":                tacticRandom,
	"maximize_pips":         tacticMaximizePips,
	"minimize_pips":         tacticMinimizePips,
	"prefer_own_train":      tacticPreferOwnTrain,
	"prefer_mexican_train":  tacticPreferMexicanTrain,
	"prefer_open_trains":    tacticPreferOpenTrains,
	"block_opponents":       tacticBlockOpponents,
	"preserve_doubles":      tacticPreserveDoubles,
	"dump_doubles":          tacticDumpDoubles,
	"endgame_awareness":     tacticEndgameAwareness,
	"hand_composition":      tacticHandComposition,
	"chain_length":          tacticChainLength,
	"safe_train_play":       tacticSafeTrainPlay,
}

// LookupTactic returns the named tactic, or false if the name is unknown.
func LookupTactic(name string) (Tactic, bool) {
	t, ok := registry[name]
	return t, ok
}

var tacticRandom = Tactic{
	Name: "random",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		return ctx.Rng.Float64()
	},
}

var tacticMaximizePips = Tactic{
	Name: "maximize_pips",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if aux.maxValueInSet == 0 {
			return 0
		}
		return float64(move.Tile.Value()) / aux.maxValueInSet
	},
}

var tacticMinimizePips = Tactic{
	Name: "minimize_pips",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if aux.maxValueInSet == 0 {
			return 0
		}
		return (aux.maxValueInSet - float64(move.Tile.Value())) / aux.maxValueInSet
	},
}

var tacticPreferOwnTrain = Tactic{
	Name: "prefer_own_train",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if move.Dest.Owner == ctx.Seat {
			return 1
		}
		return 0
	},
}

var tacticPreferMexicanTrain = Tactic{
	Name: "prefer_mexican_train",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if move.Dest.Owner == "" {
			return 1
		}
		return 0
	},
}

var tacticPreferOpenTrains = Tactic{
	Name: "prefer_open_trains",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if move.Dest.Owner != "" && move.Dest.Owner != ctx.Seat {
			return 1
		}
		return 0
	},
}

// tacticBlockOpponents counts opponent-held tiles (ground truth, since the
// rules engine is authoritative) that would still touch the exposed tail
// after this move, per spec 4.3's k = "count of opponent-held tiles
// touching the exposed tail after this move".
var tacticBlockOpponents = Tactic{
	Name: "block_opponents",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		k := 0
		for seat, hand := range ctx.Game.Hands {
			if seat == ctx.Seat {
				continue
			}
			for _, t := range hand {
				if t.Matches(aux.exposedTail) {
					k++
				}
			}
		}
		return 1.0 / float64(1+k)
	},
}

var tacticPreserveDoubles = Tactic{
	Name: "preserve_doubles",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if move.Tile.IsDouble() {
			return -1
		}
		return 0
	},
}

var tacticDumpDoubles = Tactic{
	Name: "dump_doubles",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if move.Tile.IsDouble() {
			return 1
		}
		return 0
	},
}

var tacticEndgameAwareness = Tactic{
	Name: "endgame_awareness",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if aux.totalRemainingTiles > 8 || aux.maxValueInSet == 0 {
			return 0
		}
		return float64(move.Tile.Value()) / aux.maxValueInSet
	},
}

var tacticHandComposition = Tactic{
	Name: "hand_composition",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		count := 0
		for _, t := range aux.remainingHand {
			if t.Matches(aux.exposedTail) {
				count++
			}
		}
		return 0.5 * float64(count)
	},
}

var tacticChainLength = Tactic{
	Name: "chain_length",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if aux.maxChainAcrossMoves == 0 {
			return 0
		}
		return aux.chainFromMove / aux.maxChainAcrossMoves
	},
}

// tacticSafeTrainPlay scores a move by the estimated safety of exposing the
// resulting tail pip, using the bot's tracked memory of unaccounted tiles.
// Not one of spec 4.3's required tactics; an expansion tactic exercising
// the opponent-hand inference package for strategies that opt into it.
var tacticSafeTrainPlay = Tactic{
	Name: "safe_train_play",
	Score: func(ctx TacticContext, move rules.LegalMove, aux moveAux) float64 {
		if ctx.Estimator == nil {
			return 0
		}
		return ctx.Estimator.SafeToOpen(ctx.MaxPip, aux.exposedTail)
	},
}

// chainDepth performs the bounded recursion spec 4.3's chain_length formula
// calls for: the longest sequence of plays reachable from hand starting at
// tail, exploring at most budget node expansions in total so a hand with
// many same-pip tiles cannot blow up recursion cost.
func chainDepth(hand domain.Hand, tail int, budget *int) int {
	if *budget <= 0 {
		return 0
	}
	*budget--

	best := 0
	for i, t := range hand {
		if !t.Matches(tail) {
			continue
		}
		next := t.OtherEnd(tail)
		rest := make(domain.Hand, 0, len(hand)-1)
		rest = append(rest, hand[:i]...)
		rest = append(rest, hand[i+1:]...)
		if d := 1 + chainDepth(rest, next, budget); d > best {
			best = d
		}
	}
	return best
}

// chainRecursionBudget bounds total node expansions across one
// chain_length evaluation of a single candidate move.
const chainRecursionBudget = 2000
