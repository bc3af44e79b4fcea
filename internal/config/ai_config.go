// Package config loads the two external configuration surfaces spec 6.2
// requires to be implementable independently of the core: AI tactics/
// strategies/level-mappings, and match defaults. Grounded on the teacher's
// config.LoadBetConfig/GetBetConfig sync.Once-guarded loader pattern,
// generalized from betting tiers to these two documents.
package config

import (
	"encoding/json"
	"os"
	"sync"

	"mexicantrain/internal/bot"
)

// TacticMeta describes one registered tactic for display/config-validation
// purposes (spec 6.2's "tactics (name -> metadata)").
type TacticMeta struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// StrategyDef is one configured strategy: display info plus its tactic mix.
type StrategyDef struct {
	DisplayName string                  `json:"display_name"`
	Description string                  `json:"description"`
	Tactics     []StrategyTacticEntry   `json:"tactics"`
}

// StrategyTacticEntry is one (name, weight, priority) triple within a
// StrategyDef, spec 4.3's tactic triple.
type StrategyTacticEntry struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Priority int     `json:"priority"`
}

// AIConfig is the full AI configuration document (spec 6.2).
type AIConfig struct {
	Tactics       map[string]TacticMeta  `json:"tactics"`
	Strategies    map[string]StrategyDef `json:"strategies"`
	LevelMappings map[int]string         `json:"level_mappings"`
}

var (
	aiConfig     *AIConfig
	aiLoadOnce   sync.Once
	aiLoadErr    error
)

// LoadAIConfig loads the AI configuration document from path. On read or
// parse failure it falls back to an embedded minimal config with a single
// random-play strategy (spec 6.2, spec 4.3's failure policy) rather than
// returning an unusable nil; the returned error still records the failure
// for callers that want to log it.
func LoadAIConfig(path string) error {
	aiLoadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			aiLoadErr = err
			aiConfig = embeddedAIConfig()
			return
		}

		var c AIConfig
		if err := json.Unmarshal(data, &c); err != nil {
			aiLoadErr = err
			aiConfig = embeddedAIConfig()
			return
		}
		aiConfig = &c
	})
	return aiLoadErr
}

// GetAIConfig returns the loaded AI configuration, or the embedded fallback
// if LoadAIConfig was never called.
func GetAIConfig() *AIConfig {
	if aiConfig == nil {
		return embeddedAIConfig()
	}
	return aiConfig
}

// embeddedAIConfig is the minimal single-random-strategy fallback spec 6.2
// requires on parse failure.
func embeddedAIConfig() *AIConfig {
	return &AIConfig{
		Tactics: map[string]TacticMeta{
			"random": {DisplayName: "Random", Description: "Uniformly random legal move."},
		},
		Strategies: map[string]StrategyDef{
			"novice": {
				DisplayName: "Novice",
				Description: "Plays uniformly at random.",
				Tactics:     []StrategyTacticEntry{{Name: "random", Weight: 1.0, Priority: 0}},
			},
		},
		LevelMappings: map[int]string{1: "novice", 2: "novice", 3: "novice", 4: "novice", 5: "novice"},
	}
}

// ApplyAIConfig installs the loaded config's strategies and level mappings
// into internal/bot's runtime tables, so a reload takes effect for every
// AI decision made afterward. Strategies referencing an unknown tactic keep
// that entry — internal/bot's Strategy.Evaluate already drops unresolved
// tactic names per-move, logging nothing further here since that failure
// policy lives where moves are actually scored.
func ApplyAIConfig(c *AIConfig) {
	for id, def := range c.Strategies {
		tactics := make([]bot.WeightedTactic, 0, len(def.Tactics))
		for _, te := range def.Tactics {
			tactics = append(tactics, bot.WeightedTactic{Tactic: te.Name, Weight: te.Weight, Priority: te.Priority})
		}
		bot.Strategies[id] = bot.Strategy{ID: id, Tactics: tactics}
	}
	if len(c.LevelMappings) > 0 {
		for level, id := range c.LevelMappings {
			bot.LevelMappings[level] = id
		}
	}
}
