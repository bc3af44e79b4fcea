package bot

import (
	"math/rand"

	"mexicantrain/internal/domain"
)

// LevelMappings is the default skill-level (1-5) to strategy-ID map (spec
// 4.3, 6.2). internal/config can override this from an external file; this
// is the embedded fallback, grounded on the teacher's bot.GetBotConfig
// default-on-missing-entry behavior.
var LevelMappings = map[int]string{
	1: StrategyNovice.ID,
	2: StrategyStandard.ID,
	3: StrategyStandard.ID,
	4: StrategySharp.ID,
	5: StrategyExpert.ID,
}

// StrategyForLevel resolves a skill level to a strategy ID, defaulting to
// standard difficulty for an out-of-range level.
func StrategyForLevel(level int) string {
	if id, ok := LevelMappings[level]; ok {
		return id
	}
	return StrategyStandard.ID
}

// names supplies display names for provisioned bot seats, grounded on the
// teacher's bot.LoadIdentities name-pool pattern.
var names = []string{
	"Casey", "Drew", "Jordan", "Morgan", "Riley", "Sawyer", "Quinn", "Reese",
}

// NameForSeatIndex deterministically assigns a display name to a bot seat
// so the same index always reads the same name within a match.
func NameForSeatIndex(i int) string {
	return names[i%len(names)]
}

// Pool spawns agents for a set of AI seats at the given skill level.
func Pool(seats []domain.SeatID, level int, rng *rand.Rand) map[domain.SeatID]*Agent {
	out := make(map[domain.SeatID]*Agent, len(seats))
	strategyID := StrategyForLevel(level)
	for _, s := range seats {
		out[s] = NewAgent(s, strategyID, rng)
	}
	return out
}
