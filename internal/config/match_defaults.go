package config

import (
	"encoding/json"
	"os"
	"sync"
)

// MatchDefaults is the match-defaults configuration document (spec 6.2).
type MatchDefaults struct {
	MaxPip            int  `json:"max_pip"`
	GamesPerMatch     int  `json:"games_per_match"`
	MinPlayers        int  `json:"min_players"`
	MaxPlayers        int  `json:"max_players"`
	CountdownMinutes  int  `json:"countdown_minutes"`
	SpectatorsAllowed bool `json:"spectators_allowed"`
}

var (
	matchDefaults   *MatchDefaults
	matchLoadOnce   sync.Once
	matchLoadErr    error
)

// LoadMatchDefaults loads match defaults from path, falling back to the
// embedded defaults (spec 6.2's stated default values) on read or parse
// failure.
func LoadMatchDefaults(path string) error {
	matchLoadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			matchLoadErr = err
			matchDefaults = embeddedMatchDefaults()
			return
		}

		var d MatchDefaults
		if err := json.Unmarshal(data, &d); err != nil {
			matchLoadErr = err
			matchDefaults = embeddedMatchDefaults()
			return
		}
		matchDefaults = &d
	})
	return matchLoadErr
}

// GetMatchDefaults returns the loaded match defaults, or the embedded
// defaults if LoadMatchDefaults was never called.
func GetMatchDefaults() *MatchDefaults {
	if matchDefaults == nil {
		return embeddedMatchDefaults()
	}
	return matchDefaults
}

func embeddedMatchDefaults() *MatchDefaults {
	return &MatchDefaults{
		MaxPip:            12,
		GamesPerMatch:     13,
		MinPlayers:        1,
		MaxPlayers:        8,
		CountdownMinutes:  10,
		SpectatorsAllowed: true,
	}
}
