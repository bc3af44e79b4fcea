package session

import (
	"mexicantrain/internal/domain"
)

// TileView is the wire representation of one tile.
type TileView struct {
	ID string `json:"id"`
	A  int    `json:"a"`
	B  int    `json:"b"`
}

func tileView(t domain.Tile) TileView {
	return TileView{ID: string(t.ID), A: t.A, B: t.B}
}

func tileViews(tiles []domain.Tile) []TileView {
	out := make([]TileView, len(tiles))
	for i, t := range tiles {
		out[i] = tileView(t)
	}
	return out
}

// SeatView is one seat's match-lifetime summary (spec 4.5.1 match_state).
type SeatView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsAI        bool   `json:"is_ai"`
	Connected   bool   `json:"connected"`
}

// MatchStateView is the personalized match_state payload. It carries no
// hand contents, only seat/lifecycle information, so it is identical for
// every recipient (spec 6.1 still calls every broadcast personalized;
// match_state simply has nothing seat-private to redact).
type MatchStateView struct {
	MatchID        string     `json:"match_id"`
	Status         string     `json:"status"`
	HostID         string     `json:"host_id"`
	Seats          []SeatView `json:"seats"`
	GamesPlayed    int        `json:"games_played"`
	GamesMax       int        `json:"games_max"`
	SpectatorCount int        `json:"spectator_count"`
	Cumulative     map[string]int `json:"cumulative,omitempty"`
}

func (s *Session) buildMatchState() MatchStateView {
	seats := make([]SeatView, len(s.Seats))
	for i, seat := range s.Seats {
		seats[i] = SeatView{
			ID:          string(seat.ID),
			DisplayName: seat.DisplayName,
			IsAI:        seat.IsAI,
			Connected:   s.Connected[seat.ID],
		}
	}

	v := MatchStateView{
		MatchID:        s.ID,
		Status:         string(s.Status),
		HostID:         string(s.HostID),
		Seats:          seats,
		GamesMax:       s.Defaults.GamesPerMatch,
		SpectatorCount: len(s.Spectators),
	}
	if s.M != nil {
		v.GamesPlayed = len(s.M.History)
		v.Cumulative = seatIDMapToString(s.M.Cumulative)
	}
	return v
}

// TrainView is one train's wire representation. Tiles are always fully
// visible (trains are public), unlike hands.
type TrainView struct {
	Owner             string     `json:"owner"` // "" means the Mexican train
	Tiles             []TileView `json:"tiles"`
	Open              bool       `json:"open"`
	UnsatisfiedDouble bool       `json:"unsatisfied_double"`
}

func trainView(t *domain.Train) TrainView {
	tiles := make([]TileView, len(t.Tiles))
	for i, pt := range t.Tiles {
		tiles[i] = tileView(pt.Tile)
	}
	return TrainView{Owner: string(t.Owner), Tiles: tiles, Open: t.Open, UnsatisfiedDouble: t.UnsatisfiedDouble}
}

// GameStateView is a personalized snapshot of the live game. Hand is only
// populated for the recipient's own seat (nil/omitted for a spectator or
// for every other seat); HandCounts gives every seat's tile count so
// opponents' hand sizes stay visible without leaking contents (spec 6.1).
type GameStateView struct {
	Phase              string         `json:"phase"`
	EnginePip          int            `json:"engine_pip"`
	CurrentSeat        string         `json:"current_seat"`
	Hand               []TileView     `json:"hand,omitempty"`
	HandCounts         map[string]int `json:"hand_counts"`
	Trains             []TrainView    `json:"trains"`
	BoneyardCount      int            `json:"boneyard_count"`
	UnsatisfiedDoubles []string       `json:"unsatisfied_doubles"`
	WinnerSeat         string         `json:"winner_seat,omitempty"`
	Scores             map[string]int `json:"scores,omitempty"`
}

// buildGameState renders g personalized for recipient; pass "" for a
// spectator (no hand is ever attached).
func buildGameState(g *domain.Game, recipient domain.SeatID) GameStateView {
	counts := make(map[string]int, len(g.Seats))
	for _, seat := range g.Seats {
		counts[string(seat)] = len(g.Hands[seat])
	}

	trains := make([]TrainView, 0, len(g.Seats)+1)
	for _, seat := range g.Seats {
		trains = append(trains, trainView(g.Trains[seat]))
	}
	trains = append(trains, trainView(g.Mexican))

	doubles := make([]string, len(g.UnsatisfiedDoubles))
	for i, s := range g.UnsatisfiedDoubles {
		doubles[i] = string(s)
	}

	v := GameStateView{
		Phase:              string(g.Phase),
		EnginePip:          g.EnginePip,
		CurrentSeat:        string(g.CurrentSeat()),
		HandCounts:         counts,
		Trains:             trains,
		BoneyardCount:      len(g.Boneyard),
		UnsatisfiedDoubles: doubles,
	}
	if recipient != "" {
		if hand, ok := g.Hands[recipient]; ok {
			v.Hand = tileViews(hand)
		}
	}
	if g.Phase == domain.PhaseEnded {
		v.WinnerSeat = string(g.WinnerSeat)
		v.Scores = make(map[string]int, len(g.RoundScores))
		for seat, pips := range g.RoundScores {
			v.Scores[string(seat)] = pips
		}
	}
	return v
}

func seatIDMapToString(m map[domain.SeatID]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

// broadcastMatchStateTo builds a match_state addressed to the given
// recipients only (the payload is recipient-independent).
func (s *Session) broadcastMatchStateTo(recipients []string) Outbound {
	return Outbound{Type: "match_state", Data: s.buildMatchState(), Recipients: recipients}
}

// gameStateBroadcasts builds one personalized game_state per connected
// seat plus one spectator-safe copy for every spectator.
func (s *Session) gameStateBroadcasts() []Outbound {
	g := s.CurrentGame()
	if g == nil {
		return nil
	}
	var out []Outbound
	for _, seat := range s.Seats {
		if !s.Connected[seat.ID] {
			continue
		}
		out = append(out, toOne(string(seat.ID), "game_state", buildGameState(g, seat.ID)))
	}
	spectatorView := buildGameState(g, "")
	for id := range s.Spectators {
		out = append(out, toOne(string(id), "game_state", spectatorView))
	}
	return out
}

// BroadcastGameState exposes gameStateBroadcasts to callers outside this
// package (the transport adapter's admin_advance_turn handling, spec 6.3).
func (s *Session) BroadcastGameState() []Outbound {
	return s.gameStateBroadcasts()
}
