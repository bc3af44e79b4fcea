// Package session is the session manager (spec 4.5): it owns one match's
// connections, spectators, and AI/countdown scheduling, translating the
// wire protocol's {type, data} envelopes (spec 6.1) into internal/rules and
// internal/match calls and personalizing every broadcast in response.
// Grounded on the teacher's ports/nakama/match_handler.go MatchState/
// broadcastEvent plumbing, generalized from Tien Len's fixed protobuf
// opcode set to this spec's closed JSON message-type set.
package session

import "encoding/json"

// Envelope is the wire-protocol message record (spec 6.1): {type, data}.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Outbound is one message this package wants sent, leaving the actual
// transport write to the caller (internal/ports/nakama), matching the
// teacher's rules.Event{Recipients} pattern generalized to the session
// layer. An empty Recipients list means broadcast to every connection,
// player and spectator alike.
type Outbound struct {
	Type       string
	Data       any
	Recipients []string
}

func toAll(typ string, data any) Outbound {
	return Outbound{Type: typ, Data: data}
}

func toOne(to string, typ string, data any) Outbound {
	return Outbound{Type: typ, Data: data, Recipients: []string{to}}
}

// Inbound payload shapes, one per recognized message type (spec 4.5.1).
type joinGameData struct {
	PlayerName string `json:"player_name"`
}

type spectateGameData struct {
	SpectatorName string `json:"spectator_name"`
}

type makeMoveData struct {
	PlayerID   string `json:"player_id"`
	TileID     string `json:"tile_id"`
	TrainType  string `json:"train_type"` // "own", "mexican", or "foreign"
	TrainOwner string `json:"train_owner,omitempty"`
}

type drawDominoData struct {
	PlayerID string `json:"player_id"`
}

type getValidMovesData struct {
	PlayerID string `json:"player_id"`
	Tile     string `json:"tile,omitempty"`
}

type getAllValidMovesData struct {
	PlayerID string `json:"player_id"`
}

// ErrorPayload is the body of an outbound "error" message (spec 7).
type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
