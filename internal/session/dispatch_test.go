package session

import (
	"encoding/json"
	"math/rand"
	"testing"

	"mexicantrain/internal/config"
	"mexicantrain/internal/domain"
	"mexicantrain/internal/match"
)

func newTestSession() *Session {
	defaults := config.MatchDefaults{
		MaxPip: 12, GamesPerMatch: 1, MinPlayers: 2, MaxPlayers: 4,
		CountdownMinutes: 1, SpectatorsAllowed: true,
	}
	return New("m1", defaults, 0, rand.New(rand.NewSource(1)))
}

func envelope(t *testing.T, typ string, data any) []byte {
	t.Helper()
	body, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	raw, err := json.Marshal(Envelope{Type: typ, Data: body})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}

func TestFirstJoinBecomesHost(t *testing.T) {
	s := newTestSession()
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))

	if s.HostID != "alice" {
		t.Fatalf("expected alice to become host, got %q", s.HostID)
	}
	if !s.hasSeat("alice") {
		t.Fatalf("expected alice to be seated")
	}
}

func TestNonHostCannotStartGame(t *testing.T) {
	s := newTestSession()
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))
	s.Dispatch(0, "bob", envelope(t, "join_game", joinGameData{PlayerName: "Bob"}))

	out := s.Dispatch(0, "bob", envelope(t, "start_game", struct{}{}))
	if len(out) != 1 || out[0].Type != "error" {
		t.Fatalf("expected a single error outbound, got %+v", out)
	}
	payload, ok := out[0].Data.(ErrorPayload)
	if !ok || payload.Kind != "not_host" {
		t.Fatalf("expected not_host error, got %+v", out[0].Data)
	}
}

func TestStartGameDealsFirstRound(t *testing.T) {
	s := newTestSession()
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))
	s.Dispatch(0, "bob", envelope(t, "join_game", joinGameData{PlayerName: "Bob"}))

	out := s.Dispatch(0, "alice", envelope(t, "start_game", struct{}{}))
	if s.Status != match.StatusInProgress {
		t.Fatalf("expected the match to be in progress, got %v", s.Status)
	}
	if s.CurrentGame() == nil {
		t.Fatalf("expected a dealt game")
	}

	foundGameStarted := false
	for _, o := range out {
		if o.Type == "game_started" {
			foundGameStarted = true
		}
	}
	if !foundGameStarted {
		t.Fatalf("expected a game_started outbound among %+v", out)
	}
}

func TestStartGameAutoFillsAIWhenSolo(t *testing.T) {
	s := newTestSession()
	s.Defaults.MinPlayers = 1
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))

	s.Dispatch(0, "alice", envelope(t, "start_game", struct{}{}))

	if s.Occupied() != defaultAutoFillTarget {
		t.Fatalf("expected %d seats filled, got %d", defaultAutoFillTarget, s.Occupied())
	}
	if len(s.Bots) != defaultAutoFillTarget-1 {
		t.Fatalf("expected %d AI agents, got %d", defaultAutoFillTarget-1, len(s.Bots))
	}
}

func TestMakeMoveByWrongSeatIsRejectedWithoutMutatingState(t *testing.T) {
	s := newTestSession()
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))
	s.Dispatch(0, "bob", envelope(t, "join_game", joinGameData{PlayerName: "Bob"}))
	s.Dispatch(0, "alice", envelope(t, "start_game", struct{}{}))

	g := s.CurrentGame()
	notCurrent := domain.SeatID("bob")
	if g.CurrentSeat() == notCurrent {
		notCurrent = "alice"
	}
	handBefore := len(g.Hands[notCurrent])

	out := s.Dispatch(0, notCurrent, envelope(t, "make_move", makeMoveData{
		PlayerID: string(notCurrent), TileID: string(g.Hands[notCurrent][0].ID), TrainType: "own",
	}))

	if len(out) != 1 || out[0].Type != "error" {
		t.Fatalf("expected a single error outbound, got %+v", out)
	}
	if payload, ok := out[0].Data.(ErrorPayload); !ok || payload.Kind != "not_your_turn" {
		t.Fatalf("expected not_your_turn, got %+v", out[0].Data)
	}
	if len(g.Hands[notCurrent]) != handBefore {
		t.Fatalf("hand must not change on a rejected move")
	}
}

func TestDispatchRejectsMalformedEnvelope(t *testing.T) {
	s := newTestSession()
	out := s.Dispatch(0, "alice", []byte("not json"))
	if len(out) != 1 || out[0].Type != "error" {
		t.Fatalf("expected a single error outbound, got %+v", out)
	}
	if payload, ok := out[0].Data.(ErrorPayload); !ok || payload.Kind != "unknown_message" {
		t.Fatalf("expected unknown_message, got %+v", out[0].Data)
	}
}

func TestUnknownMessageTypeIsRejected(t *testing.T) {
	s := newTestSession()
	out := s.Dispatch(0, "alice", envelope(t, "not_a_real_type", struct{}{}))
	if len(out) != 1 || out[0].Type != "error" {
		t.Fatalf("expected a single error outbound, got %+v", out)
	}
	if payload, ok := out[0].Data.(ErrorPayload); !ok || payload.Kind != "unknown_message" {
		t.Fatalf("expected unknown_message, got %+v", out[0].Data)
	}
}

func TestMatchFullRejectsExtraJoin(t *testing.T) {
	s := newTestSession()
	s.Defaults.MaxPlayers = 1
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))

	out := s.Dispatch(0, "bob", envelope(t, "join_game", joinGameData{PlayerName: "Bob"}))
	if len(out) != 1 || out[0].Type != "error" {
		t.Fatalf("expected a single error outbound, got %+v", out)
	}
	if payload, ok := out[0].Data.(ErrorPayload); !ok || payload.Kind != "match_full" {
		t.Fatalf("expected match_full, got %+v", out[0].Data)
	}
}
