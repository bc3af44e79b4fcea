package session

import (
	"math/rand"
	"testing"

	"mexicantrain/internal/config"
	"mexicantrain/internal/match"
)

func newWaitingSession(minPlayers int) *Session {
	defaults := config.MatchDefaults{
		MaxPip: 12, GamesPerMatch: 1, MinPlayers: minPlayers, MaxPlayers: 4,
		CountdownMinutes: 1, SpectatorsAllowed: true,
	}
	return New("m1", defaults, 0, rand.New(rand.NewSource(3)))
}

func TestCountdownSilentWhileMinutesUnchanged(t *testing.T) {
	s := newWaitingSession(2)
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))

	// First 30-tick wake of a one-minute countdown: 30 ticks remain, so
	// minutesRemaining rounds down to 0, the same value LastMinutesNotice
	// starts at, and no countdown_update is sent.
	out := s.Tick(countdownStepTicks)
	if len(out) != 0 {
		t.Fatalf("expected no countdown_update yet at minute-unchanged tick, got %+v", out)
	}
}

func TestCountdownAutoStartsWithEnoughPlayers(t *testing.T) {
	s := newWaitingSession(2)
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))
	s.Dispatch(0, "bob", envelope(t, "join_game", joinGameData{PlayerName: "Bob"}))

	deadline := s.CountdownDeadline
	wake := deadline - (deadline % countdownStepTicks) + countdownStepTicks

	out := s.Tick(wake)
	if s.Status != match.StatusInProgress {
		t.Fatalf("expected the match to auto-start, got status %v", s.Status)
	}
	found := false
	for _, o := range out {
		if o.Type == "game_auto_started" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a game_auto_started outbound, got %+v", out)
	}
}

func TestCountdownDeletesMatchWithoutEnoughPlayers(t *testing.T) {
	s := newWaitingSession(2)
	s.Dispatch(0, "alice", envelope(t, "join_game", joinGameData{PlayerName: "Alice"}))

	deadline := s.CountdownDeadline
	wake := deadline - (deadline % countdownStepTicks) + countdownStepTicks

	out := s.Tick(wake)
	if s.Status != match.StatusCompleted {
		t.Fatalf("expected the match to be torn down, got status %v", s.Status)
	}
	found := false
	for _, o := range out {
		if o.Type == "game_deleted" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a game_deleted outbound, got %+v", out)
	}
}
