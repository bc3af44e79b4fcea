package session

import (
	"encoding/json"
	"fmt"

	"mexicantrain/internal/bot"
	"mexicantrain/internal/domain"
	"mexicantrain/internal/match"
	"mexicantrain/internal/rules"
)

// Dispatch decodes one inbound envelope from seat "from" and runs the
// matching handler, recovering any panic at this boundary and reporting it
// as a generic internal_error (spec 7's dispatch-boundary guarantee) so one
// bad message can never take the whole match down.
func (s *Session) Dispatch(tick int64, from domain.SeatID, raw []byte) (out []Outbound) {
	s.LastTick = tick

	defer func() {
		if r := recover(); r != nil {
			out = []Outbound{toOne(string(from), "error", ErrorPayload{
				Kind:    "internal_error",
				Message: fmt.Sprintf("%v", r),
			})}
		}
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return []Outbound{toOne(string(from), "error", ErrorPayload{Kind: "unknown_message", Message: "malformed envelope"})}
	}

	switch env.Type {
	case "join_game":
		return s.handleJoinGame(from, env.Data)
	case "spectate_game":
		return s.handleSpectateGame(from, env.Data)
	case "start_game":
		return s.handleStartGame(from)
	case "make_move":
		return s.handleMakeMove(from, env.Data)
	case "draw_domino":
		return s.handleDrawDomino(from, env.Data)
	case "get_valid_moves":
		return s.handleGetValidMoves(from, env.Data)
	case "get_all_valid_moves":
		return s.handleGetAllValidMoves(from, env.Data)
	case "chat_message":
		return s.handleChatMessage(from, env.Data)
	default:
		return []Outbound{toOne(string(from), "error", ErrorPayload{Kind: "unknown_message", Message: env.Type})}
	}
}

func errOut(from domain.SeatID, kind string) []Outbound {
	return []Outbound{toOne(string(from), "error", ErrorPayload{Kind: kind, Message: kind})}
}

func (s *Session) handleJoinGame(from domain.SeatID, raw json.RawMessage) []Outbound {
	var data joinGameData
	_ = json.Unmarshal(raw, &data)

	if s.hasSeat(from) {
		s.Connected[from] = true
		return s.reconnectOutbound(from)
	}

	if s.Status != match.StatusWaiting {
		return errOut(from, "match_already_started")
	}
	if s.Occupied() >= s.Defaults.MaxPlayers {
		return errOut(from, "match_full")
	}

	seat := match.Seat{ID: from, DisplayName: data.PlayerName, JoinOrder: s.Occupied()}
	s.Seats = append(s.Seats, seat)
	s.Connected[from] = true
	if s.HostID == "" {
		s.HostID = from
	}

	return []Outbound{toAll("player_joined", s.buildMatchState())}
}

// reconnectOutbound re-sends state to a seat already part of the match
// (spec 4.5.3 reconnection), re-arming the AI trigger if a pending turn was
// never scheduled because no one was connected to observe it.
func (s *Session) reconnectOutbound(seat domain.SeatID) []Outbound {
	out := []Outbound{s.broadcastMatchStateTo([]string{string(seat)})}
	if g := s.CurrentGame(); g != nil {
		out = append(out, toOne(string(seat), "game_state", buildGameState(g, seat)))
		if s.IsAISeat(g.CurrentSeat()) && s.AIWaitUntilTick == 0 {
			out = append(out, s.armAITrigger()...)
		}
	}
	return out
}

func (s *Session) handleSpectateGame(from domain.SeatID, raw json.RawMessage) []Outbound {
	var data spectateGameData
	_ = json.Unmarshal(raw, &data)

	if !s.Defaults.SpectatorsAllowed {
		return errOut(from, "spectators_not_allowed")
	}

	name := data.SpectatorName
	if name == "" {
		name = string(from)
	}
	s.Spectators[from] = name

	out := []Outbound{toAll("spectator_joined", SeatView{ID: string(from), DisplayName: name})}
	out = append(out, s.broadcastMatchStateTo([]string{string(from)}))
	if g := s.CurrentGame(); g != nil {
		out = append(out, toOne(string(from), "game_state", buildGameState(g, "")))
	}
	return out
}

func (s *Session) handleStartGame(from domain.SeatID) []Outbound {
	if from != s.HostID {
		return errOut(from, "not_host")
	}
	if s.Status != match.StatusWaiting {
		return errOut(from, "match_already_started")
	}
	if s.Occupied() < s.Defaults.MinPlayers {
		return errOut(from, "not_enough_players")
	}

	s.fillWithAIIfSolo()

	seats := make([]match.Seat, len(s.Seats))
	copy(seats, s.Seats)
	s.M = match.New(s.ID, seats, s.Defaults.MaxPip, s.Defaults.GamesPerMatch)
	if _, err := s.M.StartNextGame(s.Rng); err != nil {
		return errOut(from, "internal_error")
	}
	s.Status = match.StatusInProgress

	out := []Outbound{toAll("game_started", s.buildMatchState())}
	out = append(out, s.gameStateBroadcasts()...)
	out = append(out, s.armAITrigger()...)
	return out
}

// fillWithAIIfSolo seats AI players up to defaultAutoFillTarget when exactly
// one human has joined before start_game, per the Open Question resolution
// recorded in DESIGN.md.
func (s *Session) fillWithAIIfSolo() {
	if s.Occupied() != 1 {
		return
	}
	target := defaultAutoFillTarget
	if target > s.Defaults.MaxPlayers {
		target = s.Defaults.MaxPlayers
	}
	needed := target - s.Occupied()
	if needed <= 0 {
		return
	}

	ids := aiSeatIDs(needed)
	pool := bot.Pool(ids, defaultAIFillLevel, s.Rng)
	for i, id := range ids {
		agent := pool[id]
		s.Seats = append(s.Seats, match.Seat{
			ID:          id,
			DisplayName: bot.NameForSeatIndex(i),
			IsAI:        true,
			StrategyID:  agent.StrategyID,
			JoinOrder:   s.Occupied(),
		})
		s.Bots[id] = agent
	}
}

func aiSeatIDs(n int) []domain.SeatID {
	ids := make([]domain.SeatID, n)
	for i := range ids {
		ids[i] = domain.SeatID(fmt.Sprintf("ai:%d", i))
	}
	return ids
}

func resolveDestination(seat domain.SeatID, data makeMoveData) rules.Destination {
	switch data.TrainType {
	case "mexican":
		return rules.Destination{Owner: ""}
	case "own":
		return rules.Destination{Owner: seat}
	default:
		return rules.Destination{Owner: domain.SeatID(data.TrainOwner)}
	}
}

func (s *Session) handleMakeMove(from domain.SeatID, raw json.RawMessage) []Outbound {
	g := s.CurrentGame()
	if g == nil {
		return errOut(from, "match_not_found")
	}
	var data makeMoveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return errOut(from, "unknown_message")
	}

	seat := domain.SeatID(data.PlayerID)
	dest := resolveDestination(seat, data)

	payload, err := rules.PlayMove(g, seat, domain.TileID(data.TileID), dest)
	if err != nil {
		return errOut(from, err.Error())
	}

	out := []Outbound{toAll("move_result", payload)}
	out = append(out, s.gameStateBroadcasts()...)
	s.notifyBotsEvent(rules.Event{Kind: rules.EventMovePlayed, Payload: payload})
	out = append(out, s.afterMutation()...)
	return out
}

func (s *Session) handleDrawDomino(from domain.SeatID, raw json.RawMessage) []Outbound {
	g := s.CurrentGame()
	if g == nil {
		return errOut(from, "match_not_found")
	}
	var data drawDominoData
	_ = json.Unmarshal(raw, &data)
	seat := domain.SeatID(data.PlayerID)

	payload, err := rules.Draw(g, seat)
	if err != nil {
		return errOut(from, err.Error())
	}

	out := []Outbound{toAll("draw_result", payload)}
	out = append(out, s.gameStateBroadcasts()...)
	s.notifyBotsEvent(rules.Event{Kind: rules.EventTileDrawn, Payload: payload})
	out = append(out, s.afterMutation()...)
	return out
}

// LegalMoveView is the wire representation of one legal move (spec
// get_valid_moves/get_all_valid_moves responses).
type LegalMoveView struct {
	TileID     string `json:"tile_id"`
	A          int    `json:"a"`
	B          int    `json:"b"`
	TrainOwner string `json:"train_owner"`
}

func legalMoveViews(moves []rules.LegalMove) []LegalMoveView {
	out := make([]LegalMoveView, len(moves))
	for i, m := range moves {
		out[i] = LegalMoveView{TileID: string(m.Tile.ID), A: m.Tile.A, B: m.Tile.B, TrainOwner: string(m.Dest.Owner)}
	}
	return out
}

func (s *Session) handleGetValidMoves(from domain.SeatID, raw json.RawMessage) []Outbound {
	g := s.CurrentGame()
	if g == nil {
		return errOut(from, "match_not_found")
	}
	var data getValidMovesData
	_ = json.Unmarshal(raw, &data)

	moves := rules.LegalMoves(g)
	if data.Tile != "" {
		filtered := make([]rules.LegalMove, 0, len(moves))
		for _, m := range moves {
			if string(m.Tile.ID) == data.Tile {
				filtered = append(filtered, m)
			}
		}
		moves = filtered
	}
	return []Outbound{toOne(string(from), "valid_moves", legalMoveViews(moves))}
}

// AllValidMovesView additionally reports whether no move exists, so the
// client knows a draw_domino is required without guessing from an empty
// move list (spec must_play_not_draw / draw eligibility).
type AllValidMovesView struct {
	Moves    []LegalMoveView `json:"moves"`
	MustDraw bool            `json:"must_draw"`
}

func (s *Session) handleGetAllValidMoves(from domain.SeatID, raw json.RawMessage) []Outbound {
	g := s.CurrentGame()
	if g == nil {
		return errOut(from, "match_not_found")
	}
	moves := rules.LegalMoves(g)
	return []Outbound{toOne(string(from), "all_valid_moves", AllValidMovesView{
		Moves:    legalMoveViews(moves),
		MustDraw: len(moves) == 0,
	})}
}

type chatMessageView struct {
	From string          `json:"from"`
	Data json.RawMessage `json:"data"`
}

func (s *Session) handleChatMessage(from domain.SeatID, raw json.RawMessage) []Outbound {
	return []Outbound{toAll("chat_message", chatMessageView{From: string(from), Data: raw})}
}

func (s *Session) notifyBotsEvent(ev rules.Event) {
	for _, agent := range s.Bots {
		agent.OnEvent(ev)
	}
}

// afterMutation runs after any accepted rules-engine state change: it ends
// the game and folds scores if the game just finished, otherwise arms the
// AI trigger for the new current player (spec 4.5.2, 4.4).
func (s *Session) afterMutation() []Outbound {
	g := s.CurrentGame()
	if g == nil {
		return nil
	}
	if ended, _ := rules.Ended(g); ended {
		return s.finishGame()
	}
	return s.armAITrigger()
}

// finishGame folds the just-ended game into match history and either deals
// the next game or reports the match complete (spec 4.4).
func (s *Session) finishGame() []Outbound {
	out := []Outbound{toAll("game_ended", s.buildMatchState())}

	record, err := s.M.FinishCurrentGame()
	if err != nil {
		return out
	}
	if record != nil {
		s.Status = match.StatusCompleted
		out = append(out, toAll("match_ended", record))
		return out
	}

	if _, err := s.M.StartNextGame(s.Rng); err == nil {
		out = append(out, toAll("game_started", s.buildMatchState()))
		out = append(out, s.gameStateBroadcasts()...)
		out = append(out, s.armAITrigger()...)
	}
	return out
}
