// Package nakama is the transport adapter binding internal/session's
// message-driven session manager to the Nakama authoritative match runtime,
// grounded on the teacher's ports/nakama/match_handler.go MatchInit/
// MatchJoin/MatchLoop plumbing, generalized from Tien Len's protobuf opcode
// set to this spec's JSON {type, data} envelope (spec 6.1) carried on a
// single shared opcode.
package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"time"

	"mexicantrain/internal/config"
	"mexicantrain/internal/domain"
	"mexicantrain/internal/match"
	"mexicantrain/internal/rules"
	"mexicantrain/internal/session"

	"github.com/heroiclabs/nakama-common/runtime"
)

// matchState is the Nakama-visible state for one match: the session
// manager plus the live presence map needed to route personalized
// Outbound messages to the right connections.
type matchState struct {
	sess      *session.Session
	presences map[string]runtime.Presence
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit creates a waiting session (spec 4.5.4), ticking at session.TickHz
// so every session.Tick call corresponds to one MatchLoop invocation.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	defaults := *config.GetMatchDefaults()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	state := &matchState{
		sess:      session.New(matchID, defaults, 0, rng),
		presences: make(map[string]runtime.Presence),
	}

	label := map[string]int{matchLabelKeyOpenSeats: defaults.MaxPlayers}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, int(session.TickHz), string(labelBytes)
}

// MatchJoinAttempt always accepts: seat and spectator assignment is
// negotiated by the first join_game/spectate_game envelope (spec 4.5.1),
// not by the Nakama connection handshake itself.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	st, ok := state.(*matchState)
	if !ok {
		return state, false, "state not found"
	}
	return st, true, ""
}

// MatchJoin registers each new presence for message routing. It does not
// seat the connection: the client is expected to follow up with a
// join_game or spectate_game message, which also serves as the reconnect
// signal for a seat already part of the match (spec 4.5.3).
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	st, ok := state.(*matchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}
	for _, p := range presences {
		st.presences[p.GetUserId()] = p
	}
	return st
}

// MatchLeave keeps the seat reserved (spec 4.5.3 reconnection) but marks it
// disconnected so personalized broadcasts stop targeting a closed socket,
// and drops any spectator registration outright.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	st, ok := state.(*matchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}
	for _, p := range presences {
		id := domain.SeatID(p.GetUserId())
		delete(st.presences, p.GetUserId())
		if _, seated := st.sess.Connected[id]; seated {
			st.sess.Connected[id] = false
		}
		delete(st.sess.Spectators, id)
	}
	return st
}

// MatchLoop dispatches every inbound envelope, runs the per-tick AI/
// countdown scheduler, and routes the resulting Outbound messages (spec
// 4.5.2, 4.6). It terminates the match once the session reports the match
// complete (spec 4.4).
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	st, ok := state.(*matchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		out := st.sess.Dispatch(tick, domain.SeatID(msg.GetUserId()), msg.GetData())
		mh.route(st, dispatcher, out)
	}

	mh.route(st, dispatcher, st.sess.Tick(tick))
	mh.updateLabel(st, dispatcher, logger)

	if st.sess.Status == match.StatusCompleted {
		return nil
	}
	return st
}

// MatchSignal handles out-of-band administrative requests (spec 6.3),
// signaled via nk.MatchSignal from the admin RPCs in admin.go rather than
// a player-visible envelope message.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	st, ok := state.(*matchState)
	if !ok {
		return state, ""
	}

	var signal struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal([]byte(data), &signal); err != nil {
		return st, ""
	}

	switch signal.Op {
	case "terminate":
		return nil, "terminated"
	case "advance_turn":
		if g := st.sess.CurrentGame(); g != nil {
			rules.ForceAdvanceTurn(g)
			mh.route(st, dispatcher, st.sess.BroadcastGameState())
		}
		return st, "advanced"
	default:
		return st, ""
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: match terminated for reason %d", reason)
	return state
}

// route encodes each Outbound as a {type, data} envelope and sends it to
// either every connection (empty Recipients) or the named recipients.
func (mh *matchHandler) route(st *matchState, dispatcher runtime.MatchDispatcher, outbounds []session.Outbound) {
	for _, ob := range outbounds {
		mh.send(st, dispatcher, ob)
	}
}

func (mh *matchHandler) send(st *matchState, dispatcher runtime.MatchDispatcher, ob session.Outbound) {
	body, err := json.Marshal(ob.Data)
	if err != nil {
		return
	}
	raw, err := json.Marshal(session.Envelope{Type: ob.Type, Data: json.RawMessage(body)})
	if err != nil {
		return
	}

	var recipients []runtime.Presence
	if len(ob.Recipients) > 0 {
		recipients = make([]runtime.Presence, 0, len(ob.Recipients))
		for _, id := range ob.Recipients {
			if p, ok := st.presences[id]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opEnvelope, raw, recipients, nil, true)
}

func (mh *matchHandler) updateLabel(st *matchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	open := st.sess.Defaults.MaxPlayers - st.sess.Occupied()
	if open < 0 {
		open = 0
	}
	label := map[string]int{matchLabelKeyOpenSeats: open}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}
