package nakama

const (
	// MatchName is the authoritative match handler name registered with
	// Nakama (spec 4.5.4's Nakama match abstraction).
	MatchName = "mexicantrain_match"

	// RpcQuickMatch finds or creates a waiting match with an open seat.
	RpcQuickMatch = "quick_match"

	// Admin RPCs (spec 6.3), authenticated via internal/auth admin tokens.
	RpcAdminListMatches    = "admin_list_matches"
	RpcAdminTerminateMatch = "admin_terminate_match"
	RpcAdminAdvanceTurn    = "admin_advance_turn"

	// matchLabelKeyOpenSeats is the match label field clients filter
	// quick-match searches on.
	matchLabelKeyOpenSeats = "open_seats"

	// opEnvelope is the single Nakama match opcode carrying every wire
	// message, since the protocol's actual message type lives in the JSON
	// envelope's "type" field (spec 6.1) rather than in distinct opcodes.
	opEnvelope int64 = 1
)
