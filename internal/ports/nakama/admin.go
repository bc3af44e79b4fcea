package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mexicantrain/internal/auth"

	"github.com/heroiclabs/nakama-common/runtime"
)

// adminTokens verifies the admin-scoped tokens gating spec 6.3's
// administrative RPCs. Set once by InitModule from environment secrets,
// grounded on the teacher's package-level vivoxService wiring pattern.
var adminTokens *auth.TokenService

type adminRequest struct {
	AdminToken string `json:"admin_token"`
	MatchID    string `json:"match_id,omitempty"`
}

func verifyAdmin(req adminRequest) error {
	if adminTokens == nil {
		return fmt.Errorf("admin RPCs are not configured")
	}
	if _, err := adminTokens.VerifyAdminToken(req.AdminToken); err != nil {
		return fmt.Errorf("admin authentication failed: %w", err)
	}
	return nil
}

// AdminMatchSummary describes one live match for admin_list_matches.
type AdminMatchSummary struct {
	MatchID string `json:"match_id"`
	Size    int    `json:"size"`
	Label   string `json:"label"`
}

// RpcAdminListMatchesHandler lists every currently running match (spec
// 6.3).
func RpcAdminListMatchesHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req adminRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", fmt.Errorf("admin_list_matches: invalid payload: %w", err)
	}
	if err := verifyAdmin(req); err != nil {
		return "", err
	}

	limit := 100
	authoritative := true
	matches, err := nk.MatchList(ctx, limit, authoritative, "", nil, nil, "")
	if err != nil {
		return "", fmt.Errorf("admin_list_matches: %w", err)
	}

	summaries := make([]AdminMatchSummary, 0, len(matches))
	for _, m := range matches {
		summaries = append(summaries, AdminMatchSummary{
			MatchID: m.MatchId,
			Size:    int(m.Size),
			Label:   m.Label.GetValue(),
		})
	}

	body, err := json.Marshal(summaries)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// RpcAdminTerminateMatchHandler signals a match to terminate immediately
// (spec 6.3), independent of the match's own countdown/completion logic.
func RpcAdminTerminateMatchHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req adminRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", fmt.Errorf("admin_terminate_match: invalid payload: %w", err)
	}
	if err := verifyAdmin(req); err != nil {
		return "", err
	}
	if req.MatchID == "" {
		return "", fmt.Errorf("admin_terminate_match: match_id is required")
	}

	if _, err := nk.MatchSignal(ctx, req.MatchID, `{"op":"terminate"}`); err != nil {
		return "", fmt.Errorf("admin_terminate_match: %w", err)
	}
	return `{"status":"terminated"}`, nil
}

// RpcAdminAdvanceTurnHandler force-advances the current turn of a match,
// the admin-facing counterpart to the session manager's own ai_timeout
// recovery path (spec 6.3, 7).
func RpcAdminAdvanceTurnHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req adminRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", fmt.Errorf("admin_advance_turn: invalid payload: %w", err)
	}
	if err := verifyAdmin(req); err != nil {
		return "", err
	}
	if req.MatchID == "" {
		return "", fmt.Errorf("admin_advance_turn: match_id is required")
	}

	if _, err := nk.MatchSignal(ctx, req.MatchID, `{"op":"advance_turn"}`); err != nil {
		return "", fmt.Errorf("admin_advance_turn: %w", err)
	}
	return `{"status":"advanced"}`, nil
}
