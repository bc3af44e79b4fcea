package nakama

import (
	"context"
	"database/sql"
	"os"

	"mexicantrain/internal/auth"
	"mexicantrain/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and the match handler for the Nakama runtime,
// grounded on the teacher's InitModule, generalized from Tien Len's single
// match type + Vivox/VIP RPC set to this spec's quick-match + admin RPC
// surface (spec 4.5.4, 6.3).
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	if err := config.LoadAIConfig(envOrOs(env, "MEXICANTRAIN_AI_CONFIG_PATH", "data/ai_config.json")); err != nil {
		logger.Warn("InitModule: falling back to embedded AI config: %v", err)
	}
	config.ApplyAIConfig(config.GetAIConfig())

	if err := config.LoadMatchDefaults(envOrOs(env, "MEXICANTRAIN_MATCH_DEFAULTS_PATH", "data/match_defaults.json")); err != nil {
		logger.Warn("InitModule: falling back to embedded match defaults: %v", err)
	}

	adminSecret := envOrOs(env, "MEXICANTRAIN_ADMIN_SECRET", "")
	adminIssuer := envOrOs(env, "MEXICANTRAIN_ADMIN_ISSUER", "mexicantrain")
	if adminSecret != "" {
		adminTokens = auth.NewTokenService(adminSecret, adminIssuer)
	} else {
		logger.Warn("InitModule: MEXICANTRAIN_ADMIN_SECRET not set, admin RPCs will reject every request.")
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcAdminListMatches, RpcAdminListMatchesHandler); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcAdminTerminateMatch, RpcAdminTerminateMatchHandler); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcAdminAdvanceTurn, RpcAdminAdvanceTurnHandler); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchName, NewMatch); err != nil {
		return err
	}

	logger.Info("Mexican Train module loaded.")
	return nil
}

func envOrOs(env map[string]string, key, fallback string) string {
	if value, ok := env[key]; ok && value != "" {
		return value
	}
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
