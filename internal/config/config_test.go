package config

import (
	"sync"
	"testing"
)

func TestGetAIConfigFallsBackToEmbedded(t *testing.T) {
	c := GetAIConfig()
	if _, ok := c.Strategies["novice"]; !ok {
		t.Fatalf("expected embedded fallback to define a novice strategy")
	}
	if c.LevelMappings[1] != "novice" {
		t.Fatalf("expected embedded fallback level 1 to map to novice")
	}
}

func TestLoadAIConfigFallsBackOnMissingFile(t *testing.T) {
	aiConfig = nil
	aiLoadOnce = sync.Once{}

	err := LoadAIConfig("/nonexistent/ai_config.json")
	if err == nil {
		t.Fatalf("expected an error reading a nonexistent file")
	}
	if GetAIConfig() == nil {
		t.Fatalf("expected the embedded fallback config even on load failure")
	}
}

func TestGetMatchDefaultsFallsBackToEmbedded(t *testing.T) {
	d := GetMatchDefaults()
	if d.MaxPip != 12 || d.GamesPerMatch != 13 {
		t.Fatalf("expected spec defaults, got %+v", d)
	}
}
