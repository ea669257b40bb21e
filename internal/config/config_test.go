package config

import (
	"strings"
	"testing"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setupEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.HistoryWindow != 10 {
		t.Errorf("unexpected history window: %d", cfg.HistoryWindow)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("unexpected chat model: %s", cfg.ChatModel)
	}
	if cfg.TranscribeModel != "gpt-4o-transcribe" {
		t.Errorf("unexpected transcribe model: %s", cfg.TranscribeModel)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origins outside production, got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected missing api key error")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestLoad_ProductionOrigins(t *testing.T) {
	setupEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			t.Fatal("production must not allow all origins")
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Fatal("expected explicit production origin list")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setupEnv(t)
	t.Setenv("VOXCHAT_ADDR", ":9000")
	t.Setenv("VOXCHAT_HISTORY_WINDOW", "5")
	t.Setenv("OPENAI_CHAT_MODEL", "gpt-4o-mini")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.HistoryWindow != 5 {
		t.Errorf("unexpected history window: %d", cfg.HistoryWindow)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("unexpected chat model: %s", cfg.ChatModel)
	}
}

func TestLoad_ValidatesHistoryWindow(t *testing.T) {
	setupEnv(t)
	t.Setenv("VOXCHAT_HISTORY_WINDOW", "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected invalid history window error")
	}
	if !strings.Contains(err.Error(), "VOXCHAT_HISTORY_WINDOW") {
		t.Fatalf("unexpected err: %v", err)
	}
}
