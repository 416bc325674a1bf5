package model

import "testing"

func TestDefaultAppConfigMatchesDefaultOptions(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.DefaultOptions != DefaultOptions() {
		t.Errorf("default options mismatch: %+v vs %+v", cfg.DefaultOptions, DefaultOptions())
	}
	if cfg.DefaultMaxWidth != 2048 || cfg.DefaultMaxHeight != 2048 {
		t.Errorf("expected 2048x2048 bins, got %.0fx%.0f", cfg.DefaultMaxWidth, cfg.DefaultMaxHeight)
	}
	if cfg.SessionFormat != "json" {
		t.Errorf("expected json session format, got %s", cfg.SessionFormat)
	}
	if cfg.RecentSessions == nil {
		t.Error("RecentSessions should not be nil")
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMaxWidth = 512
	cfg.DefaultPadding = 2
	cfg.DefaultOptions.AllowRotation = true
	cfg.DefaultOptions.Logic = ""

	pc := PackerConfig{MaxWidth: 1024, MaxHeight: 1024}
	cfg.ApplyToConfig(&pc)

	if pc.MaxWidth != 512 {
		t.Errorf("expected MaxWidth=512, got %.0f", pc.MaxWidth)
	}
	if pc.MaxHeight != 2048 {
		t.Errorf("expected MaxHeight=2048, got %.0f", pc.MaxHeight)
	}
	if pc.Padding != 2 {
		t.Errorf("expected Padding=2, got %.0f", pc.Padding)
	}
	if !pc.Options.AllowRotation {
		t.Error("expected rotation to be copied")
	}
	if pc.Options.Logic != LogicMaxArea {
		t.Errorf("empty logic should fall back to %s, got %s", LogicMaxArea, pc.Options.Logic)
	}
}

func TestAddRecentSession(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentSession("a.json", 3)
	cfg.AddRecentSession("b.json", 3)
	cfg.AddRecentSession("c.json", 3)
	cfg.AddRecentSession("a.json", 3)
	cfg.AddRecentSession("d.json", 3)

	want := []string{"d.json", "a.json", "c.json"}
	if len(cfg.RecentSessions) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentSessions)
	}
	for i := range want {
		if cfg.RecentSessions[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], cfg.RecentSessions[i])
		}
	}
}
