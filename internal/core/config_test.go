package core

import "testing"

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	if cfg.ScreenW != 80 || cfg.ScreenH != 24 {
		t.Errorf("default screen should be 80x24, got %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
	if cfg.TickRate != 30 {
		t.Errorf("default tick rate should be 30, got %d", cfg.TickRate)
	}
	if cfg.Seed != 0 {
		t.Errorf("default seed should be 0 (time-based), got %d", cfg.Seed)
	}
}
