package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultKitchenConfig() {
		t.Errorf("embedded default drifted from DefaultKitchenConfig:\n%+v\n%+v", cfg, DefaultKitchenConfig())
	}
}

func TestLoadCustomPathOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitchen.yaml")
	data := []byte("throw:\n  feed_value: 5\n  cooldown: 1s\nsimulation:\n  tick_rate: 60\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Throw.FeedValue != 5 || cfg.Throw.Cooldown != time.Second {
		t.Errorf("throw not overridden: %+v", cfg.Throw)
	}
	if cfg.Simulation.TickRate != 60 {
		t.Errorf("tick rate = %d, expected 60", cfg.Simulation.TickRate)
	}
	def := DefaultKitchenConfig()
	if cfg.Throw.Speed != def.Throw.Speed || cfg.Scoring != def.Scoring {
		t.Error("keys missing from the file should keep their defaults")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("throw:\n  feed_value: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a negative feed value")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultKitchenConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultKitchenConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: %+v", cfg.Difficulty)
	}
	if cfg.Throw.FeedValue >= DefaultKitchenConfig().Throw.FeedValue {
		t.Error("hard preset should weaken throws")
	}
}

func TestDifficultyLevelByWaves(t *testing.T) {
	d := NewDifficultyManager(DefaultKitchenConfig().Difficulty)

	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level at wave 0 = %g, expected 0", got)
	}
	if got := d.Level(3, 0); got != 1 {
		t.Errorf("Level at max_at = %g, expected 1", got)
	}
	if got := d.Level(10, 0); got != 1 {
		t.Errorf("Level past max_at should clamp, got %g", got)
	}

	prev := 0.0
	for w := 0; w <= 3; w++ {
		s := d.SpeedScale(w, 0)
		if s < prev {
			t.Errorf("speed scale decreased at wave %d", w)
		}
		prev = s
	}
	if got := d.SpeedScale(3, 0); got != 1.5 {
		t.Errorf("SpeedScale at max = %g, expected 1.5", got)
	}
	if got := d.DecayScale(3, 0); got != 1.75 {
		t.Errorf("DecayScale at max = %g, expected 1.75", got)
	}
}

func TestDifficultyDisabledKeepsInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DefaultKitchenConfig().Difficulty)
	d.SetEnabled(false)
	d.SetInitialLevel(2)

	if d.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if got := d.Level(3, 1000); got != 1 {
		t.Errorf("disabled level should stay at the clamped initial level, got %g", got)
	}
}
