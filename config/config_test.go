package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Learning.Alpha != 0.1 || cfg.Learning.Gamma != 0.9 || cfg.Learning.Epsilon != 0.1 {
		t.Errorf("unexpected learning defaults: %+v", cfg.Learning)
	}
	if cfg.Behavior.TransitionLockTicks != 30 {
		t.Errorf("expected lock 30, got %d", cfg.Behavior.TransitionLockTicks)
	}
	if cfg.Behavior.ReproductionCooldownTicks != 300 {
		t.Errorf("expected cooldown 300, got %d", cfg.Behavior.ReproductionCooldownTicks)
	}
	if cfg.Derived.WorldW32 != 1280 || cfg.Derived.WorldH32 != 720 {
		t.Errorf("derived world size wrong: %v x %v", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
}

func TestLoad_OverridesMergeOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	body := "learning:\n  epsilon: 0.25\nworld:\n  width: 640\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Learning.Epsilon != 0.25 {
		t.Errorf("override not applied: epsilon=%v", cfg.Learning.Epsilon)
	}
	if cfg.World.Width != 640 {
		t.Errorf("override not applied: width=%d", cfg.World.Width)
	}

	// Untouched fields keep defaults
	if cfg.Learning.Alpha != 0.1 {
		t.Errorf("default lost in merge: alpha=%v", cfg.Learning.Alpha)
	}
	if cfg.World.Height != 720 {
		t.Errorf("default lost in merge: height=%d", cfg.World.Height)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := []string{
		"learning:\n  alpha: 1.5\n",
		"learning:\n  gamma: -0.1\n",
		"learning:\n  epsilon: 2\n",
		"behavior:\n  energy_floor: 200\n",
		"world:\n  width: 0\n",
		"population:\n  initial: 500\n",
	}

	for _, body := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("expected validation error for %q", body)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/nope.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Learning.Epsilon = 0.42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written config failed: %v", err)
	}
	if loaded.Learning.Epsilon != 0.42 {
		t.Errorf("round trip lost epsilon: %v", loaded.Learning.Epsilon)
	}
}
