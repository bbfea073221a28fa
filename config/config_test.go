package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Flight.MaxSpeed != 1000 {
		t.Errorf("flight.max_speed = %v, want 1000", cfg.Flight.MaxSpeed)
	}
	if cfg.Flight.YawSpeed != 1.25 || cfg.Flight.PitchSpeed != 1.5 {
		t.Errorf("turn speeds = (%v, %v), want (1.25, 1.5)", cfg.Flight.YawSpeed, cfg.Flight.PitchSpeed)
	}
	if cfg.Flock.PursuitForce != 0.01 {
		t.Errorf("flock.pursuit_force = %v, want 0.01", cfg.Flock.PursuitForce)
	}
	if cfg.Flock.ForceGain != 2 {
		t.Errorf("flock.force_gain = %v, want 2", cfg.Flock.ForceGain)
	}
	if cfg.Camera.FollowOffset != [3]float32{0, -5, -30} {
		t.Errorf("camera.follow_offset = %v", cfg.Camera.FollowOffset)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("derived dt = %v, want > 0", cfg.Derived.DT32)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("flock:\n  enemy_count: 42\nsimulation:\n  dt: 0.02\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Flock.EnemyCount != 42 {
		t.Errorf("enemy_count = %d, want 42", cfg.Flock.EnemyCount)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Flock.SeparationDistance != 10 {
		t.Errorf("separation_distance = %v, want default 10", cfg.Flock.SeparationDistance)
	}
	if cfg.Derived.DT32 != 0.02 {
		t.Errorf("derived dt = %v, want 0.02", cfg.Derived.DT32)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := MustLoad("")
	cfg.Flock.CohesionForce = 0.125
	cfg.Terrain.Seed = 99

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if loaded.Flock.CohesionForce != 0.125 || loaded.Terrain.Seed != 99 {
		t.Errorf("snapshot lost overrides: cohesion=%v seed=%d", loaded.Flock.CohesionForce, loaded.Terrain.Seed)
	}
}
