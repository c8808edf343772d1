package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected compiled-in defaults, got %+v", cfg)
	}
}

func TestLoadConfig_PartialFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "grid_size: 32\nunit:\n  attack_damage: 20\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GridSize != 32 {
		t.Fatalf("grid_size override lost, got %d", cfg.GridSize)
	}
	if cfg.Unit.AttackDamage != 20 {
		t.Fatalf("attack_damage override lost, got %.0f", cfg.Unit.AttackDamage)
	}
	// Everything the file does not name keeps its default.
	def := DefaultConfig()
	if cfg.TileSize != def.TileSize || cfg.Unit.MoveSpeed != def.Unit.MoveSpeed ||
		cfg.Projectile != def.Projectile || cfg.Enemy != def.Enemy {
		t.Fatalf("unnamed fields drifted from defaults: %+v", cfg)
	}
}

func TestLoadConfig_ClampsNonsenseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "grid_size: 0\ntile_size: -3\nunit:\n  move_speed: -1\n  attack_cooldown: 0\nprojectile:\n  speed: 0\n  lifetime: -2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GridSize < 2 {
		t.Fatalf("grid_size not clamped: %d", cfg.GridSize)
	}
	if cfg.TileSize <= 0 {
		t.Fatalf("tile_size not clamped: %.1f", cfg.TileSize)
	}
	if cfg.Unit.MoveSpeed <= 0 || cfg.Unit.AttackCooldown <= 0 {
		t.Fatalf("unit stats not clamped: %+v", cfg.Unit)
	}
	if cfg.Projectile.Speed <= 0 || cfg.Projectile.Lifetime <= 0 {
		t.Fatalf("projectile stats not clamped: %+v", cfg.Projectile)
	}
}

func TestLoadConfig_MalformedYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("grid_size: [not a number\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed yaml must error")
	}
}
