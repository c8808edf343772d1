package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UnitStats is the stat block applied to newly created units.
type UnitStats struct {
	Health         float64 `yaml:"health"`
	AttackDamage   float64 `yaml:"attack_damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds between shots
	MoveSpeed      float64 `yaml:"move_speed"`      // world units per second
}

// EnemyStats is the stat block applied to newly created enemies.
type EnemyStats struct {
	Health       float64 `yaml:"health"`
	FadeDuration float64 `yaml:"fade_duration"` // seconds a corpse lingers
}

// ProjectileStats parameterises every spawned projectile.
type ProjectileStats struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
}

// Config is the scene configuration. Grid geometry is fixed at world
// creation; the stat blocks may be hot-reloaded (ApplyBalance).
type Config struct {
	GridSize   int             `yaml:"grid_size"` // cells per side
	TileSize   float64         `yaml:"tile_size"` // world units per cell edge
	Unit       UnitStats       `yaml:"unit"`
	Enemy      EnemyStats      `yaml:"enemy"`
	Projectile ProjectileStats `yaml:"projectile"`
}

// DefaultConfig returns the compiled-in balance values.
func DefaultConfig() Config {
	return Config{
		GridSize: 24,
		TileSize: 2,
		Unit: UnitStats{
			Health:         100,
			AttackDamage:   12,
			AttackRange:    6,
			AttackCooldown: 0.9,
			MoveSpeed:      4,
		},
		Enemy: EnemyStats{
			Health:       40,
			FadeDuration: 1.5,
		},
		Projectile: ProjectileStats{
			Speed:    18,
			Lifetime: 3,
		},
	}
}

// LoadConfig reads a YAML config, layering it over the defaults so partial
// files only override the fields they name. A missing file is not an
// error; the defaults apply as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.clamp()
	return cfg, nil
}

// clamp pulls nonsense values back to workable minimums rather than
// failing the load.
func (c *Config) clamp() {
	if c.GridSize < 2 {
		c.GridSize = 2
	}
	if c.TileSize <= 0 {
		c.TileSize = 1
	}
	if c.Unit.MoveSpeed <= 0 {
		c.Unit.MoveSpeed = 1
	}
	if c.Unit.AttackCooldown <= 0 {
		c.Unit.AttackCooldown = 0.9
	}
	if c.Unit.AttackDamage < 0 {
		c.Unit.AttackDamage = 0
	}
	if c.Projectile.Speed <= 0 {
		c.Projectile.Speed = 1
	}
	if c.Projectile.Lifetime <= 0 {
		c.Projectile.Lifetime = 1
	}
	if c.Enemy.FadeDuration < 0 {
		c.Enemy.FadeDuration = 0
	}
}
