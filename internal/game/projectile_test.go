package game

import (
	"math"
	"strings"
	"testing"
)

func TestProjectile_HomingHitAppliesDamage(t *testing.T) {
	ts := NewTestSim(WithEnemy(20, 10))
	w := ts.World
	enemy := w.Enemies()[0]
	startHealth := enemy.Health()

	w.SpawnProjectile(Vec3{X: 10, Y: muzzleHeight, Z: 10}, enemy.ID(), 12)

	tick := ts.RunUntil(func(w *World) bool {
		return len(w.Projectiles()) == 0
	}, 600)
	if tick < 0 {
		t.Fatal("projectile never resolved")
	}
	if got := enemy.Health(); got != startHealth-12 {
		t.Fatalf("expected health %.0f after the hit, got %.0f", startHealth-12, got)
	}
	if w.SimLog().CountCategory("projectile", "hit") != 1 {
		t.Fatal("expected exactly one hit event")
	}
	if len(w.Markers()) != 1 {
		t.Fatalf("a hit should float one damage marker, got %d", len(w.Markers()))
	}
	if w.Markers()[0].Value() != 12 {
		t.Fatalf("marker should carry the damage amount, got %.0f", w.Markers()[0].Value())
	}
}

func TestProjectile_HomingTracksMovingTarget(t *testing.T) {
	ts := NewTestSim(WithEnemy(20, 10))
	w := ts.World
	enemy := w.Enemies()[0]

	w.SpawnProjectile(Vec3{X: 4, Y: muzzleHeight, Z: 10}, enemy.ID(), 12)

	// Drag the target sideways every tick; homing must still connect.
	tick := ts.RunUntil(func(w *World) bool {
		if len(w.Projectiles()) == 0 {
			return true
		}
		enemy.pos.Z += 0.05
		return false
	}, 600)
	if tick < 0 {
		t.Fatal("projectile never resolved against a moving target")
	}
	if w.SimLog().CountCategory("projectile", "hit") != 1 {
		t.Fatalf("expected a hit on the moving target; log:\n%s", w.SimLog().Format())
	}
}

func TestProjectile_SpeedInvariantWhileHoming(t *testing.T) {
	ts := NewTestSim(WithEnemy(40, 40))
	w := ts.World
	enemy := w.Enemies()[0]
	speed := w.cfg.Projectile.Speed

	w.SpawnProjectile(Vec3{X: 2, Y: muzzleHeight, Z: 2}, enemy.ID(), 12)

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60.0)
		if len(w.Projectiles()) == 0 {
			break
		}
		p := w.Projectiles()[0]
		if math.Abs(p.vel.Len()-speed) > 1e-9 {
			t.Fatalf("tick %d: homing changed the scalar speed: %.6f != %.6f",
				i, p.vel.Len(), speed)
		}
	}
}

func TestProjectile_FliesStraightAfterTargetDies(t *testing.T) {
	ts := NewTestSim(WithVerboseLog(), WithEnemy(40, 10))
	w := ts.World
	enemy := w.Enemies()[0]

	w.SpawnProjectile(Vec3{X: 2, Y: muzzleHeight, Z: 10}, enemy.ID(), 12)
	enemy.TakeDamage(1000) // dies before the shot lands

	ts.RunTicks(10)
	if len(w.Projectiles()) != 1 {
		t.Fatal("shot should still be in flight")
	}
	velBefore := w.Projectiles()[0].vel

	// No live target: the heading freezes on the last velocity.
	ts.RunTicks(20)
	if len(w.Projectiles()) != 1 {
		t.Fatal("shot should still be in flight")
	}
	if w.Projectiles()[0].vel != velBefore {
		t.Fatalf("heading changed without a live target: %v -> %v",
			velBefore, w.Projectiles()[0].vel)
	}

	// Passing through the corpse position cannot connect.
	tick := ts.RunUntil(func(w *World) bool {
		return len(w.Projectiles()) == 0
	}, 600)
	if tick < 0 {
		t.Fatal("projectile never expired")
	}
	if w.SimLog().CountCategory("projectile", "hit") != 0 {
		t.Fatal("a dead target must not be hit")
	}
	if w.SimLog().CountCategory("projectile", "expired") != 1 {
		t.Fatal("the stranded shot should time out as a miss")
	}
}

func TestProjectile_ExpiryIsSilentMiss(t *testing.T) {
	ts := NewTestSim(WithVerboseLog(), WithEnemy(40, 40))
	w := ts.World
	enemy := w.Enemies()[0]
	startHealth := enemy.Health()

	// No target reference at all: zero velocity, it just sits and times out.
	w.resolver.Spawn(Vec3{X: 5, Y: muzzleHeight, Z: 5}, nil, 12, w.cfg.Projectile.Speed, 0.5)

	ticks := int(0.5/(1.0/60.0)) + 2
	ts.RunTicks(ticks)

	if len(w.Projectiles()) != 0 {
		t.Fatal("expired projectile should be swept out")
	}
	if enemy.Health() != startHealth {
		t.Fatal("expiry must not damage anything")
	}
	if w.SimLog().CountCategory("projectile", "expired") != 1 {
		t.Fatal("expected one expiry event")
	}
}

func TestProjectile_ExpiryCountedOnQuietLog(t *testing.T) {
	// The default SimLog is non-verbose; expiry is an outcome event and
	// must still be recorded so the battle report's miss count is real.
	ts := NewTestSim(WithEnemy(40, 40))
	w := ts.World
	w.resolver.Spawn(Vec3{X: 5, Y: muzzleHeight, Z: 5}, nil, 12, w.cfg.Projectile.Speed, 0.5)

	ts.RunTicks(int(0.5/(1.0/60.0)) + 2)

	if got := w.SimLog().CountCategory("projectile", "expired"); got != 1 {
		t.Fatalf("expected 1 expiry on the quiet log, got %d", got)
	}
	if !strings.Contains(BattleReport(w), "expired=1") {
		t.Fatalf("battle report should carry the expiry count:\n%s", BattleReport(w))
	}
}

func TestProjectile_RemovedTargetResolvesToNil(t *testing.T) {
	ts := NewTestSim(WithEnemy(30, 10))
	w := ts.World
	enemy := w.Enemies()[0]
	id := enemy.ID()

	w.SpawnProjectile(Vec3{X: 2, Y: muzzleHeight, Z: 10}, id, 12)
	enemy.TakeDamage(1000)

	// Run out the fade so the enemy leaves the table entirely while the
	// shot is still flying; the weak reference must resolve to nothing.
	tick := ts.RunUntil(func(w *World) bool {
		return len(w.Enemies()) == 0
	}, 600)
	if tick < 0 {
		t.Fatal("enemy never removed")
	}
	if w.SimLog().CountCategory("projectile", "hit") != 0 {
		t.Fatal("shot must not hit a removed enemy")
	}
}
