package game

import (
	"fmt"
	"math"
)

// fanOutRadius is the world-unit radius of the per-unit angular offsets
// applied to shared move destinations.
const fanOutRadius = 3.0

// World owns the full battlefield state and drives one synchronous
// simulation pass per Step call. Single-threaded by design: nothing in the
// core suspends, queues or locks.
type World struct {
	cfg Config

	units     []*Unit
	enemies   []*Enemy
	resources []*ResourceNode
	markers   []*DamageMarker
	resolver  *ProjectileResolver

	// spawner is the projectile collaborator used by unit targeting. It
	// defaults to the world's own resolver; tests swap in recorders.
	spawner ProjectileSpawner

	simLog *SimLog
	tick   int

	nextUnitID  int
	nextEnemyID int
	harvested   float64
}

// NewWorld creates an empty battlefield with the given configuration.
// Grid geometry is fixed for the world's lifetime.
func NewWorld(cfg Config) *World {
	w := &World{
		cfg:      cfg,
		resolver: &ProjectileResolver{},
		simLog:   NewSimLog(false),
	}
	w.spawner = w
	return w
}

// SetSpawner replaces the projectile collaborator. Passing nil restores
// the world's own resolver.
func (w *World) SetSpawner(s ProjectileSpawner) {
	if s == nil {
		s = w
	}
	w.spawner = s
}

// SpawnProjectile implements ProjectileSpawner against the world's own
// resolver, resolving the weak target reference at spawn time.
func (w *World) SpawnProjectile(origin Vec3, targetID int, damage float64) {
	target := w.enemyByID(targetID)
	w.resolver.Spawn(origin, target, damage, w.cfg.Projectile.Speed, w.cfg.Projectile.Lifetime)
}

// AddUnit creates a unit with the configured stat block.
func (w *World) AddUnit(name string, pos Vec3) *Unit {
	u := newUnit(w.nextUnitID, name, w.clampToBounds(pos), w.cfg.Unit)
	w.nextUnitID++
	w.units = append(w.units, u)
	return u
}

// AddEnemy creates an enemy with the configured stat block.
func (w *World) AddEnemy(pos Vec3) *Enemy {
	e := newEnemy(w.nextEnemyID, w.clampToBounds(pos), w.cfg.Enemy.Health, w.cfg.Enemy.FadeDuration)
	w.nextEnemyID++
	w.enemies = append(w.enemies, e)
	return e
}

// AddResourceNode places a gatherable deposit.
func (w *World) AddResourceNode(pos Vec3, amount float64) *ResourceNode {
	r := &ResourceNode{pos: w.clampToBounds(pos), amount: amount}
	w.resources = append(w.resources, r)
	return r
}

// Step advances the simulation by one tick of dt seconds. The phase order
// is load-bearing: targeting may cancel or issue movement before movement
// runs, enemy fades age before their cleanup, and projectiles resolve
// against the post-cleanup enemy table.
func (w *World) Step(dt float64) {
	w.tick++

	// 1. Units: targeting first (may stop or re-path the unit), then
	// movement, in collection order.
	for _, u := range w.units {
		u.updateTargeting(dt, w)
		u.updateMovement(dt)
	}

	// Harvest pass: any unit standing on a node drains it.
	for _, u := range w.units {
		for _, r := range w.resources {
			if !r.collected && PlanarDist(u.pos, r.pos) <= harvestRadius {
				got := r.drain(harvestRate * dt)
				w.harvested += got
				if r.collected {
					w.simLog.Add(w.tick, u.name, "resource", "drained", "node empty", 0)
				}
			}
		}
	}

	// 2. Enemy death fades.
	for _, e := range w.enemies {
		e.updateFade(dt)
	}

	// 3. Cleanup, reverse index order so removal is safe in one pass.
	for i := len(w.enemies) - 1; i >= 0; i-- {
		if w.enemies[i].removalDue() {
			w.simLog.Add(w.tick, "--", "enemy", "removed", "fade complete", 0)
			w.enemies = append(w.enemies[:i], w.enemies[i+1:]...)
		}
	}
	for i := len(w.resources) - 1; i >= 0; i-- {
		if w.resources[i].collected {
			w.resources = append(w.resources[:i], w.resources[i+1:]...)
		}
	}

	// 4. Projectiles: homing, impact, then their own reverse-order sweep.
	w.resolver.Update(dt, w)

	// 5. Floating damage markers.
	for i := len(w.markers) - 1; i >= 0; i-- {
		m := w.markers[i]
		m.update(dt)
		if m.expired() {
			w.markers = append(w.markers[:i], w.markers[i+1:]...)
		}
	}
}

// CommandMove orders the given units to a shared destination. With more
// than one unit the individual goals fan out on a fixed-radius circle
// around the destination so the squad does not all plan to the same cell.
func (w *World) CommandMove(units []*Unit, dest Vec3) {
	n := len(units)
	for i, u := range units {
		goal := dest
		if n > 1 {
			angle := 2 * math.Pi * float64(i) / float64(n)
			goal.X += math.Cos(angle) * fanOutRadius
			goal.Z += math.Sin(angle) * fanOutRadius
		}
		goal = w.clampToBounds(goal)
		start := ToGrid(w.clampToBounds(u.pos), w.cfg.TileSize)
		u.IssuePath(FindPath(start, ToGrid(goal, w.cfg.TileSize), w.cfg.GridSize, w.cfg.TileSize))
		w.simLog.Add(w.tick, u.name, "path", "move_order",
			fmt.Sprintf("to (%.1f,%.1f)", goal.X, goal.Z), 0)
	}
}

// AssignTarget locks a unit onto an enemy. The reference is weak: the
// engagement logic drops it on its own once the enemy dies.
func (w *World) AssignTarget(u *Unit, e *Enemy) {
	if e == nil {
		u.targetID = noTarget
		return
	}
	u.targetID = e.id
	w.simLog.Add(w.tick, u.name, "combat", "target_assigned", "", float64(e.id))
}

// enemyByID resolves a weak target reference against the live enemy table.
// Dying enemies still resolve (they occupy the scene for fading); removed
// ones return nil.
func (w *World) enemyByID(id int) *Enemy {
	if id == noTarget {
		return nil
	}
	for _, e := range w.enemies {
		if e.id == id {
			return e
		}
	}
	return nil
}

// clampToBounds pins a world position inside the scene so grid coordinates
// derived from it are always in range; the pathfinder itself never
// validates.
func (w *World) clampToBounds(p Vec3) Vec3 {
	extent := float64(w.cfg.GridSize) * w.cfg.TileSize
	p.X = math.Min(math.Max(p.X, 0), extent-1e-6)
	p.Z = math.Min(math.Max(p.Z, 0), extent-1e-6)
	return p
}

func (w *World) spawnDamageMarker(pos Vec3, value float64) {
	w.markers = append(w.markers, &DamageMarker{pos: pos, value: value, lifetime: markerLifetime})
}

// ApplyBalance overwrites the hot-reloadable stat blocks on the config and
// on every live unit. Grid geometry is ignored: it is fixed at creation.
func (w *World) ApplyBalance(cfg Config) {
	w.cfg.Unit = cfg.Unit
	w.cfg.Enemy = cfg.Enemy
	w.cfg.Projectile = cfg.Projectile
	for _, u := range w.units {
		u.attackDamage = cfg.Unit.AttackDamage
		u.attackRange = cfg.Unit.AttackRange
		u.attackCooldown = cfg.Unit.AttackCooldown
		u.moveSpeed = cfg.Unit.MoveSpeed
	}
	w.simLog.Add(w.tick, "--", "config", "balance_applied", "", 0)
}

// --- Read surface ---

func (w *World) Config() Config             { return w.cfg }
func (w *World) Units() []*Unit             { return w.units }
func (w *World) Enemies() []*Enemy          { return w.enemies }
func (w *World) Resources() []*ResourceNode { return w.resources }
func (w *World) Markers() []*DamageMarker   { return w.markers }
func (w *World) Projectiles() []*Projectile { return w.resolver.Projectiles() }
func (w *World) Tick() int                  { return w.tick }
func (w *World) Harvested() float64         { return w.harvested }
func (w *World) SimLog() *SimLog            { return w.simLog }

// SelectedUnits returns the units currently flagged selected by the input
// layer, in collection order.
func (w *World) SelectedUnits() []*Unit {
	var out []*Unit
	for _, u := range w.units {
		if u.selected {
			out = append(out, u)
		}
	}
	return out
}
