package game

// impactRadius is the planar distance at which a homing projectile
// connects with its target.
const impactRadius = 1.2

// ProjectileSpawner receives fire events from unit targeting. The world
// implements it against its own resolver; tests substitute recorders so a
// single shared global hook never exists.
type ProjectileSpawner interface {
	SpawnProjectile(origin Vec3, targetID int, damage float64)
}

// Projectile is one shot in flight.
type Projectile struct {
	pos      Vec3
	vel      Vec3
	lifetime float64 // seconds remaining; expiry is a silent miss
	targetID int     // weak reference; resolved against the enemy table
	damage   float64
	speed    float64 // scalar flight speed, invariant while homing
	done     bool    // resolved this tick (hit or expiry)
}

func (p *Projectile) Pos() Vec3 { return p.pos }

// ProjectileResolver owns every in-flight projectile, homes them toward
// live targets and applies damage on impact.
type ProjectileResolver struct {
	projectiles []*Projectile
}

// Spawn launches a projectile from origin toward the target's current
// position. The initial heading is a plain aim; homing corrects it every
// tick after that.
func (pr *ProjectileResolver) Spawn(origin Vec3, target *Enemy, damage, speed, lifetime float64) {
	p := &Projectile{
		pos:      origin,
		lifetime: lifetime,
		targetID: noTarget,
		damage:   damage,
		speed:    speed,
	}
	if target != nil {
		p.targetID = target.id
		p.vel = target.pos.Sub(origin).Normalized().Scale(speed)
	}
	pr.projectiles = append(pr.projectiles, p)
}

// Update advances every projectile by one tick, then sweeps out resolved
// ones in reverse index order so removal stays safe in a single pass.
func (pr *ProjectileResolver) Update(dt float64, w *World) {
	for _, p := range pr.projectiles {
		p.lifetime -= dt
		if p.lifetime <= 0 {
			// Timed out mid-flight: a miss, no damage. An outcome event
			// like "hit", so it is recorded even on a quiet log.
			p.done = true
			w.simLog.Add(w.tick, "--", "projectile", "expired", "lifetime out", 0)
			continue
		}

		if target := w.enemyByID(p.targetID); target != nil && target.Alive() {
			// Homing: heading follows the live target, speed stays fixed.
			p.vel = target.pos.Sub(p.pos).Normalized().Scale(p.speed)
			if PlanarDist(p.pos, target.pos) < impactRadius {
				target.TakeDamage(p.damage)
				w.spawnDamageMarker(target.pos, p.damage)
				p.done = true
				w.simLog.Add(w.tick, "--", "projectile", "hit", "damage applied", p.damage)
				if !target.Alive() {
					w.simLog.Add(w.tick, "--", "enemy", "killed", "health reached zero", 0)
				}
				continue
			}
		}
		// Target dead or never set: fly on in a straight line on the last
		// velocity. The projectile cannot hit anything any more.
		p.pos = p.pos.Add(p.vel.Scale(dt))
	}

	for i := len(pr.projectiles) - 1; i >= 0; i-- {
		if pr.projectiles[i].done {
			pr.projectiles = append(pr.projectiles[:i], pr.projectiles[i+1:]...)
		}
	}
}

// Projectiles returns the live in-flight collection for rendering.
func (pr *ProjectileResolver) Projectiles() []*Projectile {
	return pr.projectiles
}
