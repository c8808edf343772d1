package game

// Enemy is a hostile on the battlefield. It stays in the live collection
// while dying so the fade-out can render, and is only removed once the
// fade completes.
type Enemy struct {
	id           int
	pos          Vec3
	health       float64
	fade         float64 // counts down after death
	fadeDuration float64
}

func newEnemy(id int, pos Vec3, health, fadeDuration float64) *Enemy {
	return &Enemy{id: id, pos: pos, health: health, fadeDuration: fadeDuration}
}

// Alive reports whether the enemy is a valid target. Strictly positive
// health; a dying enemy is not retargetable.
func (e *Enemy) Alive() bool { return e.health > 0 }

// Dying reports a dead enemy still playing its fade-out.
func (e *Enemy) Dying() bool { return !e.Alive() && e.fade > 0 }

// TakeDamage reduces health, flooring at zero. The first crossing to zero
// arms the fade timer; later hits cannot re-arm it.
func (e *Enemy) TakeDamage(amount float64) {
	wasAlive := e.Alive()
	e.health -= amount
	if e.health <= 0 {
		e.health = 0
		if wasAlive {
			e.fade = e.fadeDuration
		}
	}
}

// updateFade runs every tick regardless of state; the timer only matters
// once the enemy is dead.
func (e *Enemy) updateFade(dt float64) { e.fade -= dt }

// removalDue reports whether the next cleanup pass may drop this enemy.
func (e *Enemy) removalDue() bool { return !e.Alive() && e.fade <= 0 }

func (e *Enemy) ID() int         { return e.id }
func (e *Enemy) Pos() Vec3       { return e.pos }
func (e *Enemy) Health() float64 { return e.health }

// FadeAlpha is the rendering opacity: 1 while alive, falling to 0 across
// the fade window.
func (e *Enemy) FadeAlpha() float64 {
	if e.Alive() {
		return 1
	}
	if e.fade <= 0 || e.fadeDuration <= 0 {
		return 0
	}
	return e.fade / e.fadeDuration
}
