package game

const (
	// arrivalRadius is the planar snap distance to a waypoint. Inside it
	// the unit lands exactly on the point, which stops floating-point
	// creep from accumulating across a long route.
	arrivalRadius = 0.2

	// muzzleHeight is the vertical offset of the projectile spawn point
	// above the unit's ground position.
	muzzleHeight = 1.2

	// noTarget marks an empty target reference.
	noTarget = -1
)

// Unit is one commandable squad member. Units are created at scene setup
// or restored from a snapshot and live until scene teardown; they do not
// die in this design.
type Unit struct {
	id   int
	name string

	pos    Vec3
	health float64

	attackDamage   float64
	attackRange    float64
	attackCooldown float64 // configured firing interval, seconds
	cooldownLeft   float64 // remaining; runs negative, never clamped

	moveSpeed float64

	// Movement controller state. moving doubles as the Idle/Moving flag
	// and the "has active move order" flag; they are the same thing.
	waypoints []Vec3 // pending route after dest, FIFO
	dest      Vec3
	moving    bool
	pathAge   float64 // seconds since the current route was issued

	targetID int // weak reference into the world's enemy table

	selected bool
	hovered  bool
}

func newUnit(id int, name string, pos Vec3, stats UnitStats) *Unit {
	return &Unit{
		id:             id,
		name:           name,
		pos:            pos,
		health:         stats.Health,
		attackDamage:   stats.AttackDamage,
		attackRange:    stats.AttackRange,
		attackCooldown: stats.AttackCooldown,
		moveSpeed:      stats.MoveSpeed,
		targetID:       noTarget,
	}
}

// IssuePath replaces the unit's current route wholesale and makes the first
// point the immediate destination. An empty route leaves the unit idle.
func (u *Unit) IssuePath(route []Vec3) {
	u.waypoints = append(u.waypoints[:0], route...)
	u.pathAge = 0
	if len(u.waypoints) == 0 {
		u.moving = false
		return
	}
	u.dest = u.waypoints[0]
	u.waypoints = u.waypoints[1:]
	u.moving = true
}

// CancelMove drops the route and destination, forcing Idle.
func (u *Unit) CancelMove() {
	u.waypoints = u.waypoints[:0]
	u.moving = false
	u.pathAge = 0
}

// updateMovement advances the unit along its route by one tick. The
// controller trusts the route it was given; it never re-validates
// feasibility.
func (u *Unit) updateMovement(dt float64) {
	if !u.moving {
		u.pathAge = 0
		return
	}
	u.pathAge += dt

	if PlanarDist(u.pos, u.dest) < arrivalRadius {
		u.pos = u.dest
		if len(u.waypoints) > 0 {
			u.dest = u.waypoints[0]
			u.waypoints = u.waypoints[1:]
		} else {
			u.moving = false
			u.pathAge = 0
		}
		return
	}

	dir := u.dest.Sub(u.pos).Normalized()
	u.pos = u.pos.Add(dir.Scale(u.moveSpeed * dt))
}

// updateTargeting runs one tick of the unit's engagement decision.
func (u *Unit) updateTargeting(dt float64, w *World) {
	// The cooldown clock runs whether or not a target exists, so a unit
	// acquiring one mid-cooldown cannot fire early. Negative is "ready".
	u.cooldownLeft -= dt

	if u.targetID == noTarget {
		return
	}
	target := w.enemyByID(u.targetID)
	if target == nil || !target.Alive() {
		u.targetID = noTarget
		return
	}

	dist := PlanarDist(u.pos, target.pos)
	if dist <= u.attackRange {
		// Close enough: the unit stops walking to fight.
		u.CancelMove()
		if u.cooldownLeft <= 0 {
			origin := u.pos
			origin.Y += muzzleHeight
			w.spawner.SpawnProjectile(origin, target.id, u.attackDamage)
			u.cooldownLeft = u.attackCooldown
			w.simLog.Add(w.tick, u.name, "combat", "fire",
				"at enemy", dist)
		}
		return
	}

	// Out of range: re-aim a fresh path at the target's current cell every
	// tick the unit is idle. A unit already walking keeps its route.
	if !u.moving {
		start := ToGrid(w.clampToBounds(u.pos), w.cfg.TileSize)
		goal := ToGrid(w.clampToBounds(target.pos), w.cfg.TileSize)
		u.IssuePath(FindPath(start, goal, w.cfg.GridSize, w.cfg.TileSize))
		w.simLog.AddVerbose(w.tick, u.name, "path", "chase",
			"repath toward target", dist)
	}
}

// --- Read surface for rendering/UI/persistence collaborators ---

func (u *Unit) ID() int              { return u.id }
func (u *Unit) Name() string         { return u.name }
func (u *Unit) Pos() Vec3            { return u.pos }
func (u *Unit) Health() float64      { return u.health }
func (u *Unit) AttackRange() float64 { return u.attackRange }
func (u *Unit) Moving() bool         { return u.moving }

// PathAge is the time since the current route was issued; the front end
// fades the waypoint trail with it.
func (u *Unit) PathAge() float64 { return u.pathAge }

// Waypoints returns a copy of the pending route, current destination first.
func (u *Unit) Waypoints() []Vec3 {
	if !u.moving {
		return nil
	}
	out := make([]Vec3, 0, len(u.waypoints)+1)
	out = append(out, u.dest)
	out = append(out, u.waypoints...)
	return out
}

func (u *Unit) Selected() bool       { return u.selected }
func (u *Unit) SetSelected(sel bool) { u.selected = sel }
func (u *Unit) Hovered() bool        { return u.hovered }
func (u *Unit) SetHovered(hov bool)  { u.hovered = hov }

// HasTarget reports whether a live target reference is set.
func (u *Unit) HasTarget() bool { return u.targetID != noTarget }
