package game

const (
	markerLifetime  = 1.0 // seconds a damage marker stays up
	markerRiseSpeed = 1.5 // world units per second of upward drift
)

// DamageMarker is a floating damage number spawned at a projectile impact.
type DamageMarker struct {
	pos      Vec3
	value    float64
	lifetime float64
}

func (m *DamageMarker) update(dt float64) {
	m.lifetime -= dt
	m.pos.Y += markerRiseSpeed * dt
}

func (m *DamageMarker) expired() bool { return m.lifetime <= 0 }

func (m *DamageMarker) Pos() Vec3      { return m.pos }
func (m *DamageMarker) Value() float64 { return m.value }

// Alpha is the rendering opacity across the marker's lifetime.
func (m *DamageMarker) Alpha() float64 {
	if m.lifetime <= 0 {
		return 0
	}
	return m.lifetime / markerLifetime
}
