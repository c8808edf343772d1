package game

import (
	"encoding/json"
	"fmt"
)

// SaveState is the scalar persistence snapshot of a battlefield. In-flight
// routes, target locks and projectiles are deliberately absent: a reload
// brings every unit back idle and disengaged.
type SaveState struct {
	Units   []UnitSnapshot  `json:"units"`
	Enemies []EnemySnapshot `json:"enemies"`
}

// UnitSnapshot carries a unit's scalar fields only.
type UnitSnapshot struct {
	Name         string  `json:"name"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Z            float64 `json:"z"`
	Health       float64 `json:"health"`
	AttackDamage float64 `json:"attackDamage"`
	MoveSpeed    float64 `json:"moveSpeed"`
	AttackRange  float64 `json:"attackRange"`
}

// EnemySnapshot carries an enemy's scalar fields only.
type EnemySnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Health float64 `json:"health"`
}

// Snapshot captures the world's persistable state.
func (w *World) Snapshot() SaveState {
	var s SaveState
	for _, u := range w.units {
		s.Units = append(s.Units, UnitSnapshot{
			Name:         u.name,
			X:            u.pos.X,
			Y:            u.pos.Y,
			Z:            u.pos.Z,
			Health:       u.health,
			AttackDamage: u.attackDamage,
			MoveSpeed:    u.moveSpeed,
			AttackRange:  u.attackRange,
		})
	}
	for _, e := range w.enemies {
		s.Enemies = append(s.Enemies, EnemySnapshot{
			X:      e.pos.X,
			Y:      e.pos.Y,
			Z:      e.pos.Z,
			Health: e.health,
		})
	}
	return s
}

// Restore rebuilds the live collections from a snapshot. Every restored
// unit comes back Idle with an empty waypoint queue, no target and a
// cooldown of zero; projectiles are not restored at all. The attack
// cooldown interval is not a persisted field and comes from the config.
func (w *World) Restore(s SaveState) {
	w.units = w.units[:0]
	w.enemies = w.enemies[:0]
	w.resolver.projectiles = nil
	w.markers = nil
	w.nextUnitID = 0
	w.nextEnemyID = 0

	for _, us := range s.Units {
		u := newUnit(w.nextUnitID, us.Name, Vec3{us.X, us.Y, us.Z}, w.cfg.Unit)
		u.health = us.Health
		u.attackDamage = us.AttackDamage
		u.moveSpeed = us.MoveSpeed
		u.attackRange = us.AttackRange
		u.cooldownLeft = 0
		w.nextUnitID++
		w.units = append(w.units, u)
	}
	for _, es := range s.Enemies {
		e := newEnemy(w.nextEnemyID, Vec3{es.X, es.Y, es.Z}, es.Health, w.cfg.Enemy.FadeDuration)
		w.nextEnemyID++
		w.enemies = append(w.enemies, e)
	}
	w.simLog.Add(w.tick, "--", "config", "restored",
		fmt.Sprintf("%d units, %d enemies", len(s.Units), len(s.Enemies)), 0)
}

// Encode serialises the snapshot as JSON.
func (s SaveState) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// DecodeSaveState parses a JSON snapshot.
func DecodeSaveState(data []byte) (SaveState, error) {
	var s SaveState
	if err := json.Unmarshal(data, &s); err != nil {
		return SaveState{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	return s, nil
}
