package game

import (
	"fmt"
	"strings"
)

// BattleReport renders a text after-action summary mined from the SimLog:
// per-unit shot counts, projectile outcomes, enemy fates and harvest
// totals. The front end copies it to the clipboard; the headless runner
// prints it.
func BattleReport(w *World) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Grid Skirmish battle report ---\n")
	fmt.Fprintf(&b, "tick=%d grid=%dx%d tile=%.1f\n\n",
		w.tick, w.cfg.GridSize, w.cfg.GridSize, w.cfg.TileSize)

	b.WriteString("units:\n")
	for _, u := range w.units {
		shots := 0
		for _, e := range w.simLog.FilterActor(u.name) {
			if e.Category == "combat" && e.Key == "fire" {
				shots++
			}
		}
		engaged := "-"
		if u.HasTarget() {
			engaged = "engaged"
		}
		fmt.Fprintf(&b, "  %-8s hp=%.0f pos=(%.1f,%.1f) shots=%d %s\n",
			u.name, u.health, u.pos.X, u.pos.Z, shots, engaged)
	}

	hits := w.simLog.CountCategory("projectile", "hit")
	expired := w.simLog.CountCategory("projectile", "expired")
	kills := w.simLog.CountCategory("enemy", "killed")
	removed := w.simLog.CountCategory("enemy", "removed")

	fmt.Fprintf(&b, "\nprojectiles: hits=%d expired=%d in_flight=%d\n",
		hits, expired, len(w.resolver.projectiles))
	fmt.Fprintf(&b, "enemies: alive=%d killed=%d removed=%d\n",
		aliveEnemies(w), kills, removed)
	fmt.Fprintf(&b, "resources: harvested=%.1f nodes_left=%d\n",
		w.harvested, len(w.resources))
	return b.String()
}

func aliveEnemies(w *World) int {
	n := 0
	for _, e := range w.enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}
