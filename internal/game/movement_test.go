package game

import (
	"testing"
)

// runUnitUntilIdle ticks movement only, recording each route point the
// unit lands on exactly. Exact positions only ever come from the arrival
// snap, so float coincidence cannot fake a landing.
func runUnitUntilIdle(t *testing.T, u *Unit, route []Vec3, dt float64, maxTicks int) []Vec3 {
	t.Helper()
	var visited []Vec3
	for i := 0; i < maxTicks; i++ {
		u.updateMovement(dt)
		if len(visited) < len(route) && u.pos == route[len(visited)] {
			visited = append(visited, u.pos)
		}
		if !u.moving {
			return visited
		}
	}
	t.Fatalf("unit never went idle within %d ticks", maxTicks)
	return nil
}

func TestMovement_VisitsWaypointsInOrder(t *testing.T) {
	u := newUnit(0, "ranger", Vec3{X: 1, Z: 1}, DefaultConfig().Unit)
	route := []Vec3{{X: 3, Z: 1}, {X: 3, Z: 3}, {X: 5, Z: 3}}
	u.IssuePath(route)

	if !u.moving {
		t.Fatal("unit should be moving after a non-empty route")
	}
	visited := runUnitUntilIdle(t, u, route, 1.0/60.0, 600)

	if len(visited) != len(route) {
		t.Fatalf("expected %d exact landings, got %d (%v)", len(route), len(visited), visited)
	}
	for i := range route {
		if visited[i] != route[i] {
			t.Fatalf("waypoint %d visited out of order: want %v, got %v", i, route[i], visited[i])
		}
	}
	if u.pos != route[len(route)-1] {
		t.Fatalf("unit should finish exactly on the last waypoint, got %v", u.pos)
	}
	if u.pathAge != 0 {
		t.Fatalf("path age should reset to 0 on completion, got %.3f", u.pathAge)
	}
	if u.Waypoints() != nil {
		t.Fatal("idle unit should report no pending waypoints")
	}
}

func TestMovement_EmptyRouteLeavesIdle(t *testing.T) {
	u := newUnit(0, "ranger", Vec3{X: 1, Z: 1}, DefaultConfig().Unit)
	u.IssuePath(nil)
	if u.moving {
		t.Fatal("empty route must leave the unit idle")
	}
	pos := u.pos
	u.updateMovement(1.0 / 60.0)
	if u.pos != pos {
		t.Fatal("idle unit must not drift")
	}
}

func TestMovement_ReplacementDropsOldRoute(t *testing.T) {
	u := newUnit(0, "ranger", Vec3{X: 0, Z: 0}, DefaultConfig().Unit)
	u.IssuePath([]Vec3{{X: 10, Z: 0}, {X: 20, Z: 0}})
	for i := 0; i < 10; i++ {
		u.updateMovement(1.0 / 60.0)
	}

	u.IssuePath([]Vec3{{X: 0, Z: 5}})
	if u.dest != (Vec3{X: 0, Z: 5}) {
		t.Fatalf("replacement route should retarget immediately, dest=%v", u.dest)
	}
	if len(u.waypoints) != 0 {
		t.Fatalf("old queue should be gone, %d points remain", len(u.waypoints))
	}
	if u.pathAge != 0 {
		t.Fatalf("path age should reset on a new route, got %.3f", u.pathAge)
	}
}

func TestMovement_PathAgeAccumulatesWhileMoving(t *testing.T) {
	u := newUnit(0, "ranger", Vec3{X: 0, Z: 0}, DefaultConfig().Unit)
	u.IssuePath([]Vec3{{X: 40, Z: 0}})

	dt := 0.1
	for i := 0; i < 5; i++ {
		u.updateMovement(dt)
	}
	if diff := u.pathAge - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected path age 0.5 after 5 ticks of 0.1, got %.3f", u.pathAge)
	}

	u.CancelMove()
	if u.pathAge != 0 {
		t.Fatalf("cancel should zero the path age, got %.3f", u.pathAge)
	}
}

func TestMovement_ArrivalSnapIsExact(t *testing.T) {
	u := newUnit(0, "ranger", Vec3{X: 0, Z: 0}, DefaultConfig().Unit)
	target := Vec3{X: 0.15, Z: 0}
	u.IssuePath([]Vec3{target})

	// Already inside the arrival radius: the first tick snaps, no overshoot.
	u.updateMovement(1.0 / 60.0)
	if u.pos != target {
		t.Fatalf("expected exact snap onto %v, got %v", target, u.pos)
	}
	if u.moving {
		t.Fatal("single-point route should be done after the snap")
	}
}
