package game

import (
	"testing"
)

func TestEnemy_HealthFloorsAtZero(t *testing.T) {
	e := newEnemy(0, Vec3{}, 40, 1.5)
	e.TakeDamage(1000)
	if e.Health() != 0 {
		t.Fatalf("health must floor at 0, got %.1f", e.Health())
	}
	if e.Alive() {
		t.Fatal("zero health is dead")
	}
}

func TestEnemy_FadeArmedOnceOnDeath(t *testing.T) {
	e := newEnemy(0, Vec3{}, 40, 1.5)
	if e.fade != 0 {
		t.Fatal("fade must stay unarmed while alive")
	}

	e.TakeDamage(40)
	if e.fade != 1.5 {
		t.Fatalf("death should arm the fade to the full duration, got %.2f", e.fade)
	}
	if !e.Dying() {
		t.Fatal("freshly dead enemy should report dying")
	}

	// Hits on the corpse must not rewind the fade.
	e.updateFade(0.5)
	e.TakeDamage(10)
	if e.fade != 1.0 {
		t.Fatalf("post-mortem damage re-armed the fade: %.2f", e.fade)
	}
}

func TestEnemy_RemovalWaitsForFade(t *testing.T) {
	e := newEnemy(0, Vec3{}, 40, 1.5)
	e.TakeDamage(40)

	e.updateFade(1.0)
	if e.removalDue() {
		t.Fatal("removal must wait for the fade to run out")
	}
	e.updateFade(0.5)
	if !e.removalDue() {
		t.Fatal("fade exhausted, removal is due")
	}
}

func TestEnemy_FadeAlphaWindow(t *testing.T) {
	e := newEnemy(0, Vec3{}, 40, 2.0)
	if e.FadeAlpha() != 1 {
		t.Fatal("living enemy renders fully opaque")
	}
	e.TakeDamage(40)
	e.updateFade(1.0)
	if got := e.FadeAlpha(); got != 0.5 {
		t.Fatalf("halfway through the fade alpha should be 0.5, got %.2f", got)
	}
	e.updateFade(2.0)
	if e.FadeAlpha() != 0 {
		t.Fatal("finished fade renders invisible")
	}
}

func TestEnemy_DyingIsNotRetargetable(t *testing.T) {
	ts := NewTestSim(
		WithUnit("ranger", 5, 5),
		WithEnemy(8, 5),
	)
	rec := &spawnRecorder{}
	ts.World.SetSpawner(rec)
	u := ts.UnitByName("ranger")
	enemy := ts.World.Enemies()[0]

	enemy.TakeDamage(1000)
	ts.World.AssignTarget(u, enemy)
	ts.RunTicks(1)

	if u.HasTarget() {
		t.Fatal("a dying enemy must be dropped as a target")
	}
	if len(rec.calls) != 0 {
		t.Fatal("no shot may be fired at a dying enemy")
	}
}

func TestEnemy_WorldRemovesAfterFadeCompletes(t *testing.T) {
	ts := NewTestSim(WithEnemy(10, 10))
	w := ts.World
	enemy := w.Enemies()[0]
	enemy.TakeDamage(1000)

	// Fade 1.5s at 60 Hz: the corpse lingers for the whole window.
	ts.RunTicks(60)
	if len(w.Enemies()) != 1 {
		t.Fatal("corpse removed before its fade completed")
	}

	tick := ts.RunUntil(func(w *World) bool {
		return len(w.Enemies()) == 0
	}, 120)
	if tick < 0 {
		t.Fatal("corpse never removed")
	}
	if w.SimLog().CountCategory("enemy", "removed") != 1 {
		t.Fatal("expected one removal event")
	}
}

func TestEnemy_MultipleRemovalsSameTick(t *testing.T) {
	ts := NewTestSim(
		WithEnemy(5, 5),
		WithEnemy(10, 10),
		WithEnemy(15, 15),
	)
	w := ts.World
	for _, e := range w.Enemies() {
		e.TakeDamage(1000)
	}

	tick := ts.RunUntil(func(w *World) bool {
		return len(w.Enemies()) == 0
	}, 200)
	if tick < 0 {
		t.Fatal("enemies never removed")
	}
	// All three died together, so all three leave on the same cleanup pass.
	removed := w.SimLog().Filter("enemy", "removed")
	if len(removed) != 3 {
		t.Fatalf("expected 3 removal events, got %d", len(removed))
	}
	for _, e := range removed[1:] {
		if e.Tick != removed[0].Tick {
			t.Fatalf("removals split across ticks: %d vs %d", removed[0].Tick, e.Tick)
		}
	}
}
