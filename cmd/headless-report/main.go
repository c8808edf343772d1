package main

import (
	"flag"
	"fmt"
	"math/rand"

	"grid-skirmish/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstFireTick    int
	firstKillTick    int
	firstRemoveTick  int
	shots            int
	hits             int
	expired          int
	kills            int
	removed          int
	moveOrders       int
	enemiesRemaining int
	harvested        float64
	finalTick        int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base layout seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "skirmish", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "skirmish" {
		fmt.Printf("error: unsupported scenario %q (supported: skirmish)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Skirmish Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	var lastWorld *game.World
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, w := runScenarioSkirmish(i+1, seed, ticks)
		all = append(all, stats)
		lastWorld = w
		printRun(stats)
	}
	printAggregate(all)

	fmt.Println()
	fmt.Print(game.BattleReport(lastWorld))
}

// runScenarioSkirmish runs one seeded battle: a three-unit squad crosses
// the grid toward a jittered enemy line, engaging as it closes. The core
// is deterministic; the seed only varies enemy placement.
func runScenarioSkirmish(runIndex int, seed int64, ticks int) (runStats, *game.World) {
	rng := rand.New(rand.NewSource(seed))

	ts := game.NewTestSim(
		game.WithVerboseLog(),
		game.WithUnit("ranger", 3, 10),
		game.WithUnit("lancer", 3, 16),
		game.WithUnit("gunner", 3, 22),
		game.WithResourceNode(24, 24, 100),
	)
	w := ts.World
	extent := float64(w.Config().GridSize) * w.Config().TileSize
	enemies := make([]*game.Enemy, 0, 5)
	for i := 0; i < 5; i++ {
		z := 4 + rng.Float64()*(extent-8)
		enemies = append(enemies, w.AddEnemy(game.Vec3{X: extent - 5, Z: z}))
	}
	for i, u := range w.Units() {
		w.AssignTarget(u, enemies[i%len(enemies)])
	}

	ts.RunTicks(ticks)

	sl := w.SimLog()
	stats := runStats{
		runIndex:         runIndex,
		seed:             seed,
		firstFireTick:    firstTick(sl, "combat", "fire"),
		firstKillTick:    firstTick(sl, "enemy", "killed"),
		firstRemoveTick:  firstTick(sl, "enemy", "removed"),
		shots:            sl.CountCategory("combat", "fire"),
		hits:             sl.CountCategory("projectile", "hit"),
		expired:          sl.CountCategory("projectile", "expired"),
		kills:            sl.CountCategory("enemy", "killed"),
		removed:          sl.CountCategory("enemy", "removed"),
		moveOrders:       sl.CountCategory("path", "move_order"),
		enemiesRemaining: len(w.Enemies()),
		harvested:        w.Harvested(),
		finalTick:        w.Tick(),
	}
	return stats, w
}

func firstTick(sl *game.SimLog, category, key string) int {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return -1
	}
	return entries[0].Tick
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_fire=%d first_kill=%d first_remove=%d\n",
		rs.firstFireTick, rs.firstKillTick, rs.firstRemoveTick)
	fmt.Printf("event_totals: shots=%d hits=%d expired=%d kills=%d removed=%d move_orders=%d\n",
		rs.shots, rs.hits, rs.expired, rs.kills, rs.removed, rs.moveOrders)
	fmt.Printf("outcome: enemies_remaining=%d harvested=%.1f final_tick=%d\n\n",
		rs.enemiesRemaining, rs.harvested, rs.finalTick)
}

func printAggregate(all []runStats) {
	var shots, hits, kills, removed, remaining int
	killTicks := make([]int, 0, len(all))
	for _, rs := range all {
		shots += rs.shots
		hits += rs.hits
		kills += rs.kills
		removed += rs.removed
		remaining += rs.enemiesRemaining
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: shots=%.1f hits=%.1f kills=%.1f removed=%.1f enemies_remaining=%.1f\n",
		avg(shots, len(all)), avg(hits, len(all)), avg(kills, len(all)),
		avg(removed, len(all)), avg(remaining, len(all)))
	if len(killTicks) > 0 {
		sum := 0
		for _, t := range killTicks {
			sum += t
		}
		fmt.Printf("first_kill_avg_tick=%.1f (across %d runs with a kill)\n",
			float64(sum)/float64(len(killTicks)), len(killTicks))
	} else {
		fmt.Println("first_kill_avg_tick=n/a")
	}
	if shots > 0 {
		fmt.Printf("hit_rate=%.1f%%\n", float64(hits)/float64(shots)*100)
	}
}

func avg(sum, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
