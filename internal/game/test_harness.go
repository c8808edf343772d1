package game

// TestSim is a headless simulation harness used by tests and by
// cmd/headless-report. It wraps a World with deterministic fixed-step
// ticking and option-based scene construction.
type TestSim struct {
	World *World

	dt float64 // seconds per tick
}

// defaultTickSeconds matches a 60 Hz front-end frame.
const defaultTickSeconds = 1.0 / 60.0

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // config, tick rate, logging; applied first
	simOptEntity                      // units, enemies, nodes; applied after the world exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig replaces the default configuration wholesale.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World = NewWorld(cfg)
	}}
}

// WithGrid sets the grid dimensions on top of the default config.
func WithGrid(gridSize int, tileSize float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		cfg := ts.World.cfg
		cfg.GridSize = gridSize
		cfg.TileSize = tileSize
		ts.World = NewWorld(cfg)
	}}
}

// WithTickSeconds overrides the per-tick timestep.
func WithTickSeconds(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.dt = dt
	}}
}

// WithVerboseLog turns on per-tick chatter in the SimLog.
func WithVerboseLog() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.simLog = NewSimLog(true)
	}}
}

// WithUnit adds a unit with the configured stat block at a ground position.
func WithUnit(name string, x, z float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.AddUnit(name, Vec3{X: x, Z: z})
	}}
}

// WithEnemy adds an enemy at a ground position.
func WithEnemy(x, z float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.AddEnemy(Vec3{X: x, Z: z})
	}}
}

// WithResourceNode adds a gatherable deposit.
func WithResourceNode(x, z, amount float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.AddResourceNode(Vec3{X: x, Z: z}, amount)
	}}
}

// NewTestSim constructs a TestSim in two ordered passes: infrastructure
// first (config, tick rate, logging), then entities.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		World: NewWorld(DefaultConfig()),
		dt:    defaultTickSeconds,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n fixed-step ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.World.Step(ts.dt)
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if the
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*World) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Step(ts.dt)
		if predicate(ts.World) {
			return ts.World.tick
		}
	}
	return -1
}

// TickSeconds returns the harness timestep.
func (ts *TestSim) TickSeconds() float64 { return ts.dt }

// UnitByName returns the first unit with the given name, or nil.
func (ts *TestSim) UnitByName(name string) *Unit {
	for _, u := range ts.World.units {
		if u.name == name {
			return u
		}
	}
	return nil
}
