package game

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	// borderWidth is the pixel gap between the window edge and the battlefield.
	borderWidth = 24
	// pixelsPerUnit is the screen scale of one world unit.
	pixelsPerUnit = 16.0
	// hudHeight is the pixel strip reserved below the battlefield for text.
	hudHeight = 56

	savePath = "skirmish-save.json"
)

// Game is the windowed front end. It is thin glue: all simulation state
// lives in the World; this layer only polls input, forwards commands and
// draws scalars.
type Game struct {
	world      *World
	configPath string
	watcher    *ConfigWatcher

	width  int
	height int
	offX   int
	offY   int

	dragging   bool
	dragStartX int
	dragStartY int

	prevMouseLeft  bool
	prevMouseRight bool
	prevKeys       map[ebiten.Key]bool

	statusMsg   string
	statusTicks int
}

// New loads the config, builds a demo battlefield and starts the config
// watcher. A missing config file or a failed watcher is not fatal.
func New(configPath string) (*Game, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	w := NewWorld(cfg)
	seedScene(w)

	extentPx := int(float64(cfg.GridSize) * cfg.TileSize * pixelsPerUnit)
	g := &Game{
		world:      w,
		configPath: configPath,
		width:      borderWidth + extentPx + borderWidth,
		height:     borderWidth + extentPx + borderWidth + hudHeight,
		offX:       borderWidth,
		offY:       borderWidth,
		prevKeys:   make(map[ebiten.Key]bool),
	}

	if cw, err := NewConfigWatcher(configPath); err == nil {
		g.watcher = cw
	}
	return g, nil
}

// seedScene places the demo squad, the opposing force and a few deposits.
func seedScene(w *World) {
	names := []string{"ranger", "lancer", "gunner"}
	for i, name := range names {
		w.AddUnit(name, Vec3{X: 3, Z: 3 + float64(i)*3})
	}
	extent := float64(w.cfg.GridSize) * w.cfg.TileSize
	for i := 0; i < 5; i++ {
		w.AddEnemy(Vec3{X: extent - 5, Z: 4 + float64(i)*(extent-8)/5})
	}
	w.AddResourceNode(Vec3{X: extent / 2, Z: extent / 2}, 100)
	w.AddResourceNode(Vec3{X: extent / 2, Z: extent/2 + 6}, 100)
}

// WindowSize returns the pixel dimensions the window should open at.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.pollConfigReload()
	g.pollKeys()
	g.pollMouse()

	g.world.Step(1.0 / 60.0)

	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

func (g *Game) pollConfigReload() {
	if g.watcher == nil {
		return
	}
	select {
	case _, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		cfg, err := LoadConfig(g.configPath)
		if err != nil {
			g.setStatus("config reload failed: " + err.Error())
			return
		}
		g.world.ApplyBalance(cfg)
		g.setStatus("balance reloaded")
	default:
	}
}

func (g *Game) pollKeys() {
	if g.keyPressed(ebiten.KeyB) {
		if err := clipboard.WriteAll(BattleReport(g.world)); err != nil {
			g.setStatus("clipboard: " + err.Error())
		} else {
			g.setStatus("battle report copied")
		}
	}
	if g.keyPressed(ebiten.KeyF5) {
		if err := g.saveGame(); err != nil {
			g.setStatus("save failed: " + err.Error())
		} else {
			g.setStatus("saved")
		}
	}
	if g.keyPressed(ebiten.KeyF9) {
		if err := g.loadGame(); err != nil {
			g.setStatus("load failed: " + err.Error())
		} else {
			g.setStatus("loaded, units reset to idle")
		}
	}
}

// keyPressed is an edge-triggered key check.
func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

func (g *Game) saveGame() error {
	data, err := g.world.Snapshot().Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(savePath, data, 0o644)
}

func (g *Game) loadGame() error {
	data, err := os.ReadFile(savePath)
	if err != nil {
		return err
	}
	state, err := DecodeSaveState(data)
	if err != nil {
		return err
	}
	g.world.Restore(state)
	return nil
}

func (g *Game) pollMouse() {
	mx, my := ebiten.CursorPosition()
	wpos := g.screenToWorld(mx, my)

	// Hover: nearest unit within half a tile.
	var hovered *Unit
	best := g.world.cfg.TileSize / 2
	for _, u := range g.world.units {
		u.SetHovered(false)
		if d := PlanarDist(u.pos, wpos); d < best {
			best = d
			hovered = u
		}
	}
	if hovered != nil {
		hovered.SetHovered(true)
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	if left && !g.prevMouseLeft {
		g.dragging = true
		g.dragStartX, g.dragStartY = mx, my
	}
	if !left && g.prevMouseLeft && g.dragging {
		g.dragging = false
		g.finishSelection(g.dragStartX, g.dragStartY, mx, my)
	}

	if right && !g.prevMouseRight {
		g.issueOrder(wpos)
	}

	g.prevMouseLeft = left
	g.prevMouseRight = right
}

// finishSelection applies a click or marquee selection.
func (g *Game) finishSelection(x0, y0, x1, y1 int) {
	clickOnly := abs(x1-x0) < 4 && abs(y1-y0) < 4
	a := g.screenToWorld(min(x0, x1), min(y0, y1))
	b := g.screenToWorld(max(x0, x1), max(y0, y1))

	for _, u := range g.world.units {
		if clickOnly {
			u.SetSelected(u.hovered)
			continue
		}
		in := u.pos.X >= a.X && u.pos.X <= b.X && u.pos.Z >= a.Z && u.pos.Z <= b.Z
		u.SetSelected(in)
	}
}

// issueOrder sends a right-click command: attack if the click lands on an
// enemy, otherwise a fanned-out move order.
func (g *Game) issueOrder(wpos Vec3) {
	selected := g.world.SelectedUnits()
	if len(selected) == 0 {
		return
	}

	for _, e := range g.world.enemies {
		if e.Alive() && PlanarDist(e.pos, wpos) < g.world.cfg.TileSize/2 {
			for _, u := range selected {
				g.world.AssignTarget(u, e)
			}
			g.setStatus(fmt.Sprintf("%d unit(s) attacking", len(selected)))
			return
		}
	}

	g.world.CommandMove(selected, wpos)
	g.setStatus(fmt.Sprintf("%d unit(s) moving", len(selected)))
}

func (g *Game) setStatus(msg string) {
	g.statusMsg = msg
	g.statusTicks = 180
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 26, G: 30, B: 24, A: 255})
	g.drawGrid(screen)
	g.drawResources(screen)
	g.drawEnemies(screen)
	g.drawUnits(screen)
	g.drawProjectiles(screen)
	g.drawMarkers(screen)
	g.drawHUD(screen)

	if g.dragging {
		mx, my := ebiten.CursorPosition()
		x := float32(min(g.dragStartX, mx))
		y := float32(min(g.dragStartY, my))
		w := float32(abs(mx - g.dragStartX))
		h := float32(abs(my - g.dragStartY))
		vector.StrokeRect(screen, x, y, w, h, 1,
			color.RGBA{R: 120, G: 220, B: 120, A: 200}, false)
	}
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	n := g.world.cfg.GridSize
	step := float32(g.world.cfg.TileSize * pixelsPerUnit)
	ox, oy := float32(g.offX), float32(g.offY)
	extent := float32(n) * step
	line := color.RGBA{R: 44, G: 50, B: 40, A: 255}
	for i := 0; i <= n; i++ {
		p := float32(i) * step
		vector.StrokeLine(screen, ox+p, oy, ox+p, oy+extent, 1, line, false)
		vector.StrokeLine(screen, ox, oy+p, ox+extent, oy+p, 1, line, false)
	}
}

func (g *Game) drawResources(screen *ebiten.Image) {
	for _, r := range g.world.resources {
		sx, sy := g.worldToScreen(r.pos)
		size := float32(8)
		vector.FillRect(screen, sx-size/2, sy-size/2, size, size,
			color.RGBA{R: 80, G: 190, B: 90, A: 255}, false)
	}
}

func (g *Game) drawEnemies(screen *ebiten.Image) {
	for _, e := range g.world.enemies {
		alpha := e.FadeAlpha()
		c := color.RGBA{
			R: uint8(220 * alpha),
			G: uint8(40 * alpha),
			B: uint8(40 * alpha),
			A: uint8(255 * alpha),
		}
		sx, sy := g.worldToScreen(e.pos)
		vector.FillCircle(screen, sx, sy, 7, c, true)
	}
}

func (g *Game) drawUnits(screen *ebiten.Image) {
	for _, u := range g.world.units {
		sx, sy := g.worldToScreen(u.pos)

		// Waypoint trail fades with path age.
		if wps := u.Waypoints(); len(wps) > 0 {
			fade := 1.0 - math.Min(u.pathAge/3.0, 0.8)
			tc := color.RGBA{R: 90, G: 140, B: 230, A: uint8(160 * fade)}
			px, py := sx, sy
			for _, wp := range wps {
				nx, ny := g.worldToScreen(wp)
				vector.StrokeLine(screen, px, py, nx, ny, 1, tc, false)
				px, py = nx, ny
			}
		}

		if u.selected {
			vector.StrokeCircle(screen, sx, sy, 10, 1.5,
				color.RGBA{R: 255, G: 255, B: 255, A: 220}, true)
			vector.StrokeCircle(screen, sx, sy, float32(u.attackRange*pixelsPerUnit), 1,
				color.RGBA{R: 200, G: 200, B: 120, A: 70}, true)
		} else if u.hovered {
			vector.StrokeCircle(screen, sx, sy, 10, 1,
				color.RGBA{R: 180, G: 180, B: 180, A: 140}, true)
		}

		vector.FillCircle(screen, sx, sy, 6,
			color.RGBA{R: 60, G: 120, B: 230, A: 255}, true)
	}
}

func (g *Game) drawProjectiles(screen *ebiten.Image) {
	for _, p := range g.world.Projectiles() {
		sx, sy := g.worldToScreen(p.pos)
		vector.FillCircle(screen, sx, sy, 2.5,
			color.RGBA{R: 255, G: 230, B: 120, A: 255}, false)
	}
}

func (g *Game) drawMarkers(screen *ebiten.Image) {
	for _, m := range g.world.markers {
		sx, sy := g.worldToScreen(m.pos)
		// Height lifts the marker on screen as it rises.
		sy -= float32(m.pos.Y * pixelsPerUnit)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", m.value), int(sx)-6, int(sy)-8)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	title := "GRID SKIRMISH"
	text.Draw(screen, title, basicfont.Face7x13, g.offX, 16, color.RGBA{R: 220, G: 220, B: 200, A: 255})

	y := g.height - hudHeight + 8
	ebitenutil.DebugPrintAt(screen,
		"drag: select   right-click: move / attack   B: report   F5/F9: save/load",
		g.offX, y)

	alive := aliveEnemies(g.world)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("tick=%d  enemies=%d  harvested=%.0f", g.world.tick, alive, g.world.harvested),
		g.offX, y+16)

	if g.statusTicks > 0 {
		ebitenutil.DebugPrintAt(screen, g.statusMsg, g.offX, y+32)
	}
}

func (g *Game) worldToScreen(p Vec3) (float32, float32) {
	return float32(g.offX) + float32(p.X*pixelsPerUnit),
		float32(g.offY) + float32(p.Z*pixelsPerUnit)
}

func (g *Game) screenToWorld(x, y int) Vec3 {
	return g.world.clampToBounds(Vec3{
		X: (float64(x) - float64(g.offX)) / pixelsPerUnit,
		Z: (float64(y) - float64(g.offY)) / pixelsPerUnit,
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
