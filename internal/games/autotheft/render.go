package autotheft

import (
	"fmt"
	"math"

	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/geom"
	"github.com/vovakirdan/autotheft/internal/tilemap"
	"github.com/vovakirdan/autotheft/internal/vehicle"
)

// cellAspect is the number of screen columns per world unit. Terminal cells
// are about twice as tall as they are wide.
const cellAspect = 2.0

// Visual characters for rendering
const (
	PlayerChar   = '@'
	BuildingChar = '█'
	GrassChar    = '.'
	VehicleChar  = '▓'
	TargetChar   = '▒'
	TracerChar   = '·'
	ImpactChar   = '*'
	DeadEndChar  = '╷'
)

// roadGlyphs is indexed by tilemap variant index.
var roadGlyphs = [...]rune{
	tilemap.VariantVertical:   '│',
	tilemap.VariantHorizontal: '─',
	tilemap.VariantCornerSE:   '┌',
	tilemap.VariantCornerSW:   '┐',
	tilemap.VariantCornerNE:   '└',
	tilemap.VariantCornerNW:   '┘',
	tilemap.VariantCrossing:   '┼',
	tilemap.VariantTeeW:       '┤',
	tilemap.VariantTeeE:       '├',
	tilemap.VariantTeeS:       '┬',
	tilemap.VariantTeeN:       '┴',
	tilemap.VariantEmpty:      ' ',
}

// headingArrows maps a heading octant, clockwise from east, to an arrow.
var headingArrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// camera maps world positions to screen cells. The camera position is drawn
// at the screen center.
type camera struct {
	pos    geom.Vec2
	cx, cy int
}

func newCamera(pos geom.Vec2, dst *core.Screen) camera {
	return camera{pos: pos, cx: dst.Width() / 2, cy: dst.Height() / 2}
}

// toScreen returns the cell containing p.
func (c camera) toScreen(p geom.Vec2) (int, int) {
	x := c.cx + int(math.Floor((p.X-c.pos.X)*cellAspect))
	y := c.cy + int(math.Floor(p.Y-c.pos.Y))
	return x, y
}

// toWorld returns the world position at the center of a cell.
func (c camera) toWorld(x, y int) geom.Vec2 {
	return geom.V(
		c.pos.X+(float64(x-c.cx)+0.5)/cellAspect,
		c.pos.Y+float64(y-c.cy)+0.5,
	)
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	cam := newCamera(g.player.Position(), dst)

	g.renderTiles(dst, cam)
	g.renderTargets(dst, cam)
	g.renderVehicles(dst, cam)
	g.renderTracer(dst, cam)
	g.renderPlayer(dst, cam)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderTiles draws the tiles around the camera in spiral order.
func (g *Game) renderTiles(dst *core.Screen, cam camera) {
	center := g.tiles.TileIndex(cam.pos)
	for _, cell := range g.tiles.VisibleCells(center, g.cfg.Map.DrawRadius) {
		tile, ok := g.tiles.At(cell)
		if !ok {
			continue
		}
		r := g.tiles.TileRect(cell)
		x0, y0 := cam.toScreen(geom.V(r.X, r.Y))
		x1, y1 := cam.toScreen(geom.V(r.X+r.W, r.Y+r.H))
		w, h := x1-x0, y1-y0

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				lx, ly := x-x0, y-y0
				switch tile.Kind {
				case tilemap.KindBuilding:
					dst.SetColored(x, y, BuildingChar, core.ColorBuilding)
				case tilemap.KindRoad:
					if ch := roadGlyph(tile.Road, lx, ly, w, h); ch != ' ' {
						dst.SetColored(x, y, ch, core.ColorRoad)
					}
				default:
					if (lx+2*ly)%5 == 0 {
						dst.SetColored(x, y, GrassChar, core.ColorGrass)
					}
				}
			}
		}
	}
}

// roadGlyph returns the marking at (lx, ly) of a w x h road tile. Lines run
// from the tile center toward each connected neighbour.
func roadGlyph(v tilemap.Variant, lx, ly, w, h int) rune {
	mx, my := w/2, h/2
	switch {
	case lx == mx && ly == my:
		idx := v.Index()
		if idx < 0 {
			return DeadEndChar
		}
		return roadGlyphs[idx]
	case lx == mx && ((ly < my && v.North) || (ly > my && v.South)):
		return '│'
	case ly == my && ((lx < mx && v.West) || (lx > mx && v.East)):
		return '─'
	default:
		return ' '
	}
}

// renderTargets draws live targets with their remaining hit points.
func (g *Game) renderTargets(dst *core.Screen, cam camera) {
	for _, t := range g.world.Targets() {
		if !t.Alive() {
			continue
		}
		x0, y0 := cam.toScreen(geom.V(t.Box.X, t.Box.Y))
		x1, y1 := cam.toScreen(geom.V(t.Box.X+t.Box.W, t.Box.Y+t.Box.H))
		dst.DrawRect(core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0)), TargetChar, core.ColorTarget)

		if t.HitPoints > 1 && t.HitPoints < 10 {
			cx, cy := cam.toScreen(t.Box.Center())
			dst.SetColored(cx, cy, rune('0'+t.HitPoints), core.ColorTarget)
		}
	}
}

// renderVehicles fills each vehicle body and marks its nose with a heading arrow.
func (g *Game) renderVehicles(dst *core.Screen, cam camera) {
	for _, v := range g.world.Vehicles() {
		color := core.ColorVehicle
		if v.Entered() {
			color = core.ColorOccupied
		}

		minX, minY := math.MaxInt, math.MaxInt
		maxX, maxY := math.MinInt, math.MinInt
		for _, seg := range v.Shape() {
			x, y := cam.toScreen(seg.Start)
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if insideBody(v, cam.toWorld(x, y)) {
					dst.SetColored(x, y, VehicleChar, color)
				}
			}
		}

		o := v.Orientation()
		nx, ny := cam.toScreen(v.Position().Add(o.Scale(v.Params().Length/2 - 0.5)))
		dst.SetColored(nx, ny, headingArrow(o), color)
	}
}

// insideBody reports whether world point p lies on the vehicle's footprint.
func insideBody(v *vehicle.Vehicle, p geom.Vec2) bool {
	d := p.Sub(v.Position())
	o := v.Orientation()
	along := d.Dot(o)
	across := d.Dot(o.Perp())
	params := v.Params()
	return math.Abs(along) <= params.Length/2 && math.Abs(across) <= params.Width/2
}

// headingArrow returns the arrow closest to the direction o.
func headingArrow(o geom.Vec2) rune {
	octant := int(math.Round(math.Atan2(o.Y, o.X)/(math.Pi/4))) + 8
	return headingArrows[octant%8]
}

// renderTracer draws the last shot while it is fresh.
func (g *Game) renderTracer(dst *core.Screen, cam camera) {
	if g.tracer <= 0 {
		return
	}
	shot := g.lastShot
	length := shot.End.Distance(shot.Origin)
	for d := 1.0; d < length; d += 0.5 {
		x, y := cam.toScreen(shot.Origin.Add(shot.Direction.Scale(d)))
		dst.SetColored(x, y, TracerChar, core.ColorTracer)
	}
	if shot.Struck {
		x, y := cam.toScreen(shot.End)
		dst.SetColored(x, y, ImpactChar, core.ColorTracer)
	}
}

// renderPlayer draws the player when on foot.
func (g *Game) renderPlayer(dst *core.Screen, cam camera) {
	if _, driving := g.player.Vehicle(); driving {
		return
	}
	x, y := cam.toScreen(g.player.Position())
	dst.SetColored(x, y, PlayerChar, core.ColorPlayer)
}

// renderHUD draws score and timer on row 0 and the driving readout on row 1.
func (g *Game) renderHUD(dst *core.Screen) {
	w := dst.Width()
	for x := 0; x < w; x++ {
		dst.SetColored(x, 0, ' ', core.ColorHUD)
		dst.SetColored(x, 1, ' ', core.ColorHUD)
	}

	// Score on left
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.score), core.ColorHUD)

	// Wave in center
	wave := fmt.Sprintf("Wave %d  Targets %d", g.wave, g.world.TargetsAlive())
	dst.DrawTextColored((w-len(wave))/2, 0, wave, core.ColorHUD)

	// Timer on right
	timer := "Free roam"
	if rem := g.Remaining(); rem >= 0 {
		secs := int(math.Ceil(rem))
		timer = fmt.Sprintf("Time %d:%02d", secs/60, secs%60)
	}
	timerColor := core.ColorHUD
	if rem := g.Remaining(); rem >= 0 && rem < 10 {
		timerColor = core.ColorAlert
	}
	dst.DrawTextColored(w-len(timer)-1, 0, timer, timerColor)

	pos := g.player.Position()
	cell := g.tiles.TileIndex(pos)
	where := fmt.Sprintf("(%.0f, %.0f) tile %d,%d", pos.X, pos.Y, cell.X, cell.Y)
	dst.DrawTextColored(w-len(where)-1, 1, where, core.ColorDim)

	if v := g.drivenVehicle(); v != nil {
		gb := v.Gearbox()
		dir := "D"
		if v.Reversed() {
			dir = "R"
		}
		readout := fmt.Sprintf("%3.0f km/h  %+6.1f m/s²  %s%d/%d  %s",
			v.VelocityKmh(), v.Acceleration(), dir, gb.CurrentGear()+1, gb.Len(), v.State())
		dst.DrawTextColored(1, 1, readout, core.ColorHUD)
		return
	}

	onFoot := "On foot"
	if _, ok := g.world.NearestVehicle(pos, g.player.EnterRadius()); ok {
		onFoot = "On foot  [F] enter vehicle"
	}
	dst.DrawTextColored(1, 1, onFoot, core.ColorHUD)
}

// renderOverlay draws status messages and the pause and round-over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		return

	case StateGameOver:
		summary := g.RunSummary()
		subtitle := fmt.Sprintf("Score: %d  |  Hits %d/%d  |  Destroyed %d",
			g.score, summary.Hits, summary.Shots, summary.Destroyed)
		g.drawCenteredBox(dst, "ROUND OVER", subtitle)
		dst.DrawTextCentered(dst.Height()-1, "Press R to restart, Q to quit")
		return
	}

	if g.message != "" {
		x := (dst.Width() - len([]rune(g.message))) / 2
		dst.DrawTextColored(x, dst.Height()-1, g.message, core.ColorAlert)
		return
	}
	help := "WASD move  F car  SPACE fire  Z/X gear  P pause"
	x := (dst.Width() - len(help)) / 2
	dst.DrawTextColored(x, dst.Height()-1, help, core.ColorDim)
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorAlert)

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorAlert)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
