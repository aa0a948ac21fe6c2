package autotheft

import (
	"errors"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/autotheft/internal/collide"
	"github.com/vovakirdan/autotheft/internal/config"
	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/geom"
	"github.com/vovakirdan/autotheft/internal/registry"
	"github.com/vovakirdan/autotheft/internal/tilemap"
	"github.com/vovakirdan/autotheft/internal/vehicle"
	"github.com/vovakirdan/autotheft/internal/world"
)

// Game IDs
const (
	GameID     = "autotheft"
	FreeRoamID = "autotheft_free"
)

// GameState constants
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover" // Round timer ran out
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeTimed    GameMode = iota // Score as much as possible before the timer ends
	ModeFreeRoam                 // No timer, no scoreboard
)

const (
	tracerTicks  = 8  // How long a tracer stays on screen
	messageTicks = 90 // How long a status message stays on screen
	minScreenW   = 40
	minScreenH   = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives gameplay events. Discarded unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes gameplay events to l. A nil logger discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the Auto Theft game logic.
type Game struct {
	// Game mode
	mode GameMode

	// Configuration
	override   *config.AutoTheftConfig
	runtime    core.RuntimeConfig
	cfg        config.AutoTheftConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	// World
	tiles  *tilemap.Map
	world  *world.World
	player *world.Player
	weapon *world.Weapon
	roads  []tilemap.Cell
	grass  []tilemap.Cell

	// Game state
	state     string
	score     int
	tickCount int
	elapsed   float64 // Simulated seconds
	wave      int
	destroyed int
	topSpeed  float64 // km/h
	distance  float64 // World units

	// Effects
	lastShot   world.Shot
	tracer     int // Ticks left to draw lastShot
	message    string
	messageTTL int

	screenTooSmall bool
}

// New creates a new Auto Theft game instance (timed mode).
func New() *Game {
	return &Game{mode: ModeTimed}
}

// NewFreeRoam creates a new Auto Theft game instance without a timer.
func NewFreeRoam() *Game {
	return &Game{mode: ModeFreeRoam}
}

// WithConfig makes Reset use cfg instead of loading one from disk.
// The difficulty preset is still applied on top.
func (g *Game) WithConfig(cfg config.AutoTheftConfig) *Game {
	g.override = &cfg
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeFreeRoam {
		return FreeRoamID
	}
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeFreeRoam {
		return "Auto Theft (Free Roam)"
	}
	return "Auto Theft"
}

// Scored reports whether rounds end and go on the scoreboard.
func (g *Game) Scored() bool {
	return g.mode == ModeTimed
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	mc := g.cfg.Map
	g.tiles = tilemap.Generate(tilemap.Options{
		Width:          mc.Width,
		Height:         mc.Height,
		TileSize:       mc.TileSize,
		RoadSpacing:    mc.RoadSpacing,
		BuildingChance: mc.BuildingChance,
		Seed:           runtime.Seed,
	})
	g.roads = g.tiles.RoadCells()
	g.grass = g.tiles.Cells(tilemap.KindGrass)

	g.world = world.New(g.cfg.Collision.ParallelEpsilon)
	for _, b := range g.tiles.Buildings() {
		g.world.AddBuilding(b)
	}

	spawn := g.tiles.TileCenter(g.spawnCell())
	g.player = world.NewPlayer(spawn, g.cfg.Player.Speed, g.cfg.Player.EnterRadius)
	g.weapon = world.NewWeapon(g.cfg.Weapon.Cooldown, g.cfg.Weapon.Damage, g.cfg.Weapon.Range)
	g.parkVehicles(spawn)

	// Initialize game state
	g.state = StatePlaying
	g.score = 0
	g.tickCount = 0
	g.elapsed = 0
	g.wave = 0
	g.destroyed = 0
	g.topSpeed = 0
	g.distance = 0
	g.lastShot = world.Shot{}
	g.tracer = 0
	g.message = ""
	g.messageTTL = 0

	g.spawnWave()

	logger.Info("round started",
		"mode", g.ID(),
		"seed", runtime.Seed,
		"vehicles", g.world.VehicleCount(),
		"buildings", len(g.world.Buildings()),
		"duration", g.cfg.Round.Duration,
	)
}

// loadConfig returns the override or the config on disk, with the preset applied.
func (g *Game) loadConfig() config.AutoTheftConfig {
	var cfg config.AutoTheftConfig
	if g.override != nil {
		cfg = *g.override
	} else {
		loaded, err := config.LoadAutoTheft(configPath)
		if err != nil {
			logger.Warn("using default config", "err", err)
			loaded = config.DefaultAutoTheftConfig()
		}
		cfg = loaded
	}

	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// spawnCell returns the road tile nearest the map center.
func (g *Game) spawnCell() tilemap.Cell {
	center := tilemap.Cell{X: g.tiles.Width() / 2, Y: g.tiles.Height() / 2}
	if len(g.roads) == 0 {
		return center
	}
	best := g.roads[0]
	bestDist := math.MaxInt
	for _, c := range g.roads {
		dx, dy := c.X-center.X, c.Y-center.Y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// parkVehicles places the first vehicle next to the player and the rest on
// random road tiles.
func (g *Game) parkVehicles(spawn geom.Vec2) {
	params := vehicleParams(g.cfg)
	for i := 0; i < g.cfg.Vehicle.Count; i++ {
		var pos geom.Vec2
		var cell tilemap.Cell
		if i == 0 || len(g.roads) == 0 {
			pos = g.besideSpawn(spawn)
			cell = g.tiles.TileIndex(pos)
		} else {
			cell = g.roads[g.rng.Intn(len(g.roads))]
			pos = g.tiles.TileCenter(cell)
		}

		v := vehicle.New(pos, params, g.newGearbox())
		if t, ok := g.tiles.At(cell); ok && t.Road.Index() == tilemap.VariantHorizontal {
			v.SetOrientation(geom.V(1, 0))
		}
		g.world.AddVehicle(v)
	}
}

// besideSpawn returns a free spot within reach of the spawn point.
func (g *Game) besideSpawn(spawn geom.Vec2) geom.Vec2 {
	d := g.cfg.Player.EnterRadius * 0.75
	for _, off := range []geom.Vec2{geom.V(d, 0), geom.V(-d, 0), geom.V(0, d), geom.V(0, -d)} {
		if p := spawn.Add(off); !g.blocked(p) {
			return p
		}
	}
	return spawn
}

// newGearbox builds a gearbox from the configured ratios.
func (g *Game) newGearbox() *vehicle.Gearbox {
	gb, err := vehicle.NewGearbox(g.cfg.Vehicle.GearRatios...)
	if err != nil {
		logger.Warn("falling back to six-step gearbox", "err", err)
		return vehicle.SixStep()
	}
	return gb
}

// vehicleParams converts the vehicle and physics config into simulation parameters.
func vehicleParams(cfg config.AutoTheftConfig) vehicle.Params {
	vc, pc := cfg.Vehicle, cfg.Physics
	return vehicle.Params{
		Mass:            vc.Mass,
		EngineTorque:    vc.EngineTorque,
		ReverseTorque:   vc.ReverseTorque,
		BrakingTorque:   vc.BrakingTorque,
		WheelDiameter:   vc.WheelDiameter,
		AirDensity:      pc.AirDensity,
		DragCoefficient: pc.DragCoefficient,
		ReferenceArea:   pc.ReferenceArea,
		SteerAngle:      vc.SteerAngleDeg * math.Pi / 180,
		SteerDamping:    vc.SteerDamping,
		PositionScale:   vc.PositionScale,
		Length:          vc.Length,
		Width:           vc.Width,
	}
}

// spawnWave adds a new set of targets on free ground. Wave size and target
// toughness grow with difficulty.
func (g *Game) spawnWave() {
	cells := g.grass
	if len(cells) == 0 {
		cells = g.roads
	}
	if len(cells) == 0 {
		return
	}

	g.wave++
	progress := config.Progress{Score: g.score, Ticks: g.tickCount, Wave: g.wave}
	n := g.difficulty.WaveSize(g.cfg.Round.Targets, progress)
	hp := g.difficulty.TargetHitPoints(g.cfg.Round.TargetHitPoints, progress)
	size := g.cfg.Round.TargetSize

	order := g.rng.Perm(len(cells))
	for i := 0; i < n; i++ {
		c := g.tiles.TileCenter(cells[order[i%len(order)]])
		g.world.AddTarget(collide.NewRect(c.X-size/2, c.Y-size/2, size, size), hp)
	}

	logger.Debug("wave spawned", "wave", g.wave, "targets", n, "hit_points", hp)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	// Don't update if paused or game over
	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickDelta()
	g.tickCount++
	g.elapsed += dt
	g.tickEffects()

	g.weapon.Update(dt)

	if in.Has(core.ActionInteract) {
		g.interact()
	}
	if in.Has(core.ActionShiftUp) {
		g.shift(true)
	}
	if in.Has(core.ActionShiftDown) {
		g.shift(false)
	}

	g.move(in.Facing(), dt)

	if in.Has(core.ActionFire) {
		g.fire(in)
	}

	if g.world.TargetsAlive() == 0 {
		g.spawnWave()
	}

	if g.mode == ModeTimed && g.cfg.Round.Duration > 0 && g.elapsed >= g.cfg.Round.Duration {
		g.state = StateGameOver
		logger.Info("round over",
			"score", g.score,
			"shots", g.weapon.Shots(),
			"hits", g.weapon.Hits(),
			"destroyed", g.destroyed,
		)
	}

	return core.StepResult{State: g.State()}
}

// tickEffects counts down on-screen effects.
func (g *Game) tickEffects() {
	if g.tracer > 0 {
		g.tracer--
	}
	if g.messageTTL > 0 {
		g.messageTTL--
		if g.messageTTL == 0 {
			g.message = ""
		}
	}
}

// flash shows a status message for a while.
func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTTL = messageTicks
}

// interact enters the nearest vehicle on foot, or leaves the current one.
func (g *Game) interact() {
	inside, err := g.player.Interact(g.world)
	switch {
	case errors.Is(err, world.ErrNoVehicleNearby):
		g.flash("No vehicle nearby")
	case err != nil:
		logger.Error("interact failed", "err", err)
	case inside:
		h, _ := g.player.Vehicle()
		logger.Info("entered vehicle", "vehicle", h, "pos", g.player.Position())
	default:
		logger.Info("left vehicle", "pos", g.player.Position())
	}
}

// drivenVehicle returns the occupied vehicle, or nil on foot.
func (g *Game) drivenVehicle() *vehicle.Vehicle {
	h, ok := g.player.Vehicle()
	if !ok {
		return nil
	}
	v, err := g.world.Vehicle(h)
	if err != nil {
		return nil
	}
	return v
}

// shift moves the driven vehicle one gear up or down.
func (g *Game) shift(up bool) {
	v := g.drivenVehicle()
	if v == nil {
		return
	}
	gb := v.Gearbox()

	var err error
	if up {
		err = gb.ShiftUp()
	} else {
		err = gb.ShiftDown()
	}
	if err != nil {
		logger.Warn("gear shift rejected", "gear", gb.CurrentGear()+1, "up", up, "err", err)
		return
	}
	logger.Debug("gear shifted", "gear", gb.CurrentGear()+1, "ratio", gb.Ratio())
}

// move applies directional input and advances every vehicle. Nothing may
// enter a building or leave the map; vehicles that try are stopped.
func (g *Game) move(f core.Facing, dt float64) {
	prev := g.player.Position()
	if err := g.player.Control(g.world, f, dt); err != nil {
		logger.Error("control failed", "err", err)
		return
	}
	if g.blocked(g.player.Position()) {
		g.player.SetPosition(prev)
	}

	vehicles := g.world.Vehicles()
	before := make([]geom.Vec2, len(vehicles))
	for i, v := range vehicles {
		before[i] = v.Position()
	}

	g.world.Update(dt)

	for i, v := range vehicles {
		if g.blocked(v.Position()) {
			if v.Velocity() > 0 {
				logger.Debug("vehicle crashed", "vehicle", i, "kmh", v.VelocityKmh())
			}
			v.SetPosition(before[i])
			v.Stop()
		}
	}

	g.player.Sync(g.world)
	g.distance += g.player.Position().Distance(prev)
	if v := g.drivenVehicle(); v != nil {
		g.topSpeed = max(g.topSpeed, v.VelocityKmh())
	}
}

// blocked reports whether pos is outside the map or inside a building.
func (g *Game) blocked(pos geom.Vec2) bool {
	if !g.tiles.Bounds().Contains(pos) {
		return true
	}
	t, ok := g.tiles.At(g.tiles.TileIndex(pos))
	return !ok || t.Kind == tilemap.KindBuilding
}

// fire shoots along the aim direction and scores target hits.
func (g *Game) fire(in core.InputFrame) {
	aim := in.Aim
	if in.HasAim {
		aim = geom.V(aim.X/cellAspect, aim.Y)
	}
	dir := g.player.AimDirection(g.world, aim, in.HasAim)

	shot, ok := g.weapon.Fire(g.world, g.player, dir)
	if !ok {
		return
	}
	g.lastShot = shot
	g.tracer = tracerTicks

	if !shot.Struck {
		return
	}
	logger.Debug("shot hit",
		"object", shot.Hit.Object,
		"distance", shot.Hit.T,
		"point", shot.Hit.Point,
		"normal", shot.Hit.Normal,
	)

	if shot.Hit.Object.Kind != world.KindTarget {
		return
	}
	g.score += g.cfg.Round.HitScore
	if shot.Destroyed {
		g.score += g.cfg.Round.DestroyScore
		g.destroyed++
		g.flash("Target destroyed")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// RunSummary reports statistics for the current run.
func (g *Game) RunSummary() registry.RunSummary {
	s := registry.RunSummary{
		Difficulty:  string(difficultyPreset),
		Destroyed:   g.destroyed,
		TopSpeedKmh: g.topSpeed,
		Distance:    g.distance,
		Duration:    g.elapsed,
	}
	if s.Difficulty == "" {
		s.Difficulty = string(config.DifficultyNormal)
	}
	if g.weapon != nil {
		s.Shots = g.weapon.Shots()
		s.Hits = g.weapon.Hits()
	}
	return s
}

// Remaining returns the seconds left on the round timer, or -1 without one.
func (g *Game) Remaining() float64 {
	if g.mode != ModeTimed || g.cfg.Round.Duration <= 0 {
		return -1
	}
	return max(0, g.cfg.Round.Duration-g.elapsed)
}

// Player returns the player.
func (g *Game) Player() *world.Player { return g.player }

// World returns the simulated world.
func (g *Game) World() *world.World { return g.world }

// Map returns the tile map.
func (g *Game) Map() *tilemap.Map { return g.tiles }

// Wave returns the number of target waves spawned so far.
func (g *Game) Wave() int { return g.wave }

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(FreeRoamID, func() registry.Game {
		return NewFreeRoam()
	})
}
