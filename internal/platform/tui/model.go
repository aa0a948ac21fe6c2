package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/autotheft/internal/config"
	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/registry"
	"github.com/vovakirdan/autotheft/internal/storage"
)

// logger receives platform events. Discarded unless SetLogger is called.
var logger = log.New(io.Discard)

// SetLogger routes platform events to l. A nil logger discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	held       map[core.Action]int // Ticks each movement action stays active
	mouseDown  *bool               // Shared across value copies of the model
	fixedSeed  bool                // Keep the seed on restart
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	fixed := cfg.Seed != 0
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		held:       make(map[core.Action]int),
		mouseDown:  new(bool),
		fixedSeed:  fixed,
	}
}

// holdTicks is how long a movement key stays active after a press. Terminals
// report repeats but no releases, so this must bridge the key-repeat delay.
func (m Model) holdTicks() int {
	return max(1, m.config.TickRate/2)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveOnQuit()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case IsHeld(action):
		m.held[action] = m.holdTicks()
		delete(m.held, Opposite(action))
	case action == core.ActionBack:
		m.inputFrame.Set(core.ActionPause)
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse aims at the pointer and fires while the left button is down.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapMouse(msg, m.screen.Width(), m.screen.Height())
	m.inputFrame.SetAim(in.Aim)
	if in.Press {
		*m.mouseDown = true
		m.inputFrame.Set(core.ActionFire)
	}
	if in.Release {
		*m.mouseDown = false
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions if needed
	// Note: This resets the game - could be improved to preserve state
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		clear(m.held)
		return m, tickCmd(m.config.TickRate)
	}

	// Held movement keys
	for a, n := range m.held {
		if n <= 0 {
			delete(m.held, a)
			continue
		}
		m.inputFrame.Set(a)
		m.held[a] = n - 1
	}
	if *m.mouseDown {
		m.inputFrame.Set(core.ActionFire)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the score and, when the game reports one, the run summary.
func (m Model) saveResult() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		logger.Error("save score", "game", m.game.ID(), "err", err)
	}

	reporter, ok := m.game.(registry.RunReporter)
	if !ok {
		return
	}
	s := reporter.RunSummary()
	id, err := m.store.SaveRun(storage.RunRecord{
		GameID:      m.game.ID(),
		Difficulty:  s.Difficulty,
		Score:       m.gameState.Score,
		Shots:       s.Shots,
		Hits:        s.Hits,
		Destroyed:   s.Destroyed,
		TopSpeedKmh: s.TopSpeedKmh,
		Distance:    s.Distance,
		Duration:    s.Duration,
	})
	if err != nil {
		logger.Error("save run", "game", m.game.ID(), "err", err)
		return
	}
	logger.Info("run saved", "run", id, "score", m.gameState.Score)
}

// saveOnQuit stores a scored round that is left before it ends, such as an
// untimed round on the fixed preset.
func (m *Model) saveOnQuit() {
	if m.scoreSaved || m.gameState.GameOver {
		return
	}
	if s, ok := m.game.(registry.Scorer); ok && !s.Scored() {
		return
	}
	m.saveResult()
	m.scoreSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("screenshot", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("screenshot", "err", err)
		return
	}
	logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse aiming and fire
	)

	_, err := p.Run()
	return err
}
