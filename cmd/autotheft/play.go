package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/autotheft/internal/config"
	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/games/autotheft"
	"github.com/vovakirdan/autotheft/internal/platform/tui"
	"github.com/vovakirdan/autotheft/internal/registry"
	"github.com/vovakirdan/autotheft/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode. Without an argument the timed round
starts. When no --difficulty is given, the timed round asks for one.

Controls:
  WASD/Arrows  - Walk, or throttle/brake/steer while driving
  F/E          - Enter or leave the nearest vehicle
  X/Z          - Shift up/down
  Space        - Fire forward
  Mouse        - Aim and fire at the pointer
  P/Esc        - Pause
  R            - Restart (after the round)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Long round, soft targets
  normal - Standard round
  hard   - Short round, tough targets from the start
  fixed  - No timer, no progression

Examples:
  autotheft play
  autotheft play --difficulty hard
  autotheft play autotheft_free
  autotheft play --config ./my-town.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := autotheft.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'autotheft list' to see available modes.")
		os.Exit(1)
	}

	cfg := runtimeConfig()

	preset, ok := choosePreset(gameID, cfg)
	if !ok {
		return
	}
	autotheft.SetConfigPath(flagConfig)
	autotheft.SetDifficultyPreset(string(preset))

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// choosePreset returns the difficulty for a round. The flag wins; otherwise
// timed modes ask through the selector. ok is false when the player backed out.
func choosePreset(gameID string, cfg core.RuntimeConfig) (preset config.DifficultyPreset, ok bool) {
	if flagDifficulty != "" {
		p, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return p, true
	}
	if info, _ := registry.Lookup(gameID); !info.Scored {
		return "", true
	}

	p, err := tui.RunDifficultySelector(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return "", false
	}
	return p, p != ""
}
