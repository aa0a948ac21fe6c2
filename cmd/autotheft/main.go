// autotheft is a top-down car theft and shooting game for the terminal.
//
// Usage:
//
//	autotheft list             - List available modes
//	autotheft play [mode]      - Play a mode (default: timed round)
//	autotheft menu             - Start menu to pick a mode interactively
//	autotheft scores [mode]    - Show best runs for a mode
//	autotheft config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.autotheft/scores.db)
//	--log <path>         - Set log file (default: ~/.autotheft/autotheft.log, "-" for stderr)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/autotheft/internal/games/autotheft"
	"github.com/vovakirdan/autotheft/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

// logFile is opened by setupLogging and closed once the command returns.
var logFile io.Closer

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the root command and closes the log file even when the
// command failed, since cobra skips post-run hooks on error.
func execute() error {
	err := rootCmd.Execute()
	if cerr := closeLogging(); err == nil {
		err = cerr
	}
	return err
}

var rootCmd = &cobra.Command{
	Use:   "autotheft",
	Short: "Auto Theft - steal cars and shoot targets in your terminal",
	Long: `Auto Theft is a top-down terminal game. Walk the streets of a generated
town, get into parked cars, drive them through a manual gearbox and
shoot down waves of targets before the clock runs out.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View best runs
  config   - Print the effective configuration

Examples:
  autotheft play
  autotheft play autotheft_free
  autotheft menu --fps 30
  autotheft scores
  autotheft config --difficulty hard`,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.autotheft/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.autotheft/autotheft.log", `Log file ("-" for stderr, "" to disable)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging opens the log destination and hands the logger to the game
// and the terminal platform. The screen belongs to Bubble Tea while a game
// runs, so logs go to a file by default.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer
	switch flagLogPath {
	case "":
		out = io.Discard
	case "-":
		out = os.Stderr
	default:
		path, err := expandHome(flagLogPath)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "autotheft",
	})
	autotheft.SetLogger(logger)
	tui.SetLogger(logger)
	return nil
}

func closeLogging() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
