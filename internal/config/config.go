package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "othello"

	// DefaultBoardSize is the classic 8x8 Othello board. Other sizes
	// (6, 10, 12) are supported via the --size flag.
	DefaultBoardSize = 8

	// DefaultBlitzTime is each player's budget in blitz mode. 30 minutes
	// matches over-the-board blitz conventions and leaves room for the
	// long endgame of larger boards.
	DefaultBlitzTime = 30 * time.Minute

	// DefaultAIDepth of 3 plies gives a computer opponent that punishes
	// blunders without making interactive play sluggish on a 12x12 board.
	DefaultAIDepth = 3

	// DefaultAIMoveTimeout bounds a single AI search in interactive play.
	// On timeout the best move found so far is played, so the game never
	// stalls on a deep search.
	DefaultAIMoveTimeout = 5 * time.Second

	// DefaultAlgorithm is plain minimax. Alpha-beta ("ab") chooses the
	// same moves faster and is what the benchmark presets compare against.
	DefaultAlgorithm = "minimax"

	// DefaultHeuristic is the piece-count heuristic, the cheapest one.
	// Stronger play comes from "all_in_one".
	DefaultHeuristic = "coin_parity"

	// DefaultBenchmarkGames is the number of games per engine pairing in
	// a benchmark run. Ten games smooths out the randomized openings
	// while keeping a full sweep under a few minutes.
	DefaultBenchmarkGames = 10

	// DefaultBenchmarkConcurrency is the number of benchmark games played
	// in parallel. Searches are CPU-bound, so this should track the
	// available cores rather than grow unbounded.
	DefaultBenchmarkConcurrency = 4
)

// Config holds all configuration options for the othello CLI.
// This struct is populated from CLI flags and the optional config file
// and passed through the application via dependency injection rather
// than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., PlayConfig, BenchmarkConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// BoardSize is the board edge length. Must be one of 6, 8, 10, 12.
	BoardSize int

	// Blitz enables the chess clock. Each player gets BlitzTime; running
	// out loses the game regardless of the piece count.
	Blitz bool

	// BlitzTime is each player's clock budget when Blitz is enabled.
	BlitzTime time.Duration

	// AIDepth is the search look-ahead in plies. Must be at least 1.
	AIDepth int

	// Algorithm selects the search strategy: "minimax" or "ab".
	Algorithm string

	// Heuristic selects the position evaluation: coin_parity,
	// corners_captured, mobility, or all_in_one.
	Heuristic string

	// AIMoveTimeout bounds each AI search in interactive play. Zero
	// means no per-move limit.
	AIMoveTimeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// NoColor disables ANSI colors in the board rendering.
	NoColor bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .othello in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Profiles holds named engine profiles loaded from the config file.
	Profiles *File

	// JSONReport enables JSON output for benchmark and history commands.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables GitHub Flavored Markdown output with
	// tables, alerts, and pie charts. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for reports. When set, the
	// report is written to this file instead of stdout. Directories are
	// created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite database of
	// finished games and benchmark runs. Defaults to the XDG data
	// directory (~/.local/share/othello on Linux).
	DBDir string

	// SaveToDB indicates whether finished games are recorded in the
	// database.
	SaveToDB bool

	// BenchmarkGames is the number of games per engine pairing in a
	// benchmark run.
	BenchmarkGames int

	// BenchmarkConcurrency is the number of benchmark games played in
	// parallel.
	BenchmarkConcurrency int
}

// NewConfig creates a new Config with default values.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (board size, depth,
// clock budget). This also serves as documentation of what the
// defaults are.
func NewConfig() *Config {
	return &Config{
		BoardSize:            DefaultBoardSize,
		BlitzTime:            DefaultBlitzTime,
		AIDepth:              DefaultAIDepth,
		Algorithm:            DefaultAlgorithm,
		Heuristic:            DefaultHeuristic,
		AIMoveTimeout:        DefaultAIMoveTimeout,
		BenchmarkGames:       DefaultBenchmarkGames,
		BenchmarkConcurrency: DefaultBenchmarkConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for the othello CLI.
// On Linux: ~/.local/share/othello
// On macOS: ~/Library/Application Support/othello
// On Windows: %LOCALAPPDATA%\othello
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the othello CLI.
// On Linux: ~/.config/othello
// On macOS: ~/Library/Application Support/othello
// On Windows: %APPDATA%\othello
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any game begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if !ValidBoardSize(c.BoardSize) {
		return ErrInvalidBoardSize
	}

	if c.Blitz && c.BlitzTime <= 0 {
		return ErrInvalidBlitzTime
	}

	if c.AIDepth < 1 {
		return ErrInvalidDepth
	}

	if c.AIMoveTimeout < 0 {
		return ErrInvalidMoveTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.BenchmarkGames < 1 {
		return ErrInvalidGameCount
	}

	if c.BenchmarkConcurrency < 1 {
		return ErrInvalidConcurrency
	}

	return nil
}

// ValidBoardSize reports whether size is a playable board edge length.
func ValidBoardSize(size int) bool {
	switch size {
	case 6, 8, 10, 12:
		return true
	default:
		return false
	}
}
