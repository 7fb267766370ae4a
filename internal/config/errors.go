package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidBoardSize is returned when the board size is not one of
	// the supported edge lengths.
	ErrInvalidBoardSize = errors.New("invalid board size: must be 6, 8, 10, or 12")

	// ErrInvalidBlitzTime is returned when blitz mode is enabled with a
	// non-positive clock budget.
	ErrInvalidBlitzTime = errors.New("invalid blitz time: must be positive")

	// ErrInvalidDepth is returned when the AI search depth is below 1.
	// A zero-ply search cannot choose a move.
	ErrInvalidDepth = errors.New("invalid AI depth: must be at least 1")

	// ErrInvalidMoveTimeout is returned when the per-move AI timeout is
	// negative. Use 0 for no limit.
	ErrInvalidMoveTimeout = errors.New("invalid AI move timeout: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidGameCount is returned when a benchmark is asked to play
	// fewer than one game per pairing.
	ErrInvalidGameCount = errors.New("invalid game count: must be at least 1")

	// ErrInvalidConcurrency is returned when the benchmark concurrency
	// is below 1.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be at least 1")

	// ErrUnknownProfile is returned when --profile names a profile the
	// configuration file does not define.
	ErrUnknownProfile = errors.New("unknown profile")
)
