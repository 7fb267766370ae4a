package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/othello/internal/model"
)

// GameDB provides SQLite-based storage for game records and benchmark
// reports. It manages connection pooling and provides methods for CRUD
// operations.
//
// Design decision: We use a single database file for both games and
// benchmarks rather than separate files. This simplifies the history
// command and backup/restore operations.
type GameDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures GameDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a GameDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*GameDB, error) {
	dbPath := filepath.Join(dbDir, "othello.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY errors during benchmark bursts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	gdb := &GameDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := gdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return gdb, nil
}

// Close closes the database connection.
func (gdb *GameDB) Close() error {
	return gdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (gdb *GameDB) createTables() error {
	schema := `
	-- Games store one row per finished game
	CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		played_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		board_size INTEGER NOT NULL,
		mode TEXT NOT NULL,
		blitz INTEGER NOT NULL DEFAULT 0,
		black_player TEXT NOT NULL,
		white_player TEXT NOT NULL,
		winner TEXT NOT NULL,
		black_score INTEGER NOT NULL,
		white_score INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		timed_out INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		save_data TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_games_played_at ON games(played_at);
	CREATE INDEX IF NOT EXISTS idx_games_mode ON games(mode);

	-- Benchmark runs store the whole report as JSON
	CREATE TABLE IF NOT EXISTS benchmark_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		elapsed_ms INTEGER NOT NULL DEFAULT 0,
		total_games INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_benchmarks_run_at ON benchmark_runs(run_at);
	`

	_, err := gdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveGame inserts a finished game and returns its row ID.
func (gdb *GameDB) SaveGame(ctx context.Context, record *model.GameRecord) (int64, error) {
	query := `
	INSERT INTO games (played_at, board_size, mode, blitz, black_player, white_player,
		winner, black_score, white_score, moves, timed_out, duration_ms, save_data)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	playedAt := record.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	result, err := gdb.db.ExecContext(ctx, query,
		playedAt.UTC().Format("2006-01-02 15:04:05"),
		record.BoardSize,
		record.Mode,
		boolToInt(record.Blitz),
		record.BlackPlayer,
		record.WhitePlayer,
		record.Winner,
		record.BlackScore,
		record.WhiteScore,
		record.Moves,
		boolToInt(record.TimedOut),
		record.Duration.Milliseconds(),
		record.SaveData,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save game: %w", err)
	}

	return result.LastInsertId()
}

// GetGame retrieves a game by its row ID. It returns nil without error
// when the ID does not exist.
func (gdb *GameDB) GetGame(ctx context.Context, id int64) (*model.GameRecord, error) {
	query := selectGameColumns + " WHERE id = ?"

	record, err := scanGame(gdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return record, nil
}

// ListGames returns the most recent games, newest first. A limit of 0
// returns everything.
func (gdb *GameDB) ListGames(ctx context.Context, limit int) ([]model.GameRecord, error) {
	query := selectGameColumns + " ORDER BY played_at DESC, id DESC"
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := gdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var records []model.GameRecord
	for rows.Next() {
		record, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

const selectGameColumns = `
	SELECT id, played_at, board_size, mode, blitz, black_player, white_player,
		winner, black_score, white_score, moves, timed_out, duration_ms, save_data
	FROM games`

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*model.GameRecord, error) {
	var record model.GameRecord
	var playedAt string
	var blitz, timedOut int
	var durationMS int64
	var saveData sql.NullString

	if err := row.Scan(
		&record.ID,
		&playedAt,
		&record.BoardSize,
		&record.Mode,
		&blitz,
		&record.BlackPlayer,
		&record.WhitePlayer,
		&record.Winner,
		&record.BlackScore,
		&record.WhiteScore,
		&record.Moves,
		&timedOut,
		&durationMS,
		&saveData,
	); err != nil {
		return nil, err
	}

	record.PlayedAt = parseTimestamp(playedAt)
	record.Blitz = blitz != 0
	record.TimedOut = timedOut != 0
	record.Duration = time.Duration(durationMS) * time.Millisecond
	if saveData.Valid {
		record.SaveData = saveData.String
	}
	return &record, nil
}

// SaveBenchmark inserts a benchmark report and returns its row ID.
func (gdb *GameDB) SaveBenchmark(ctx context.Context, report *model.BenchmarkReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize benchmark report: %w", err)
	}

	runAt := report.RunAt
	if runAt.IsZero() {
		runAt = time.Now()
	}

	query := `
	INSERT INTO benchmark_runs (run_at, elapsed_ms, total_games, report_json)
	VALUES (?, ?, ?, ?)
	`

	result, err := gdb.db.ExecContext(ctx, query,
		runAt.UTC().Format("2006-01-02 15:04:05"),
		report.Elapsed.Milliseconds(),
		report.TotalGames(),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save benchmark: %w", err)
	}

	return result.LastInsertId()
}

// GetBenchmark retrieves a benchmark report by its row ID. It returns
// nil without error when the ID does not exist.
func (gdb *GameDB) GetBenchmark(ctx context.Context, id int64) (*model.BenchmarkReport, error) {
	query := `SELECT id, report_json FROM benchmark_runs WHERE id = ?`

	var rowID int64
	var reportJSON string
	err := gdb.db.QueryRowContext(ctx, query, id).Scan(&rowID, &reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get benchmark: %w", err)
	}

	var report model.BenchmarkReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark report: %w", err)
	}
	report.ID = rowID
	return &report, nil
}

// ListBenchmarks returns the most recent benchmark reports, newest
// first. A limit of 0 returns everything.
func (gdb *GameDB) ListBenchmarks(ctx context.Context, limit int) ([]model.BenchmarkReport, error) {
	query := `SELECT id, report_json FROM benchmark_runs ORDER BY run_at DESC, id DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := gdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmarks: %w", err)
	}
	defer rows.Close()

	var reports []model.BenchmarkReport
	for rows.Next() {
		var rowID int64
		var reportJSON string
		if err := rows.Scan(&rowID, &reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}

		var report model.BenchmarkReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		report.ID = rowID
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
