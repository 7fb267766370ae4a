// Package database provides SQLite-based storage for finished games
// and benchmark runs, so past results can be listed, exported, and
// compared across engine versions.
package database
