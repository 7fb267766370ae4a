// Package model defines the data structures shared across the
// application: game records persisted to the database, engine
// specifications, and benchmark results.
package model
