// Package config provides configuration structures and utilities for the
// othello CLI. It defines the main options for interactive play, AI
// strength, benchmarking, and report generation preferences.
package config
