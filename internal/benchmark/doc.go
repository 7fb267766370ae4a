// Package benchmark plays batches of AI-vs-AI games concurrently and
// aggregates the outcomes into a report: win rates, average game
// length, and search cost per engine configuration.
package benchmark
