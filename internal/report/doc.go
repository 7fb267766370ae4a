// Package report renders benchmark results and game history in several
// output formats: plain text for terminals, GitHub Flavored Markdown
// for sharing, and JSON for tool integration.
package report
