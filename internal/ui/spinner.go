package ui

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// NewThinkingSpinner returns a spinner shown while the AI searches.
// The caller starts and stops it around the search.
func NewThinkingSpinner(out io.Writer) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " thinking..."
	return s
}
