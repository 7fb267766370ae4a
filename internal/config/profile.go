package config

import (
	"fmt"
	"time"
)

// Profile holds a named engine configuration. Profiles let a player
// keep favorite opponents ("easy", "tournament") in the config file and
// select them with --profile instead of repeating flags.
type Profile struct {
	// Depth overrides the AI search depth. If zero, the global depth is
	// used.
	Depth int `yaml:"depth,omitempty"`

	// Algorithm overrides the search algorithm ("minimax" or "ab").
	Algorithm string `yaml:"algorithm,omitempty"`

	// Heuristic overrides the position evaluation.
	Heuristic string `yaml:"heuristic,omitempty"`

	// MoveSeconds overrides the per-move search limit in seconds.
	// If zero, the global limit is used.
	MoveSeconds int `yaml:"moveSeconds,omitempty"`
}

// Defaults contains the file-level settings applied before any flags.
type Defaults struct {
	// Size is the preferred board size.
	Size int `yaml:"size,omitempty"`

	// BlitzMinutes is the preferred blitz budget in minutes.
	BlitzMinutes int `yaml:"blitzMinutes,omitempty"`

	// NoColor disables ANSI colors in the board rendering.
	NoColor bool `yaml:"noColor,omitempty"`
}

// File represents the structure of the .othello configuration file.
type File struct {
	// Defaults are the file-level settings applied to every game unless
	// overridden by flags.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Profiles maps profile names to engine configurations.
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// GetProfile returns the named engine profile. The second return value
// reports whether the profile exists.
func (cf *File) GetProfile(name string) (Profile, bool) {
	p, ok := cf.Profiles[name]
	return p, ok
}

// Apply overlays the file's defaults and the named profile onto the
// config. Flag values should be applied afterwards so they win over
// the file. A non-empty profile name that the file does not define is
// an error.
func (cf *File) Apply(c *Config, profileName string) error {
	if cf.Defaults.Size != 0 {
		c.BoardSize = cf.Defaults.Size
	}
	if cf.Defaults.BlitzMinutes != 0 {
		c.BlitzTime = time.Duration(cf.Defaults.BlitzMinutes) * time.Minute
	}
	if cf.Defaults.NoColor {
		c.NoColor = true
	}

	if profileName == "" {
		return nil
	}
	p, ok := cf.GetProfile(profileName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, profileName)
	}
	if p.Depth != 0 {
		c.AIDepth = p.Depth
	}
	if p.Algorithm != "" {
		c.Algorithm = p.Algorithm
	}
	if p.Heuristic != "" {
		c.Heuristic = p.Heuristic
	}
	if p.MoveSeconds != 0 {
		c.AIMoveTimeout = time.Duration(p.MoveSeconds) * time.Second
	}
	return nil
}
