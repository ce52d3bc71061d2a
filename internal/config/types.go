// Package config holds the user settings of the gostatics CLI.
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Settings is the content of the config file.
type Settings struct {
	Precision int          `yaml:"precision"`
	Tolerance float64      `yaml:"tolerance"`
	LogLevel  string       `yaml:"log_level"`
	Diagram   DiagramSizes `yaml:"diagram"`
}

// DiagramSizes sets the size of image exports, in inches, and of the ASCII
// load profile, in character cells.
type DiagramSizes struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	ProfileWidth  int     `yaml:"profile_width"`
	ProfileHeight int     `yaml:"profile_height"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		Precision: 2,
		Tolerance: 1e-9,
		LogLevel:  "info",
		Diagram: DiagramSizes{
			Width:         8,
			Height:        6,
			ProfileWidth:  60,
			ProfileHeight: 12,
		},
	}
}

// Validate rejects settings the solver or the renderers cannot use.
func (s Settings) Validate() error {
	if s.Precision < 0 || s.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10, got %d", s.Precision)
	}
	if s.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", s.Tolerance)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if s.Diagram.Width <= 0 || s.Diagram.Height <= 0 {
		return fmt.Errorf("diagram size must be positive, got %gx%g", s.Diagram.Width, s.Diagram.Height)
	}
	if s.Diagram.ProfileWidth < 10 || s.Diagram.ProfileHeight < 3 {
		return fmt.Errorf("profile size too small: %dx%d", s.Diagram.ProfileWidth, s.Diagram.ProfileHeight)
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}
