// Package config manages application configuration.
package config

import "strings"

// Config represents the application configuration.
type Config struct {
	Editor EditorConfig `yaml:"editor"`
	Log    LogConfig    `yaml:"log"`
}

// EditorConfig contains grid editor options.
type EditorConfig struct {
	StartMode       string `yaml:"start_mode"`        // edit or drag
	NormalizeOnLoad bool   `yaml:"normalize_on_load"` // pad/truncate ragged rows when a table is loaded
	MaxCellWidth    int    `yaml:"max_cell_width"`    // display width cap per column
	ShowSource      bool   `yaml:"show_source"`       // show the Markdown source pane
}

// LogConfig contains log file options.
type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"`
	Level   string `yaml:"level"`
}

// Editor start modes.
const (
	ModeEdit = "edit"
	ModeDrag = "drag"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			StartMode:       ModeEdit,
			NormalizeOnLoad: true,
			MaxCellWidth:    24,
			ShowSource:      true,
		},
		Log: LogConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// ApplyEnv overrides configuration values from MDGRID_* environment variables.
func (c *Config) ApplyEnv() {
	if mode := strings.ToLower(GetEnvOrDefault("MDGRID_MODE", "")); mode == ModeEdit || mode == ModeDrag {
		c.Editor.StartMode = mode
	}
	if GetEnvBool("MDGRID_LOG") {
		c.Log.Enabled = true
	}
	if dir := GetEnvOrDefault("MDGRID_LOG_DIR", ""); dir != "" {
		c.Log.Dir = dir
	}
}

// StartsInDragMode reports whether the editor should open in drag mode.
func (c *Config) StartsInDragMode() bool {
	return strings.EqualFold(c.Editor.StartMode, ModeDrag)
}
