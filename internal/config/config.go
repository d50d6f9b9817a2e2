package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/enimda-mcp/internal/border"
)

// Environment variables read by FromEnv.
const (
	EnvConfig   = "ENIMDA_CONFIG"
	EnvLogLevel = "ENIMDA_LOG_LEVEL"
	EnvResize   = "ENIMDA_RESIZE"
)

// DefaultResize is the analysis thumbnail size used when none is configured.
const DefaultResize = 300

// DefaultOutlineColor is the guide line color used when none is configured.
const DefaultOutlineColor = "#FF0000"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config holds scan tuning and service settings. Every field is optional;
// Get* methods fall back to the defaults for fields left nil, so partial
// configs are safe.
type Config struct {
	// Scan params
	Threshold     *float64 `json:"threshold,omitempty"`
	Indent        *float64 `json:"indent,omitempty"`
	Fast          *bool    `json:"fast,omitempty"`
	RowSample     *int     `json:"row_sample,omitempty"`
	ColumnSample  *int     `json:"column_sample,omitempty"`
	Frames        *float64 `json:"frames,omitempty"`
	MaxFrames     *int     `json:"max_frames,omitempty"`
	MaxIterations *int     `json:"max_iterations,omitempty"`
	Workers       *int     `json:"workers,omitempty"`

	// Image params
	Resize       *int    `json:"resize,omitempty"`      // analysis thumbnail size, 0 disables
	FrameLimit   *int    `json:"frame_limit,omitempty"` // max decoded GIF frames, 0 decodes all
	OutlineColor *string `json:"outline_color,omitempty"`

	// Seed makes sampling reproducible when set.
	Seed *uint64 `json:"seed,omitempty"`

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel *string `json:"log_level,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }

// Default returns a Config with every field set to its default value.
func Default() *Config {
	opts := border.DefaultOptions()
	return &Config{
		Threshold:     ptrFloat64(opts.Threshold),
		Indent:        ptrFloat64(opts.Indent),
		Fast:          ptrBool(opts.Fast),
		RowSample:     ptrInt(0),
		ColumnSample:  ptrInt(0),
		Frames:        ptrFloat64(opts.Frames),
		MaxFrames:     ptrInt(0),
		MaxIterations: ptrInt(0),
		Workers:       ptrInt(0),
		Resize:        ptrInt(DefaultResize),
		FrameLimit:    ptrInt(0),
		OutlineColor:  ptrString(DefaultOutlineColor),
		LogLevel:      ptrString("info"),
	}
}

// Load reads a Config from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted from
// the file stay nil and resolve to defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FromEnv loads the file named by ENIMDA_CONFIG (if set) and applies the
// ENIMDA_LOG_LEVEL and ENIMDA_RESIZE overrides.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if path := os.Getenv(EnvConfig); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = ptrString(level)
	}
	if v := os.Getenv(EnvResize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvResize, v, err)
		}
		cfg.Resize = ptrInt(n)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	if _, err := c.ScanOptions(); err != nil {
		return err
	}
	if c.Resize != nil && *c.Resize < 0 {
		return fmt.Errorf("resize must be non-negative, got %d", *c.Resize)
	}
	if c.FrameLimit != nil && *c.FrameLimit < 0 {
		return fmt.Errorf("frame_limit must be non-negative, got %d", *c.FrameLimit)
	}
	if c.LogLevel != nil {
		if _, err := logrus.ParseLevel(*c.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", *c.LogLevel, err)
		}
	}
	return nil
}

// ScanOptions returns the scan options described by c, starting from
// border.DefaultOptions. The result is validated.
func (c *Config) ScanOptions() (border.Options, error) {
	opts := border.DefaultOptions()
	if c.Threshold != nil {
		opts.Threshold = *c.Threshold
	}
	if c.Indent != nil {
		opts.Indent = *c.Indent
	}
	if c.Fast != nil {
		opts.Fast = *c.Fast
	}
	if c.RowSample != nil {
		opts.RowSample = *c.RowSample
	}
	if c.ColumnSample != nil {
		opts.ColumnSample = *c.ColumnSample
	}
	if c.Frames != nil {
		opts.Frames = *c.Frames
	}
	if c.MaxFrames != nil {
		opts.MaxFrames = *c.MaxFrames
	}
	if c.MaxIterations != nil {
		opts.MaxIterations = *c.MaxIterations
	}
	if c.Workers != nil {
		opts.Workers = *c.Workers
	}
	if err := opts.Validate(); err != nil {
		return border.Options{}, err
	}
	return opts, nil
}

// DetectorOptions returns the detector options implied by c.
func (c *Config) DetectorOptions() []border.DetectorOption {
	var out []border.DetectorOption
	if c.Seed != nil {
		out = append(out, border.WithSeed(*c.Seed))
	}
	return out
}

// GetResize returns the analysis thumbnail size or the default.
func (c *Config) GetResize() int {
	if c.Resize == nil {
		return DefaultResize
	}
	return *c.Resize
}

// GetFrameLimit returns the decoded frame cap or the default (no cap).
func (c *Config) GetFrameLimit() int {
	if c.FrameLimit == nil {
		return 0
	}
	return *c.FrameLimit
}

// GetOutlineColor returns the outline color or the default.
func (c *Config) GetOutlineColor() string {
	if c.OutlineColor == nil || *c.OutlineColor == "" {
		return DefaultOutlineColor
	}
	return *c.OutlineColor
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() logrus.Level {
	if c.LogLevel == nil {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(*c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
