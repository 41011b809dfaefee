// Package config loads the server's optional JSON configuration.
//
// Every field is optional. Unset fields fall back to the defaults returned by
// the Get* accessors, so a partial file (or no file at all) is valid. Tool
// arguments supplied on a call take precedence over anything loaded here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "IMAGE_TOPOLOGY_CONFIG"

const (
	DefaultThreshold             = 127
	DefaultWindowSize            = 3
	DefaultMaxSkeletonIterations = 0
	DefaultRenderScale           = 1.0

	// MaxWindowSize bounds window_size wherever it is accepted.
	MaxWindowSize = 101

	maxFileSize    = 1 * 1024 * 1024 // 1MB
	maxRenderScale = 16.0
)

// Config is the root configuration document.
type Config struct {
	// Threshold is the minimum luminance (0-255) of a foreground pixel.
	Threshold *int `json:"threshold,omitempty"`

	// Invert treats dark pixels as foreground.
	Invert *bool `json:"invert,omitempty"`

	// WindowSize is the morphology window edge length.
	WindowSize *int `json:"window_size,omitempty"`

	// MaxSkeletonIterations caps thinning passes; 0 derives the cap from the
	// grid size.
	MaxSkeletonIterations *int `json:"max_skeleton_iterations,omitempty"`

	// RenderScale resizes rendered PNG output.
	RenderScale *float64 `json:"render_scale,omitempty"`
}

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

// LoadConfig reads and validates a JSON config file. The file must have a
// .json extension and be no larger than 1MB.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FromEnv loads the file named by IMAGE_TOPOLOGY_CONFIG, or returns an empty
// Config when the variable is unset.
func FromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Empty(), nil
	}
	return LoadConfig(path)
}

// Validate checks that every set field is in range.
func (c *Config) Validate() error {
	if c.Threshold != nil && (*c.Threshold < 0 || *c.Threshold > 255) {
		return fmt.Errorf("threshold must be between 0 and 255, got %d", *c.Threshold)
	}
	if c.WindowSize != nil && (*c.WindowSize < 1 || *c.WindowSize > MaxWindowSize) {
		return fmt.Errorf("window_size must be between 1 and %d, got %d", MaxWindowSize, *c.WindowSize)
	}
	if c.MaxSkeletonIterations != nil && *c.MaxSkeletonIterations < 0 {
		return fmt.Errorf("max_skeleton_iterations must be non-negative, got %d", *c.MaxSkeletonIterations)
	}
	if c.RenderScale != nil && (*c.RenderScale <= 0 || *c.RenderScale > maxRenderScale) {
		return fmt.Errorf("render_scale must be in (0, %g], got %g", maxRenderScale, *c.RenderScale)
	}
	return nil
}

func (c *Config) GetThreshold() uint8 {
	if c.Threshold == nil {
		return DefaultThreshold
	}
	return uint8(*c.Threshold)
}

func (c *Config) GetInvert() bool {
	if c.Invert == nil {
		return false
	}
	return *c.Invert
}

func (c *Config) GetWindowSize() int {
	if c.WindowSize == nil {
		return DefaultWindowSize
	}
	return *c.WindowSize
}

func (c *Config) GetMaxSkeletonIterations() int {
	if c.MaxSkeletonIterations == nil {
		return DefaultMaxSkeletonIterations
	}
	return *c.MaxSkeletonIterations
}

func (c *Config) GetRenderScale() float64 {
	if c.RenderScale == nil {
		return DefaultRenderScale
	}
	return *c.RenderScale
}
