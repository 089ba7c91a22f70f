// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objviewer/internal/engine/screenshot"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Model      ModelConfig      `yaml:"model"`
	Controls   ControlsConfig   `yaml:"controls"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Background [3]float32 `yaml:"background"`
}

// ModelConfig holds the mesh to display.
type ModelConfig struct {
	Path        string `yaml:"path"`         // OBJ file; empty opens a file dialog
	Watch       bool   `yaml:"watch"`        // Reload when the file changes on disk
	FitToView   bool   `yaml:"fit_to_view"`  // Center and normalize the mesh bounds
	InitialPose bool   `yaml:"initial_pose"` // Start rotated about Z and at half size
}

// ControlsConfig holds mouse interaction settings.
type ControlsConfig struct {
	MinScale       float32 `yaml:"min_scale"`
	MaxScale       float32 `yaml:"max_scale"`
	TranslateXSign float32 `yaml:"translate_x_sign"` // -1 classic, 1 unified
	InvertY        bool    `yaml:"invert_y"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      true,
			Background: [3]float32{0, 0, 0},
		},
		Model: ModelConfig{
			Path:        "",
			Watch:       false,
			FitToView:   true,
			InitialPose: true,
		},
		Controls: ControlsConfig{
			MinScale:       0.25,
			MaxScale:       2.0,
			TranslateXSign: -1,
			InvertY:        false,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "objviewer",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Controls.MinScale <= 0 || c.Controls.MinScale > c.Controls.MaxScale {
		errs = append(errs, fmt.Errorf("controls: scale range [%v, %v] is invalid", c.Controls.MinScale, c.Controls.MaxScale))
	}
	if c.Controls.TranslateXSign != 1 && c.Controls.TranslateXSign != -1 {
		errs = append(errs, fmt.Errorf("controls: translate_x_sign must be 1 or -1, got %v", c.Controls.TranslateXSign))
	}
	if _, err := screenshot.ParseFormat(c.Screenshot.Format); err != nil {
		errs = append(errs, fmt.Errorf("screenshot: %w", err))
	}
	return errors.Join(errs...)
}
