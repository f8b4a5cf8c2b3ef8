// Package config loads cuboard settings and the persistent state file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/SeamusWaldron/cuboard/internal/cube"
	"github.com/SeamusWaldron/cuboard/internal/input"
	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

// Environment variables read by Load.
const (
	EnvConfig   = "CUBOARD_CONFIG"
	EnvLogLevel = "CUBOARD_LOG_LEVEL"
)

// dirName is the per-user directory under the home directory.
const dirName = ".cuboard"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all application configuration.
type Config struct {
	Device  DeviceConfig  `toml:"device"`
	Input   InputConfig   `toml:"input"`
	Log     LogConfig     `toml:"log"`
	Capture CaptureConfig `toml:"capture"`
}

// DeviceConfig selects which cube to connect to.
type DeviceConfig struct {
	NamePrefix  string        `toml:"name_prefix"`
	ScanTimeout time.Duration `toml:"scan_timeout"`
	Address     string        `toml:"address"`
}

// InputConfig controls how moves are typed.
type InputConfig struct {
	Keymap      string `toml:"keymap"`
	Frame       string `toml:"frame"`
	PromptWidth int    `toml:"prompt_width"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type CaptureConfig struct {
	DB string `toml:"db"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			NamePrefix:  protocol.NamePrefix,
			ScanTimeout: 10 * time.Second,
		},
		Input: InputConfig{
			Frame:       cube.Identity.String(),
			PromptWidth: 12,
		},
		Log:     LogConfig{Level: "info"},
		Capture: CaptureConfig{DB: filepath.Join("~", dirName, "captures.db")},
	}
}

// Dir returns the per-user cuboard directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the config file path, honouring CUBOARD_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty. A missing file yields the defaults. Environment overrides are
// applied before validation.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	conf := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		conf.Log.Level = lvl
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks that every setting can be used.
func (c *Config) Validate() error {
	if _, err := c.FrameSymmetry(); err != nil {
		return fmt.Errorf("%w: input.frame: %v", ErrInvalidConfig, err)
	}
	if c.Input.PromptWidth <= 0 {
		return fmt.Errorf("%w: input.prompt_width must be positive, got %d", ErrInvalidConfig, c.Input.PromptWidth)
	}
	if c.Device.ScanTimeout <= 0 {
		return fmt.Errorf("%w: device.scan_timeout must be positive, got %v", ErrInvalidConfig, c.Device.ScanTimeout)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FrameSymmetry returns the symmetry applied to incoming moves.
func (c *Config) FrameSymmetry() (cube.Symmetry, error) {
	return cube.ParseSymmetry(c.Input.Frame)
}

func (c *Config) LogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Log.Level)
}

// Keymap loads the configured keymap, or returns the built-in one.
func (c *Config) Keymap() (input.Keymap, error) {
	if c.Input.Keymap == "" {
		return input.DefaultKeymap, nil
	}
	return input.LoadKeymap(ExpandHome(c.Input.Keymap))
}

// CapturePath returns the capture database path with ~ expanded.
func (c *Config) CapturePath() string {
	return ExpandHome(c.Capture.DB)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
