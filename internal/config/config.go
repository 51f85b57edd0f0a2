// Package config loads showcase configuration from files, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hirepath/showcase/internal/tui/styles"
)

// EnvPrefix is the prefix for environment overrides (SHOWCASE_DEMO_SPEED, ...).
const EnvPrefix = "SHOWCASE"

// Config is the full application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Demo     DemoConfig     `mapstructure:"demo"`
	Carousel CarouselConfig `mapstructure:"carousel"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// TUIConfig configures the terminal UI.
type TUIConfig struct {
	Theme string `mapstructure:"theme"`
}

// DemoConfig configures demo playback.
type DemoConfig struct {
	// Speed multiplies playback rate; 2 halves every hold.
	Speed float64 `mapstructure:"speed"`

	// ScriptsDir overrides the project-local demo content directory.
	ScriptsDir string `mapstructure:"scripts_dir"`
}

// CarouselConfig configures the step-timeline ring.
type CarouselConfig struct {
	Radius   float64       `mapstructure:"radius"`
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		TUI: TUIConfig{
			Theme: "default",
		},
		Demo: DemoConfig{
			Speed: 1,
		},
		Carousel: CarouselConfig{
			Radius:   260,
			Interval: 3 * time.Second,
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is required")
	}
	if c.Demo.Speed <= 0 {
		return fmt.Errorf("demo.speed must be greater than 0, got %v", c.Demo.Speed)
	}
	if c.Carousel.Radius <= 0 {
		return fmt.Errorf("carousel.radius must be greater than 0, got %v", c.Carousel.Radius)
	}
	if c.Carousel.Interval <= 0 {
		return fmt.Errorf("carousel.interval must be greater than 0, got %s", c.Carousel.Interval)
	}
	if _, ok := styles.Lookup(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not one of %s", c.TUI.Theme, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// SearchPaths returns config file candidates in precedence order.
func SearchPaths() []string {
	paths := []string{"showcase.yaml"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "showcase", "config.yaml"))
	}
	return paths
}

// Load reads configuration. An explicit path must exist; otherwise the
// first existing file from SearchPaths is used, and defaults apply when
// none is found.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path = strings.TrimSpace(path)
	if path == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("tui.theme", cfg.TUI.Theme)
	v.SetDefault("demo.speed", cfg.Demo.Speed)
	v.SetDefault("demo.scripts_dir", cfg.Demo.ScriptsDir)
	v.SetDefault("carousel.radius", cfg.Carousel.Radius)
	v.SetDefault("carousel.interval", cfg.Carousel.Interval)
}
