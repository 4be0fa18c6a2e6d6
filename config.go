package rezeos

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/phanxgames/rezeos/sfx"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the desktop: window, particles, decode
// timings, overlay, quote rotation and audio.
type Config struct {
	Screen     ScreenConfig `yaml:"screen"`
	Background Color        `yaml:"background"`
	Font       FontConfig   `yaml:"font"`

	// Quotes is the path of a CSV quote table; empty uses the built-in one.
	Quotes string `yaml:"quotes"`
	// Debug enables frame stats logging and the debug overlay.
	Debug bool `yaml:"debug"`
	// StatsPath, when set, receives one CSV row of frame stats per window.
	StatsPath     string `yaml:"stats_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`

	Particles ParticleConfig `yaml:"particles"`
	Decode    DecodeConfig   `yaml:"decode"`
	Overlay   OverlayConfig  `yaml:"overlay"`
	Rotator   RotatorConfig  `yaml:"rotator"`
	Audio     sfx.Config     `yaml:"audio"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// FontConfig selects the quote font. An empty Path uses Go Regular, which
// lacks CJK glyphs; point it at a CJK-capable TTF/OTF for Japanese quotes.
type FontConfig struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("rezeos: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads configuration from a YAML file merged over the embedded
// defaults. Only fields present in the file are overwritten. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects settings the engine cannot run with and clamps the rest.
func (c *Config) validate() error {
	var errs []error

	p := &c.Particles
	p.BurstCount = max(p.BurstCount, 0)
	p.MaxParticles = max(p.MaxParticles, 0)
	p.TrailChance = clamp01(p.TrailChance)
	if len(p.Explosion.Palette) == 0 {
		p.Explosion.Palette = append([]Color(nil), FireworkPalette...)
	}
	if p.Trail.Decay <= 0 || p.Shockwave.Decay <= 0 || p.Explosion.Decay.Min <= 0 {
		errs = append(errs, errors.New("particles: decay must be positive"))
	}
	if p.Explosion.Decay.Min > p.Explosion.Decay.Max || p.Shockwave.Cap.Min > p.Shockwave.Cap.Max {
		errs = append(errs, errors.New("particles: range min exceeds max"))
	}

	d := &c.Decode
	if d.CharInterval <= 0 {
		errs = append(errs, errors.New("decode: char_interval must be positive"))
	}
	if d.Hold < 0 || d.Dip < 0 || d.Settle < 0 {
		errs = append(errs, errors.New("decode: durations must not be negative"))
	}

	if c.Rotator.Interval <= 0 {
		errs = append(errs, errors.New("rotator: interval must be positive"))
	}
	c.Rotator.Jitter = max(c.Rotator.Jitter, 0)

	c.Screen.Width = max(c.Screen.Width, 0)
	c.Screen.Height = max(c.Screen.Height, 0)
	if c.Font.Size <= 0 {
		c.Font.Size = 22
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
