package rezeos

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a drawing backend.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white, used for shockwave rings.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is the clear color of every particle surface.
var ColorTransparent = Color{}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= clamp01(a)
	return c
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// Intended for package-level palette tables.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5), uint8(clamp01(c.A)*255+0.5))
}

// UnmarshalYAML decodes a hex color string.
func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the color as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Range is a general-purpose min/max range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Rand returns a uniformly distributed value in [Min, Max) drawn from rng.
func (r Range) Rand(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mode is the two-valued application state that alters palettes and quote
// selection.
type Mode uint8

const (
	ModeNormal Mode = iota // ambient palette, calm quotes
	ModeCombat             // red palette, combat quotes
)

// String returns the lower-case tag used in quote tables.
func (m Mode) String() string {
	if m == ModeCombat {
		return "combat"
	}
	return "normal"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeCombat {
		return ModeNormal
	}
	return ModeCombat
}

// ParseMode parses "normal" or "combat".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return ModeNormal, nil
	case "combat":
		return ModeCombat, nil
	}
	return ModeNormal, fmt.Errorf("unknown mode %q", s)
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (m *Mode) UnmarshalCSV(s string) error {
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (m Mode) MarshalCSV() (string, error) {
	return m.String(), nil
}

// Kind identifies a particle variant. Fixed at creation.
type Kind uint8

const (
	KindTrail     Kind = iota // pointer trail dot
	KindExplosion             // firework spark
	KindShockwave             // expanding ring
)

func (k Kind) String() string {
	switch k {
	case KindTrail:
		return "trail"
	case KindExplosion:
		return "explosion"
	case KindShockwave:
		return "shockwave"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Duration wraps time.Duration for CSV output in milliseconds.
type Duration time.Duration

// MarshalCSV formats the duration as fractional milliseconds.
func (d Duration) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 3, 64), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
