package rezeos

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/rezeos/sfx"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	cfg := DefaultConfig()

	if !reflect.DeepEqual(cfg.Particles, DefaultParticleConfig()) {
		t.Errorf("particles:\n yaml %+v\n code %+v", cfg.Particles, DefaultParticleConfig())
	}
	if cfg.Decode != DefaultDecodeConfig() {
		t.Errorf("decode:\n yaml %+v\n code %+v", cfg.Decode, DefaultDecodeConfig())
	}
	if cfg.Overlay != DefaultOverlayConfig() {
		t.Errorf("overlay:\n yaml %+v\n code %+v", cfg.Overlay, DefaultOverlayConfig())
	}
	if !reflect.DeepEqual(cfg.Rotator, DefaultRotatorConfig()) {
		t.Errorf("rotator:\n yaml %+v\n code %+v", cfg.Rotator, DefaultRotatorConfig())
	}
	if cfg.Audio != sfx.DefaultConfig() {
		t.Errorf("audio:\n yaml %+v\n code %+v", cfg.Audio, sfx.DefaultConfig())
	}
	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 || cfg.Font.Size != 22 {
		t.Errorf("screen/font = %+v %+v", cfg.Screen, cfg.Font)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
particles:
  burst_count: 40
decode:
  hold: 1.5s
background: "#102030"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles.BurstCount != 40 {
		t.Errorf("burst_count = %d, want 40", cfg.Particles.BurstCount)
	}
	if cfg.Decode.Hold != 1500*time.Millisecond {
		t.Errorf("hold = %v, want 1.5s", cfg.Decode.Hold)
	}
	if cfg.Decode.CharInterval != 50*time.Millisecond {
		t.Errorf("char_interval = %v, want the 50ms default", cfg.Decode.CharInterval)
	}
	if cfg.Particles.Shockwave.Growth != 15 {
		t.Errorf("shockwave growth = %v, want the default 15", cfg.Particles.Shockwave.Growth)
	}
	if got := cfg.Background.String(); got != "#102030ff" {
		t.Errorf("background = %s", got)
	}
}

func TestLoadClampsAndRejects(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
particles:
  trail_chance: 3
  burst_count: -4
  explosion:
    palette: []
rotator:
  jitter: -1s
`))
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "trail_chance", cfg.Particles.TrailChance, 1)
	if cfg.Particles.BurstCount != 0 {
		t.Errorf("burst_count = %d, want 0", cfg.Particles.BurstCount)
	}
	if len(cfg.Particles.Explosion.Palette) != len(FireworkPalette) {
		t.Error("empty palette not replaced by the default")
	}
	if cfg.Rotator.Jitter != 0 {
		t.Errorf("jitter = %v, want 0", cfg.Rotator.Jitter)
	}

	bad := []string{
		"decode:\n  char_interval: 0s\n",
		"particles:\n  trail:\n    decay: 0\n",
		"rotator:\n  interval: 0s\n",
		"particles:\n  shockwave:\n    cap: {min: 300, max: 200}\n",
		"background: \"#nothex\"\n",
		"decode: [\n",
	}
	for _, body := range bad {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("Load(%q) succeeded, want error", strings.TrimSpace(body))
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load on a missing file succeeded")
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.BurstCount = 77
	cfg.Rotator.Interval = 3 * time.Second

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", got, cfg)
	}
}
