package rezeos

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// statsWindow is the number of frames summarised per debug log line and
// per stats row.
const statsWindow = 120

// SetDebugMode enables or disables debug mode. When enabled, per-window tick
// timing and particle counts are logged at debug level and a stats overlay
// is drawn. Frame stats are also written when a stats file is configured,
// regardless of debug mode.
func (d *Desktop) SetDebugMode(enabled bool) {
	d.debug = enabled
	d.log.Debug("debug mode", "enabled", enabled)
}

// DebugMode reports whether debug mode is enabled.
func (d *Desktop) DebugMode() bool {
	return d.debug
}

// recordFrame adds one tick time sample and flushes a window when full.
func (d *Desktop) recordFrame(elapsed time.Duration) {
	d.frame++
	if !d.debug && d.stats == nil {
		return
	}
	d.samples = append(d.samples, float64(elapsed)/float64(time.Millisecond))
	if len(d.samples) >= statsWindow {
		if err := d.flushStats(); err != nil {
			d.log.Warn("frame stats", "err", err)
		}
	}
}

// flushStats summarises the pending samples, logs them in debug mode and
// writes them to the stats file.
func (d *Desktop) flushStats() error {
	fs := d.frameStats()
	d.samples = d.samples[:0]

	if d.debug {
		d.log.Debug("frame stats",
			slog.Int64("frame", fs.Frame),
			slog.String("mode", fs.Mode.String()),
			slog.Int("particles", fs.Particles),
			slog.Int("sparks", fs.Sparks),
			slog.Float64("tick_mean_ms", fs.TickMean),
			slog.Float64("tick_stddev_ms", fs.TickStdDev),
			slog.Float64("tick_max_ms", fs.TickMax),
		)
	}
	return d.stats.Write(fs)
}

// frameStats summarises the pending tick samples and the live particle set.
func (d *Desktop) frameStats() FrameStats {
	fs := FrameStats{
		Frame:      d.frame,
		Elapsed:    Duration(d.tl.Now()),
		Mode:       d.mode,
		Particles:  d.engine.Len(),
		Trails:     d.engine.Count(KindTrail),
		Sparks:     d.engine.Count(KindExplosion),
		Shockwaves: d.engine.Count(KindShockwave),
	}
	fs.TickMean, fs.TickStdDev, fs.TickMax = summarize(d.samples)
	return fs
}

// summarize returns the mean, sample standard deviation and maximum of xs.
// The deviation is zero for fewer than two samples.
func summarize(xs []float64) (mean, stddev, maxv float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	if len(xs) == 1 {
		return xs[0], 0, xs[0]
	}
	mean, stddev = stat.MeanStdDev(xs, nil)
	if math.IsNaN(stddev) {
		stddev = 0
	}
	return mean, stddev, floats.Max(xs)
}
