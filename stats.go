package rezeos

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// FrameStats summarises one window of frames.
type FrameStats struct {
	Frame      int64    `csv:"frame"`
	Elapsed    Duration `csv:"elapsed_ms"`
	Mode       Mode     `csv:"mode"`
	Particles  int      `csv:"particles"`
	Trails     int      `csv:"trails"`
	Sparks     int      `csv:"sparks"`
	Shockwaves int      `csv:"shockwaves"`
	TickMean   float64  `csv:"tick_mean_ms"`
	TickStdDev float64  `csv:"tick_stddev_ms"`
	TickMax    float64  `csv:"tick_max_ms"`
}

// StatsWriter appends FrameStats rows to a CSV stream. The header is written
// with the first row.
type StatsWriter struct {
	w             io.Writer
	c             io.Closer
	headerWritten bool
}

// NewStatsWriter writes rows to w.
func NewStatsWriter(w io.Writer) *StatsWriter {
	return &StatsWriter{w: w}
}

// CreateStatsFile creates (or truncates) path and returns a writer for it.
func CreateStatsFile(path string) (*StatsWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating stats file: %w", err)
	}
	return &StatsWriter{w: f, c: f}, nil
}

// Write appends one row.
func (s *StatsWriter) Write(fs FrameStats) error {
	if s == nil {
		return nil
	}
	records := []FrameStats{fs}
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.w); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		s.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, s.w); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the writer owns one.
func (s *StatsWriter) Close() error {
	if s == nil || s.c == nil {
		return nil
	}
	return s.c.Close()
}
