package rezeos

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

//go:embed assets/quotes.csv
var defaultQuotesCSV []byte

// TimeOfDay tags a quote with the hours it may be shown.
type TimeOfDay uint8

const (
	TimeAny     TimeOfDay = iota // every hour
	TimeMorning                  // 06:00-10:59
	TimeDay                      // 11:00-21:59
	TimeNight                    // 22:00-05:59
)

func (t TimeOfDay) String() string {
	switch t {
	case TimeMorning:
		return "morning"
	case TimeDay:
		return "day"
	case TimeNight:
		return "night"
	}
	return "any"
}

// ParseTimeOfDay parses "any", "morning", "day" or "night".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "":
		return TimeAny, nil
	case "morning":
		return TimeMorning, nil
	case "day":
		return TimeDay, nil
	case "night":
		return TimeNight, nil
	}
	return TimeAny, fmt.Errorf("unknown time of day %q", s)
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (t *TimeOfDay) UnmarshalCSV(s string) error {
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (t TimeOfDay) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Matches reports whether hour (0-23) falls inside t.
func (t TimeOfDay) Matches(hour int) bool {
	night := hour >= 22 || hour <= 5
	morning := hour >= 6 && hour <= 10
	switch t {
	case TimeAny:
		return true
	case TimeNight:
		return night
	case TimeMorning:
		return morning
	case TimeDay:
		return !night && !morning
	}
	return false
}

// Quote is one row of the quote table: a cipher typed out first and the
// plaintext it decodes to.
type Quote struct {
	Cipher    string    `csv:"cipher"`
	Plaintext string    `csv:"plaintext"`
	Mode      Mode      `csv:"mode"`
	Time      TimeOfDay `csv:"time"`
}

// DefaultQuotes returns the built-in quote table.
func DefaultQuotes() []Quote {
	quotes, err := ParseQuotes(bytes.NewReader(defaultQuotesCSV))
	if err != nil {
		panic(fmt.Sprintf("rezeos: embedded quotes: %v", err))
	}
	return quotes
}

// ParseQuotes reads a CSV quote table with the header
// cipher,plaintext,mode,time.
func ParseQuotes(r io.Reader) ([]Quote, error) {
	var quotes []Quote
	if err := gocsv.Unmarshal(r, &quotes); err != nil {
		return nil, fmt.Errorf("parse quotes: %w", err)
	}
	return quotes, nil
}

// LoadQuotes reads a CSV quote table from path. An empty path returns the
// built-in table.
func LoadQuotes(path string) ([]Quote, error) {
	if path == "" {
		return DefaultQuotes(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quotes: %w", err)
	}
	defer f.Close()
	return ParseQuotes(f)
}

// WriteQuotes writes quotes as CSV with a header row.
func WriteQuotes(w io.Writer, quotes []Quote) error {
	if err := gocsv.Marshal(quotes, w); err != nil {
		return fmt.Errorf("write quotes: %w", err)
	}
	return nil
}

// Eligible returns the quotes whose mode equals mode and whose time tag
// matches hour, in table order.
func Eligible(quotes []Quote, mode Mode, hour int) []Quote {
	var out []Quote
	for _, q := range quotes {
		if q.Mode == mode && q.Time.Matches(hour) {
			out = append(out, q)
		}
	}
	return out
}

// Pick chooses uniformly among the eligible quotes. ok is false when none
// are eligible.
func Pick(quotes []Quote, mode Mode, hour int, rng *rand.Rand) (q Quote, ok bool) {
	n := 0
	for _, c := range quotes {
		if c.Mode == mode && c.Time.Matches(hour) {
			n++
		}
	}
	if n == 0 {
		return Quote{}, false
	}
	k := rng.IntN(n)
	for _, c := range quotes {
		if c.Mode == mode && c.Time.Matches(hour) {
			if k == 0 {
				return c, true
			}
			k--
		}
	}
	return Quote{}, false
}
