package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Duration is a dialog timeout as written in the config file. It accepts Go
// duration strings ("5s", "1m30s"), a quoted number of seconds ("5", "2.5")
// matching the -to flag, or "never". Zero never times out.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if s == "" || s == "never" {
		*d = 0
		return nil
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(secs, 0) && !math.IsNaN(secs) {
		*d = Duration(secs * float64(time.Second))
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: want seconds, a duration like \"5s\", or \"never\"", s)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler; zero is written as "never".
func (d Duration) MarshalText() ([]byte, error) {
	if d == 0 {
		return []byte("never"), nil
	}
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
