// Package model defines the data describing a running dialog.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Dialog describes one running wmdialog instance. It is what a dialog reports
// about itself over the session bus and what `wmdialog list` prints.
type Dialog struct {
	ID        string   `json:"id" yaml:"id"`
	PID       int      `json:"pid" yaml:"pid"`
	Lines     []string `json:"lines" yaml:"lines"`
	StartedAt int64    `json:"started_at" yaml:"started_at"` // Unix milliseconds
	TimeoutMs int64    `json:"timeout_ms" yaml:"timeout_ms"` // 0 = never times out
}

// Validation errors.
var (
	ErrEmptyID        = errors.New("id cannot be empty")
	ErrInvalidID      = errors.New("id must be a ULID")
	ErrNoLines        = errors.New("dialog must have at least one line")
	ErrInvalidTimeout = errors.New("timeout must not be negative")
	ErrInvalidStart   = errors.New("started_at must be greater than 0")
)

// NewDialog creates a Dialog with a generated ULID, started now.
func NewDialog(pid int, lines []string, timeout time.Duration) (*Dialog, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Dialog{
		ID:        id.String(),
		PID:       pid,
		Lines:     append([]string(nil), lines...),
		StartedAt: now.UnixMilli(),
		TimeoutMs: timeout.Milliseconds(),
	}, nil
}

// ParseID validates a dialog ID and returns it in canonical upper case.
func ParseID(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyID
	}
	id, err := ulid.ParseStrict(strings.ToUpper(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id.String(), nil
}

// Validate checks that the dialog has all required fields.
func (d *Dialog) Validate() error {
	if _, err := ParseID(d.ID); err != nil {
		return err
	}
	if len(d.Lines) == 0 {
		return ErrNoLines
	}
	if d.StartedAt <= 0 {
		return ErrInvalidStart
	}
	if d.TimeoutMs < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// StartedTime returns the start timestamp as a time.Time.
func (d *Dialog) StartedTime() time.Time {
	return time.UnixMilli(d.StartedAt)
}

// Timeout returns the configured timeout. Zero means the dialog waits for a click.
func (d *Dialog) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

// ExpiresAt returns when the timer dismisses the dialog, and false if it never does.
func (d *Dialog) ExpiresAt() (time.Time, bool) {
	if d.TimeoutMs <= 0 {
		return time.Time{}, false
	}
	return d.StartedTime().Add(d.Timeout()), true
}

// Summary returns the first line of the dialog.
func (d *Dialog) Summary() string {
	if len(d.Lines) == 0 {
		return ""
	}
	return d.Lines[0]
}

// SummaryTruncated returns the text truncated to maxLen runes on one line.
// If the text is longer, it is truncated and "..." is appended.
func (d *Dialog) SummaryTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Collapse whitespace and line breaks to single spaces
	text := []rune(strings.Join(strings.Fields(strings.Join(d.Lines, " ")), " "))

	if len(text) <= maxLen {
		return string(text)
	}
	if maxLen <= 3 {
		return string(text[:maxLen])
	}
	return string(text[:maxLen-3]) + "..."
}
