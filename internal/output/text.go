package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/wmdialog/internal/model"
)

// TextFormatter formats dialogs one per line for people.
type TextFormatter struct {
	opts FormatterOptions
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts FormatterOptions) *TextFormatter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &TextFormatter{opts: opts}
}

// Format writes one line per dialog.
func (f *TextFormatter) Format(w io.Writer, dialogs []model.Dialog) error {
	now := f.opts.Now()
	for i := range dialogs {
		if _, err := io.WriteString(w, f.formatDialog(&dialogs[i], now)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// formatDialog renders `<id>  pid <n>  <summary>  (shown <ago>, closes <when>)`.
func (f *TextFormatter) formatDialog(d *model.Dialog, now time.Time) string {
	summary := strings.Join(d.Lines, " ")
	if f.opts.SummaryMaxLen > 0 {
		summary = d.SummaryTruncated(f.opts.SummaryMaxLen)
	}

	closes := "never"
	if at, ok := d.ExpiresAt(); ok {
		closes = humanize.RelTime(at, now, "ago", "from now")
	}

	return fmt.Sprintf("%s  pid %d  %s  (shown %s, closes %s)",
		d.ID,
		d.PID,
		summary,
		humanize.RelTime(d.StartedTime(), now, "ago", "from now"),
		closes,
	)
}
