// Package output provides output formatters for running dialogs.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmylchreest/wmdialog/internal/model"
)

// Formatter formats dialogs for output.
type Formatter interface {
	// Format writes formatted dialogs to the writer.
	Format(w io.Writer, dialogs []model.Dialog) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatText FormatType = "text"
	FormatJSON FormatType = "json"
	FormatYAML FormatType = "yaml"
	FormatIDs  FormatType = "ids"
)

// ValidFormats returns all valid format values.
func ValidFormats() []FormatType {
	return []FormatType{FormatText, FormatJSON, FormatYAML, FormatIDs}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	for _, f := range ValidFormats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q, must be one of: %v", s, ValidFormats())
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	SummaryMaxLen int              // Maximum summary length in text output (0 = unlimited)
	Now           func() time.Time // Clock for relative times, time.Now when nil
}

// DefaultFormatterOptions returns sensible defaults for text output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		SummaryMaxLen: 60,
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatIDs:
		return NewIDsFormatter()
	case FormatText:
		fallthrough
	default:
		return NewTextFormatter(opts)
	}
}
