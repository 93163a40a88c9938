package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/wmdialog/internal/model"
)

// IDsFormatter outputs just the dialog IDs, one per line.
// Useful for piping to other commands (e.g., wmdialog dismiss).
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes dialog IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, dialogs []model.Dialog) error {
	for _, d := range dialogs {
		if _, err := fmt.Fprintln(w, d.ID); err != nil {
			return err
		}
	}
	return nil
}
