package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/wmdialog/internal/model"
)

// JSONFormatter formats dialogs as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes dialogs as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, dialogs []model.Dialog) error {
	if dialogs == nil {
		dialogs = []model.Dialog{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dialogs)
}
