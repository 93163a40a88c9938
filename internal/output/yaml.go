package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wmdialog/internal/model"
)

// YAMLFormatter formats dialogs as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes dialogs as YAML.
func (f *YAMLFormatter) Format(w io.Writer, dialogs []model.Dialog) error {
	if dialogs == nil {
		dialogs = []model.Dialog{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(dialogs); err != nil {
		return err
	}
	return encoder.Close()
}
