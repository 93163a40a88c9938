package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wmdialog/internal/model"
)

var testNow = time.UnixMilli(1_700_000_010_000)

func testDialogs() []model.Dialog {
	return []model.Dialog{
		{
			ID:        "01ARZ3NDEKTSV4RRFFQ69G5FAV",
			PID:       101,
			Lines:     []string{"build finished", "all green"},
			StartedAt: testNow.Add(-3 * time.Second).UnixMilli(),
			TimeoutMs: 8000,
		},
		{
			ID:        "01BX5ZZKBKACTAV9WEVGEMMVRZ",
			PID:       202,
			Lines:     []string{"click me"},
			StartedAt: testNow.Add(-2 * time.Hour).UnixMilli(),
		},
	}
}

func testOptions() FormatterOptions {
	opts := DefaultFormatterOptions()
	opts.Now = func() time.Time { return testNow }
	return opts
}

func TestParseFormat(t *testing.T) {
	for _, f := range ValidFormats() {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewFormatter(t *testing.T) {
	opts := testOptions()
	assert.IsType(t, &TextFormatter{}, NewFormatter(FormatText, opts))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, opts))
	assert.IsType(t, &IDsFormatter{}, NewFormatter(FormatIDs, opts))
	assert.IsType(t, &TextFormatter{}, NewFormatter("", opts))
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	err := NewTextFormatter(testOptions()).Format(&buf, testDialogs())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"01ARZ3NDEKTSV4RRFFQ69G5FAV  pid 101  build finished all green  (shown 3 seconds ago, closes 5 seconds from now)",
		lines[0])
	assert.Equal(t,
		"01BX5ZZKBKACTAV9WEVGEMMVRZ  pid 202  click me  (shown 2 hours ago, closes never)",
		lines[1])
}

func TestTextFormatter_Truncates(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions()
	opts.SummaryMaxLen = 10

	err := NewTextFormatter(opts).Format(&buf, testDialogs()[:1])
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "  build f...  ")
}

func TestTextFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(testOptions()).Format(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, testDialogs()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", decoded[0]["id"])
	assert.Equal(t, float64(8000), decoded[0]["timeout_ms"])
	assert.Equal(t, []any{"build finished", "all green"}, decoded[0]["lines"])
}

func TestJSONFormatter_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter().Format(&buf, testDialogs()))

	out := buf.String()
	assert.Contains(t, out, "- id: 01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.Contains(t, out, "pid: 202")

	var decoded []model.Dialog
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testDialogs(), decoded)
}

func TestIDsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIDsFormatter().Format(&buf, testDialogs()))
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV\n01BX5ZZKBKACTAV9WEVGEMMVRZ\n", buf.String())
}
