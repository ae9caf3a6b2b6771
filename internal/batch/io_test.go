package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fwPull/internal/firmware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRequests(t *testing.T) {
	path := writeFile(t, `[{"Vendor": "Dell", "Model": "PowerEdge R630"}, {"Vendor": "Oracle", "Model": "T7-1"}]`)

	reqs, err := ReadRequests(path)
	require.NoError(t, err)
	assert.Equal(t, []firmware.Request{
		{Vendor: "Dell", Model: "PowerEdge R630"},
		{Vendor: "Oracle", Model: "T7-1"},
	}, reqs)
}

func TestReadRequests_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(t.TempDir(), "none.json")},
		{"malformed", writeFile(t, `{"Vendor": "Dell"`)},
		{"not an array", writeFile(t, `{"Vendor": "Dell", "Model": "R630"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRequests(tt.path)
			var ie *InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.path, ie.Path)
		})
	}
}

func TestWriteRecords_File(t *testing.T) {
	rec := firmware.NewRecord(firmware.Request{Vendor: "Dell", Model: "R630"})
	rec.SetCurrent("2.1")
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteRecords(path, nil, []firmware.Record{rec}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "Vendor": "Dell",
    "Model": "R630",
    "Current": "2.1",
    "Approved": null
  }
]`, string(data))
}

func TestWriteRecords_StdoutEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords("", &buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteRecords_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.json")

	err := WriteRecords(path, nil, nil)
	var oe *OutputError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, path, oe.Path)
}
