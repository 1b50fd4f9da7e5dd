package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Name", "Email", "Source"},
		Rows: []map[string]string{
			{"Name": "Asha, R", "Email": "asha@example.com", "Source": "google"},
			{"Name": "Ben", "Email": "ben@example.com"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Email,Source", lines[0])
	assert.Equal(t, `"Asha, R",asha@example.com,google`, lines[1])
	assert.Equal(t, "Ben,ben@example.com,", lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestJSONExporterFillsMissingColumns(t *testing.T) {
	out, err := NewJSONExporter().Render(sampleDataset())
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 2)
	value, ok := rows[1]["Source"]
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Lead Export")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))
	long := strings.Repeat("a", 60)
	assert.Len(t, []rune(truncate(long)), maxPDFCellRunes)
}
