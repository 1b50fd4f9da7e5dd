package export

import (
	"encoding/json"
	"fmt"
)

// JSONExporter renders Dataset rows as a JSON array of objects.
type JSONExporter struct{}

// NewJSONExporter builds a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Render encodes rows, filling absent headers with empty strings.
func (e *JSONExporter) Render(data Dataset) ([]byte, error) {
	rows := make([]map[string]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		record := make(map[string]string, len(data.Headers))
		for _, header := range data.Headers {
			record[header] = row[header]
		}
		rows = append(rows, record)
	}
	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}
	return payload, nil
}
