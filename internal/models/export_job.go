package models

import (
	"database/sql/driver"
	"time"
)

// ExportFormat enumerates supported lead export formats.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatPDF  ExportFormat = "pdf"
)

// Valid reports whether the format is supported.
func (f ExportFormat) Valid() bool {
	switch f {
	case ExportFormatCSV, ExportFormatJSON, ExportFormatPDF:
		return true
	}
	return false
}

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob is persisted metadata for an asynchronous lead export file.
type ExportJob struct {
	ID           string       `db:"id" json:"id"`
	Format       ExportFormat `db:"format" json:"format"`
	Params       ExportParams `db:"params" json:"params"`
	Status       ExportStatus `db:"status" json:"status"`
	Progress     int          `db:"progress" json:"progress"`
	RowCount     int          `db:"row_count" json:"rowCount"`
	ResultURL    *string      `db:"result_url" json:"resultUrl,omitempty"`
	CreatedBy    string       `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	FinishedAt   *time.Time   `db:"finished_at" json:"finishedAt,omitempty"`
	ErrorMessage *string      `db:"error_message" json:"errorMessage,omitempty"`
}

// ExportParams stores the lead filters of an export request as JSONB.
type ExportParams struct {
	Status   LeadStatus `json:"status,omitempty"`
	Source   string     `json:"source,omitempty"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
}

// Filter converts persisted params back into a lead filter.
func (p ExportParams) Filter() LeadFilter {
	return LeadFilter{Status: p.Status, Source: p.Source, DateFrom: p.DateFrom, DateTo: p.DateTo}
}

// Value marshals params to JSON for persistence.
func (p ExportParams) Value() (driver.Value, error) {
	return jsonValue(p, "export params")
}

// Scan unmarshals JSON payloads into the params struct.
func (p *ExportParams) Scan(value interface{}) error {
	var out ExportParams
	if _, err := jsonScan(value, &out, "export params"); err != nil {
		return err
	}
	*p = out
	return nil
}
