package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is report content in tabular form. Headers fix the column
// order; each row maps header name to cell text, so sparse rows render
// as empty cells.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// row materializes one record in header order.
func (d Dataset) row(cells map[string]string) []string {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = cells[header]
	}
	return record
}

// CSVExporter renders a dataset as CSV, the default download format for
// milk production reports.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the dataset with a leading header record.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, cells := range data.Rows {
		if err := writer.Write(data.row(cells)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
