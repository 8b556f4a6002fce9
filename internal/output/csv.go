package output

import (
	"encoding/csv"
	"io"

	"github.com/seqann/bedann/internal/annotate"
)

// CSVWriter writes annotation rows as CSV, mirroring the tab column set.
// Absent fields are written as empty cells.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column header record.
func (cw *CSVWriter) WriteHeader() error {
	return cw.w.Write(Columns)
}

// Write writes a single annotation row.
func (cw *CSVWriter) Write(r annotate.Row) error {
	return cw.w.Write(rowFields(r, ""))
}

// Flush flushes buffered output and reports any deferred write error.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
