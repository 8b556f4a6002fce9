// Package output provides annotation row formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/seqann/bedann/internal/annotate"
)

// Columns is the shared column set of the tab and CSV writers.
var Columns = []string{
	"input_chr",
	"input_start",
	"input_end",
	"gene",
	"strand",
	"feature_biotype",
	"ensembl_id",
	"tsl",
	"hugo",
	"tx_overlap_pct",
	"exon_overlap_pct",
	"cds_overlap_pct",
	"priority_score",
	"transcript_start",
	"transcript_end",
}

// TabWriter writes annotation rows in tab-delimited format.
// Absent fields are written as "-".
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString("#" + strings.Join(Columns, "\t") + "\n")
	return err
}

// Write writes a single annotation row.
func (tw *TabWriter) Write(r annotate.Row) error {
	_, err := tw.w.WriteString(strings.Join(rowFields(r, "-"), "\t") + "\n")
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// rowFields projects a row onto the shared column set, substituting missing
// for empty string fields. Placeholder rows keep their zero percentages.
func rowFields(r annotate.Row, missing string) []string {
	orDash := func(s string) string {
		if s == "" {
			return missing
		}
		return s
	}

	txStart, txEnd := missing, missing
	if !r.IsPlaceholder() {
		txStart = strconv.FormatInt(r.TxStart, 10)
		txEnd = strconv.FormatInt(r.TxEnd, 10)
	}

	return []string{
		r.Chrom,
		strconv.FormatInt(r.Start, 10),
		strconv.FormatInt(r.End, 10),
		orDash(r.GeneID),
		orDash(r.Strand),
		orDash(r.Biotype),
		orDash(r.TranscriptID),
		orDash(r.TSL),
		orDash(r.GeneName),
		formatPct(r.TxOverlapPct),
		formatPct(r.ExonOverlapPct),
		formatPct(r.CDSOverlapPct),
		formatPct(r.Score),
		txStart,
		txEnd,
	}
}

// formatPct renders a 3-decimal-rounded value without trailing zero noise.
func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
