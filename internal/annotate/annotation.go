package annotate

// Row is one output record: an input interval paired with one scored
// transcript, or a placeholder when no transcript overlaps the interval.
// Percentages and the score are rounded to 3 decimal places.
type Row struct {
	Chrom string // input interval chromosome, no "chr" prefix
	Start int64  // input interval start (0-based)
	End   int64  // input interval end (exclusive)

	TranscriptID string // empty on placeholder rows
	GeneID       string
	GeneName     string // gene symbol, may be empty
	Strand       string
	Biotype      string
	TSL          string // "NA" when the transcript carries none; empty on placeholders

	TxOverlapPct   float64
	ExonOverlapPct float64
	CDSOverlapPct  float64
	Score          float64

	TxStart int64 // transcript span (1-based inclusive), 0 on placeholders
	TxEnd   int64
}

// IsPlaceholder reports whether the row carries no transcript.
func (r Row) IsPlaceholder() bool {
	return r.TranscriptID == ""
}

// placeholderRow builds the all-null output row for an interval with no
// overlapping transcript.
func placeholderRow(chrom string, start, end int64) Row {
	return Row{Chrom: chrom, Start: start, End: end}
}

// Summary aggregates counts across all non-placeholder rows of a run.
type Summary struct {
	UniqueGenes int
	Biotypes    map[string]int
}

// summaryAccum is the running state behind a Summary. It is owned by one
// annotation run and mutated only from the ordered collection path.
type summaryAccum struct {
	genes    map[string]struct{}
	biotypes map[string]int
}

func newSummaryAccum() *summaryAccum {
	return &summaryAccum{
		genes:    make(map[string]struct{}),
		biotypes: make(map[string]int),
	}
}

// add folds one output row into the running counters. Placeholder rows do
// not contribute. The gene symbol takes precedence over the gene id for
// uniqueness; a row with neither contributes nothing.
func (s *summaryAccum) add(r Row) {
	if r.IsPlaceholder() {
		return
	}
	if r.Biotype != "" {
		s.biotypes[r.Biotype]++
	}
	switch {
	case r.GeneName != "":
		s.genes[r.GeneName] = struct{}{}
	case r.GeneID != "":
		s.genes[r.GeneID] = struct{}{}
	}
}

func (s *summaryAccum) summary() Summary {
	return Summary{
		UniqueGenes: len(s.genes),
		Biotypes:    s.biotypes,
	}
}
