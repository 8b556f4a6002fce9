package annotate

import (
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"github.com/seqann/bedann/internal/bed"
	"github.com/seqann/bedann/internal/catalog"
)

// IntervalSource yields input intervals in order.
// bed.Parser implements this interface.
type IntervalSource interface {
	// Next returns the next interval, or nil, nil at end of input.
	Next() (*bed.Interval, error)
}

// RowWriter consumes output rows.
type RowWriter interface {
	WriteHeader() error
	Write(Row) error
	Flush() error
}

// Annotator annotates intervals against a feature catalog.
type Annotator struct {
	catalog catalog.Catalog
	policy  Policy
	scoring ScoreConfig
	logger  *zap.Logger
}

// NewAnnotator creates an annotator with the default ambiguity policy and
// scoring configuration.
func NewAnnotator(cat catalog.Catalog) *Annotator {
	return &Annotator{
		catalog: cat,
		policy:  DefaultPolicy,
		scoring: DefaultScoreConfig(),
		logger:  zap.NewNop(),
	}
}

// SetPolicy configures the ambiguity policy.
func (a *Annotator) SetPolicy(p Policy) {
	a.policy = p
}

// SetScoreConfig configures the scoring weights.
func (a *Annotator) SetScoreConfig(c ScoreConfig) {
	a.scoring = c
}

// SetLogger sets the logger for warning and info messages.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Annotate processes a single interval: candidate build, coverage, scoring,
// and ambiguity resolution. An interval with no overlapping transcript
// yields exactly one placeholder row.
func (a *Annotator) Annotate(iv bed.Interval) ([]Row, error) {
	cs, err := BuildCandidates(a.catalog, iv)
	if err != nil {
		return nil, err
	}

	if len(cs.Transcripts) == 0 {
		return []Row{placeholderRow(iv.Chrom, iv.Start, iv.End)}, nil
	}

	cands := a.scoreCandidates(iv, cs)

	// Descending score; equal scores break ties on ascending transcript id
	// so repeated runs produce identical output.
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Info.ID < cands[j].Info.ID
	})

	picks := Resolve(cands, a.policy)

	rows := make([]Row, 0, len(picks))
	for _, c := range picks {
		rows = append(rows, a.row(iv, c))
	}
	return rows, nil
}

// scoreCandidates computes the three coverage percentages and the composite
// score for every transcript in the set.
func (a *Annotator) scoreCandidates(iv bed.Interval, cs *CandidateSet) []*Candidate {
	cands := make([]*Candidate, 0, len(cs.Transcripts))

	for txID, info := range cs.Transcripts {
		txTotal := info.Length()
		txOverlap := OverlapLen(iv.Start, iv.End, info.Start-1, info.End)
		txPct := Pct(txOverlap, txTotal)

		exonPct := spanCoverage(iv, cs.Exons[txID])
		cdsPct := spanCoverage(iv, cs.CDS[txID])

		score := a.scoring.Score(txPct, cdsPct, exonPct,
			info.Biotype, info.TSL, info.GeneName != "", txTotal)

		cands = append(cands, &Candidate{
			Info:    info,
			TxPct:   txPct,
			ExonPct: exonPct,
			CDSPct:  cdsPct,
			Score:   score,
		})
	}

	return cands
}

// spanCoverage returns the percentage of the spans' aggregate length covered
// by the interval. No spans means 0.
func spanCoverage(iv bed.Interval, spans []Span) float64 {
	if len(spans) == 0 {
		return 0
	}
	var total, covered int64
	for _, s := range spans {
		total += s.End - s.Start
		covered += OverlapLen(iv.Start, iv.End, s.Start, s.End)
	}
	return Pct(covered, total)
}

// row projects one resolved candidate to its output record.
func (a *Annotator) row(iv bed.Interval, c *Candidate) Row {
	tsl := c.Info.TSL
	if tsl == "" {
		tsl = "NA"
	}
	return Row{
		Chrom:          iv.Chrom,
		Start:          iv.Start,
		End:            iv.End,
		TranscriptID:   c.Info.ID,
		GeneID:         c.Info.GeneID,
		GeneName:       c.Info.GeneName,
		Strand:         c.Info.Strand,
		Biotype:        c.Info.Biotype,
		TSL:            tsl,
		TxOverlapPct:   round3(c.TxPct),
		ExonOverlapPct: round3(c.ExonPct),
		CDSOverlapPct:  round3(c.CDSPct),
		Score:          round3(c.Score),
		TxStart:        c.Info.Start,
		TxEnd:          c.Info.End,
	}
}

// AnnotateAll annotates every interval from src in input order, writing rows
// to w and returning the run summary. Intervals are processed by a worker
// pool; rows are written in input-interval order, and the summary counters
// are updated only from the single collection goroutine.
func (a *Annotator) AnnotateAll(src IntervalSource, w RowWriter, workers int) (Summary, error) {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	var readErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			iv, err := src.Next()
			if err != nil {
				readErr = fmt.Errorf("read interval: %w", err)
				return
			}
			if iv == nil {
				return
			}
			items <- WorkItem{Seq: seq, Interval: *iv}
			seq++
		}
	}()

	results := a.ParallelAnnotate(items, workers)

	acc := newSummaryAccum()
	err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			a.logger.Warn("failed to annotate interval",
				zap.String("chrom", r.Interval.Chrom),
				zap.Int64("start", r.Interval.Start),
				zap.Int64("end", r.Interval.End),
				zap.Error(r.Err))
			return nil
		}
		for _, row := range r.Rows {
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
			acc.add(row)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	if readErr != nil {
		return Summary{}, readErr
	}

	if err := w.Flush(); err != nil {
		return Summary{}, err
	}
	return acc.summary(), nil
}
