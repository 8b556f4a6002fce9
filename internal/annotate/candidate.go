package annotate

import (
	"errors"
	"fmt"

	"github.com/seqann/bedann/internal/bed"
	"github.com/seqann/bedann/internal/catalog"
	"github.com/seqann/bedann/internal/gtf"
)

// Span is a half-open genomic range.
type Span struct {
	Start int64 // 0-based, inclusive
	End   int64 // 0-based, exclusive
}

// TranscriptInfo holds the fields extracted from one transcript record.
// Start and End keep the catalog's 1-based inclusive coordinates.
type TranscriptInfo struct {
	ID       string
	GeneID   string
	GeneName string // gene symbol, may be empty
	Biotype  string // may be empty
	Strand   string
	Start    int64
	End      int64
	TSL      string // transcript support level, may be empty
}

// Length returns the transcript length in bases (1-based inclusive span).
func (t *TranscriptInfo) Length() int64 {
	n := t.End - t.Start + 1
	if n < 0 {
		return 0
	}
	return n
}

// CandidateSet holds all transcripts overlapping one query interval, with
// their exon and CDS spans, keyed by transcript id. It is scoped to a single
// interval and never shared across intervals.
type CandidateSet struct {
	Transcripts map[string]*TranscriptInfo
	Exons       map[string][]Span
	CDS         map[string][]Span
}

// BuildCandidates queries the catalog for one interval and groups the
// returned feature lines by transcript identity.
//
// Chromosome naming variants are tried in order: the bare name, then the
// name with a "chr" prefix. The first variant whose query yields at least
// one transcript-type line wins; a variant yielding only exon/CDS lines is
// not accepted. An unknown chromosome for one variant is not an error, the
// next variant is tried.
func BuildCandidates(cat catalog.Catalog, iv bed.Interval) (*CandidateSet, error) {
	cs := &CandidateSet{
		Transcripts: make(map[string]*TranscriptInfo),
		Exons:       make(map[string][]Span),
		CDS:         make(map[string][]Span),
	}

	for _, chrom := range []string{iv.Chrom, "chr" + iv.Chrom} {
		feats, err := cat.Query(chrom, iv.Start, iv.End)
		if err != nil {
			if errors.Is(err, catalog.ErrUnknownChrom) {
				continue
			}
			return nil, fmt.Errorf("query %s: %w", iv, err)
		}

		for _, f := range feats {
			cs.add(iv, f)
		}

		if len(cs.Transcripts) > 0 {
			break
		}
	}

	return cs, nil
}

// add folds one raw feature line into the set. Lines not overlapping the
// query interval, missing a transcript id, or of an irrelevant feature type
// are ignored.
func (cs *CandidateSet) add(iv bed.Interval, f *gtf.Feature) {
	// Convert 1-based inclusive to half-open before the overlap test.
	start0, end0 := f.Start-1, f.End
	if OverlapLen(iv.Start, iv.End, start0, end0) <= 0 {
		return
	}

	attrs := gtf.ParseAttributes(f.Attributes)
	txID := attrs["transcript_id"]
	if txID == "" {
		return
	}

	switch f.Type {
	case gtf.FeatureTranscript:
		biotype := attrs["transcript_biotype"]
		if biotype == "" {
			biotype = attrs["gene_biotype"]
		}
		tsl := attrs["transcript_support_level"]
		if tsl == "" {
			tsl = attrs["tsl"]
		}
		geneName := attrs["gene_name"]
		if geneName == "" {
			geneName = attrs["gene"]
		}
		// A repeated transcript line for the same id overwrites the
		// earlier one (last write wins).
		cs.Transcripts[txID] = &TranscriptInfo{
			ID:       txID,
			GeneID:   attrs["gene_id"],
			GeneName: geneName,
			Biotype:  biotype,
			Strand:   f.Strand,
			Start:    f.Start,
			End:      f.End,
			TSL:      tsl,
		}

	case gtf.FeatureExon:
		cs.Exons[txID] = append(cs.Exons[txID], Span{Start: start0, End: end0})

	case gtf.FeatureCDS:
		cs.CDS[txID] = append(cs.CDS[txID], Span{Start: start0, End: end0})
	}
}
