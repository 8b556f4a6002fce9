package annotate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqann/bedann/internal/bed"
	"github.com/seqann/bedann/internal/catalog"
	"github.com/seqann/bedann/internal/gtf"
)

func txFeature(chrom string, start, end int64, attrs string) *gtf.Feature {
	return &gtf.Feature{Seqname: chrom, Source: "test", Type: gtf.FeatureTranscript,
		Start: start, End: end, Score: ".", Strand: "+", Frame: ".", Attributes: attrs}
}

func subFeature(chrom, ftype string, start, end int64, txID string) *gtf.Feature {
	return &gtf.Feature{Seqname: chrom, Source: "test", Type: ftype,
		Start: start, End: end, Score: ".", Strand: "+", Frame: ".",
		Attributes: `transcript_id "` + txID + `";`}
}

func TestBuildCandidates_GroupsByTranscript(t *testing.T) {
	cat := catalog.NewMemory(map[string][]*gtf.Feature{
		"1": {
			txFeature("1", 900, 2500, `gene_id "G1"; transcript_id "T1"; gene_name "GENE1"; transcript_biotype "protein_coding"; transcript_support_level "1";`),
			subFeature("1", gtf.FeatureExon, 1001, 1500, "T1"),
			subFeature("1", gtf.FeatureCDS, 1101, 1300, "T1"),
			txFeature("1", 1500, 3000, `gene_id "G2"; transcript_id "T2";`),
		},
	})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "1", Start: 1000, End: 2000})
	require.NoError(t, err)

	require.Len(t, cs.Transcripts, 2)

	info := cs.Transcripts["T1"]
	require.NotNil(t, info)
	assert.Equal(t, "G1", info.GeneID)
	assert.Equal(t, "GENE1", info.GeneName)
	assert.Equal(t, "protein_coding", info.Biotype)
	assert.Equal(t, "1", info.TSL)
	assert.Equal(t, int64(900), info.Start)
	assert.Equal(t, int64(2500), info.End)
	assert.Equal(t, int64(1601), info.Length())

	// Exon and CDS spans are converted to half-open coordinates.
	require.Len(t, cs.Exons["T1"], 1)
	assert.Equal(t, Span{Start: 1000, End: 1500}, cs.Exons["T1"][0])
	require.Len(t, cs.CDS["T1"], 1)
	assert.Equal(t, Span{Start: 1100, End: 1300}, cs.CDS["T1"][0])
}

func TestBuildCandidates_DiscardsNonOverlapping(t *testing.T) {
	cat := catalog.NewMemory(map[string][]*gtf.Feature{
		"1": {
			txFeature("1", 900, 2500, `gene_id "G1"; transcript_id "T1";`),
			// 1-based [2001, 2200] is half-open [2000, 2200): touches the
			// query end but does not overlap.
			subFeature("1", gtf.FeatureExon, 2001, 2200, "T1"),
		},
	})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "1", Start: 1000, End: 2000})
	require.NoError(t, err)
	assert.Empty(t, cs.Exons["T1"])
}

func TestBuildCandidates_IgnoresOtherTypesAndMissingID(t *testing.T) {
	cat := catalog.NewMemory(map[string][]*gtf.Feature{
		"1": {
			txFeature("1", 900, 2500, `gene_id "G1"; transcript_id "T1";`),
			{Seqname: "1", Type: "five_prime_utr", Start: 1000, End: 1100, Strand: "+",
				Attributes: `transcript_id "T1";`},
			{Seqname: "1", Type: "gene", Start: 900, End: 2500, Strand: "+",
				Attributes: `gene_id "G1";`},
			// transcript line with no transcript_id is ignored
			txFeature("1", 1000, 1200, `gene_id "G3";`),
		},
	})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "1", Start: 1000, End: 2000})
	require.NoError(t, err)
	assert.Len(t, cs.Transcripts, 1)
	assert.Empty(t, cs.Exons)
	assert.Empty(t, cs.CDS)
}

func TestBuildCandidates_ChrPrefixFallback(t *testing.T) {
	cat := catalog.NewMemory(map[string][]*gtf.Feature{
		"chr1": {
			txFeature("chr1", 900, 2500, `gene_id "G1"; transcript_id "T1";`),
		},
	})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "1", Start: 1000, End: 2000})
	require.NoError(t, err)
	assert.Len(t, cs.Transcripts, 1)
}

func TestBuildCandidates_TranscriptLineDrivesFoundState(t *testing.T) {
	// Bare name yields only an exon line; found-state requires a transcript
	// record, so the builder must still probe the chr-prefixed variant.
	cat := catalog.NewMemory(map[string][]*gtf.Feature{
		"1": {
			subFeature("1", gtf.FeatureExon, 1001, 1500, "T0"),
		},
		"chr1": {
			txFeature("chr1", 900, 2500, `gene_id "G1"; transcript_id "T1";`),
		},
	})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "1", Start: 1000, End: 2000})
	require.NoError(t, err)
	require.Len(t, cs.Transcripts, 1)
	assert.NotNil(t, cs.Transcripts["T1"])
}

func TestBuildCandidates_UnknownChromEverywhere(t *testing.T) {
	cat := catalog.NewMemory(map[string][]*gtf.Feature{})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "99", Start: 0, End: 100})
	require.NoError(t, err)
	assert.Empty(t, cs.Transcripts)
}

func TestBuildCandidates_DuplicateTranscriptLastWins(t *testing.T) {
	cat := catalog.NewMemory(map[string][]*gtf.Feature{
		"1": {
			txFeature("1", 900, 2500, `gene_id "G1"; transcript_id "T1"; gene_name "OLD";`),
			txFeature("1", 950, 2400, `gene_id "G1"; transcript_id "T1"; gene_name "NEW";`),
		},
	})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "1", Start: 1000, End: 2000})
	require.NoError(t, err)
	require.Len(t, cs.Transcripts, 1)
	assert.Equal(t, "NEW", cs.Transcripts["T1"].GeneName)
	assert.Equal(t, int64(950), cs.Transcripts["T1"].Start)
}

func TestBuildCandidates_BiotypeAndTSLFallbacks(t *testing.T) {
	cat := catalog.NewMemory(map[string][]*gtf.Feature{
		"1": {
			txFeature("1", 900, 2500, `gene_id "G1"; transcript_id "T1"; gene_biotype "lincRNA"; tsl "2"; gene "SYM1";`),
		},
	})

	cs, err := BuildCandidates(cat, bed.Interval{Chrom: "1", Start: 1000, End: 2000})
	require.NoError(t, err)

	info := cs.Transcripts["T1"]
	require.NotNil(t, info)
	assert.Equal(t, "lincRNA", info.Biotype, "gene_biotype fallback")
	assert.Equal(t, "2", info.TSL, "tsl fallback")
	assert.Equal(t, "SYM1", info.GeneName, "gene fallback")
}

// failingCatalog returns a hard error (not a lookup failure) for any query.
type failingCatalog struct{}

func (failingCatalog) Query(string, int64, int64) ([]*gtf.Feature, error) {
	return nil, errors.New("io failure")
}
func (failingCatalog) Chromosomes() []string { return nil }
func (failingCatalog) Close() error          { return nil }

func TestBuildCandidates_HardErrorPropagates(t *testing.T) {
	_, err := BuildCandidates(failingCatalog{}, bed.Interval{Chrom: "1", Start: 0, End: 10})
	assert.Error(t, err)
}
