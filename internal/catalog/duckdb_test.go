package catalog

import (
	"path/filepath"
	"testing"

	"github.com/seqann/bedann/internal/gtf"
)

func TestDuckDB(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.duckdb")

	d, err := CreateDuckDB(dbPath)
	if err != nil {
		t.Fatalf("CreateDuckDB: %v", err)
	}

	feats := []*gtf.Feature{
		{Seqname: "chr12", Source: "havana", Type: "transcript", Start: 25205246, End: 25250929,
			Score: ".", Strand: "-", Frame: ".",
			Attributes: `gene_id "ENSG00000133703"; transcript_id "ENST00000311936"; gene_name "KRAS";`},
		{Seqname: "chr12", Source: "havana", Type: "exon", Start: 25245274, End: 25245395,
			Score: ".", Strand: "-", Frame: ".",
			Attributes: `gene_id "ENSG00000133703"; transcript_id "ENST00000311936";`},
		{Seqname: "chr7", Source: "havana", Type: "transcript", Start: 100, End: 200,
			Score: ".", Strand: "+", Frame: ".",
			Attributes: `gene_id "ENSG2"; transcript_id "ENST2";`},
	}

	if err := d.InsertFeatures(feats); err != nil {
		t.Fatalf("InsertFeatures: %v", err)
	}

	count, err := d.FeatureCount()
	if err != nil {
		t.Fatalf("FeatureCount: %v", err)
	}
	if count != 3 {
		t.Errorf("FeatureCount = %d, want 3", count)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen and query
	d2, err := OpenDuckDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDuckDB: %v", err)
	}
	defer d2.Close()

	got, err := d2.Query("chr12", 25245300, 25245400)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Query returned %d features, want 2", len(got))
	}
	if got[0].Type != "transcript" || got[1].Type != "exon" {
		t.Errorf("unexpected feature order: %s, %s", got[0].Type, got[1].Type)
	}

	// Unknown chromosome must return ErrUnknownChrom, not an empty result
	if _, err := d2.Query("chrUn_KI270742v1", 0, 1000); err == nil {
		t.Error("expected ErrUnknownChrom for unknown chromosome")
	}

	chroms := d2.Chromosomes()
	if len(chroms) != 2 || chroms[0] != "chr12" || chroms[1] != "chr7" {
		t.Errorf("Chromosomes = %v, want [chr12 chr7]", chroms)
	}
}

func TestOpenDuckDB_MissingFile(t *testing.T) {
	_, err := OpenDuckDB(filepath.Join(t.TempDir(), "absent.duckdb"))
	if err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}
