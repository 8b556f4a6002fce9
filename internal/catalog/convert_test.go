package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConvert(t *testing.T) {
	tmpDir := t.TempDir()
	gtfPath := filepath.Join(tmpDir, "in.gtf")
	dbPath := filepath.Join(tmpDir, "out.duckdb")

	gtfData := "chr1\thavana\ttranscript\t100\t500\t.\t+\t.\tgene_id \"G1\"; transcript_id \"T1\";\n" +
		"chr1\thavana\texon\t100\t200\t.\t+\t.\tgene_id \"G1\"; transcript_id \"T1\";\n"
	if err := os.WriteFile(gtfPath, []byte(gtfData), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := Convert(gtfPath, dbPath)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 2 {
		t.Errorf("Convert wrote %d features, want 2", n)
	}

	d, err := OpenDuckDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDuckDB: %v", err)
	}
	defer d.Close()

	feats, err := d.Query("chr1", 0, 1000)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(feats) != 2 {
		t.Errorf("Query returned %d features, want 2", len(feats))
	}
}

func TestConvert_MissingInput(t *testing.T) {
	tmpDir := t.TempDir()
	_, err := Convert(filepath.Join(tmpDir, "absent.gtf"), filepath.Join(tmpDir, "out.duckdb"))
	if err == nil {
		t.Fatal("expected error for missing GTF input")
	}
}
