package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"sort"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/seqann/bedann/internal/gtf"
)

// DuckDB provides region queries over a feature catalog stored in a DuckDB
// database, the pre-sorted, pre-indexed form produced by "bedann convert".
type DuckDB struct {
	db     *sql.DB
	path   string
	chroms map[string]bool
}

// OpenDuckDB opens an existing catalog database for querying.
// The file and its features table are validated once here; a missing file or
// schema is a fatal open error, not a per-query one.
func OpenDuckDB(path string) (*DuckDB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb catalog %s: %w", path, err)
	}

	d := &DuckDB{db: db, path: path}

	chroms, err := d.loadChromosomes()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog %s has no features table (not a bedann catalog?): %w", path, err)
	}
	d.chroms = chroms

	return d, nil
}

// CreateDuckDB creates a new, empty catalog database with its schema.
func CreateDuckDB(path string) (*DuckDB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("create duckdb catalog %s: %w", path, err)
	}

	d := &DuckDB{db: db, path: path, chroms: make(map[string]bool)}
	if err := d.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DuckDB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS features (
			seqname VARCHAR,
			source VARCHAR,
			type VARCHAR,
			start BIGINT,
			end_ BIGINT,
			score VARCHAR,
			strand VARCHAR,
			frame VARCHAR,
			attributes VARCHAR
		);

		CREATE INDEX IF NOT EXISTS idx_features_pos ON features(seqname, start, end_);
		CREATE INDEX IF NOT EXISTS idx_features_type ON features(type);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertFeatures inserts a batch of features inside one transaction.
func (d *DuckDB) InsertFeatures(feats []*gtf.Feature) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO features (seqname, source, type, start, end_, score, strand, frame, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range feats {
		if _, err := stmt.Exec(f.Seqname, f.Source, f.Type, f.Start, f.End,
			f.Score, f.Strand, f.Frame, f.Attributes); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert feature: %w", err)
		}
		d.chroms[f.Seqname] = true
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// Query returns all features overlapping [start, end) on chrom, in start
// order. Returns ErrUnknownChrom when chrom is absent from the catalog.
func (d *DuckDB) Query(chrom string, start, end int64) ([]*gtf.Feature, error) {
	if !d.chroms[chrom] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChrom, chrom)
	}

	// Features are 1-based inclusive: [s, e] overlaps the half-open query
	// [start, end) iff s <= end and e > start.
	rows, err := d.db.Query(`
		SELECT seqname, source, type, start, end_, score, strand, frame, attributes
		FROM features
		WHERE seqname = ? AND start <= ? AND end_ > ?
		ORDER BY start
	`, chrom, end, start)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	var feats []*gtf.Feature
	for rows.Next() {
		f := &gtf.Feature{}
		if err := rows.Scan(&f.Seqname, &f.Source, &f.Type, &f.Start, &f.End,
			&f.Score, &f.Strand, &f.Frame, &f.Attributes); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		feats = append(feats, f)
	}
	return feats, rows.Err()
}

// Chromosomes returns the sorted chromosome names in the catalog.
func (d *DuckDB) Chromosomes() []string {
	chroms := make([]string, 0, len(d.chroms))
	for chrom := range d.chroms {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// FeatureCount returns the total number of features in the catalog.
func (d *DuckDB) FeatureCount() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM features").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (d *DuckDB) Close() error {
	return d.db.Close()
}

func (d *DuckDB) loadChromosomes() (map[string]bool, error) {
	rows, err := d.db.Query("SELECT DISTINCT seqname FROM features")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chroms := make(map[string]bool)
	for rows.Next() {
		var chrom string
		if err := rows.Scan(&chrom); err != nil {
			return nil, err
		}
		chroms[chrom] = true
	}
	return chroms, rows.Err()
}
