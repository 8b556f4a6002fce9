// Package catalog provides region-indexed access to a GTF feature catalog.
package catalog

import (
	"errors"
	"strings"

	"github.com/seqann/bedann/internal/gtf"
)

// ErrUnknownChrom is returned by Query when the chromosome name is entirely
// absent from the catalog. Callers treat it as "try the next name variant",
// not as a hard failure.
var ErrUnknownChrom = errors.New("chromosome not in catalog")

// Catalog answers region queries over a feature catalog.
// Query coordinates are 0-based half-open; returned features keep their
// native 1-based inclusive coordinates. Chromosome names are matched exactly
// as they appear in the catalog (no "chr" normalization), so callers can
// probe naming variants.
type Catalog interface {
	// Query returns all features overlapping [start, end) on chrom.
	// Returns ErrUnknownChrom when chrom is not present at all.
	Query(chrom string, start, end int64) ([]*gtf.Feature, error)

	// Chromosomes returns the sorted chromosome names in the catalog.
	Chromosomes() []string

	// Close releases catalog resources.
	Close() error
}

// IsDuckDB reports whether a path looks like a DuckDB catalog file.
func IsDuckDB(path string) bool {
	return strings.HasSuffix(path, ".duckdb") || strings.HasSuffix(path, ".db")
}

// Open opens a catalog, choosing the backend from the path: DuckDB files are
// opened as indexed catalogs, anything else is loaded as a (optionally
// gzipped) GTF file into memory.
func Open(path string) (Catalog, error) {
	if IsDuckDB(path) {
		return OpenDuckDB(path)
	}
	return LoadMemory(path)
}
