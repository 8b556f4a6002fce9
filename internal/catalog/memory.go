package catalog

import (
	"fmt"
	"sort"

	"github.com/seqann/bedann/internal/gtf"
)

// Memory is an in-memory catalog backed by per-chromosome interval trees.
// Chromosome names are kept exactly as they appear in the source file.
type Memory struct {
	trees map[string]*intervalTree
}

// NewMemory creates an empty in-memory catalog from grouped features.
func NewMemory(byChrom map[string][]*gtf.Feature) *Memory {
	trees := make(map[string]*intervalTree, len(byChrom))
	for chrom, feats := range byChrom {
		trees[chrom] = buildIntervalTree(feats)
	}
	return &Memory{trees: trees}
}

// LoadMemory loads a GTF file into an in-memory catalog.
func LoadMemory(path string) (*Memory, error) {
	byChrom := make(map[string][]*gtf.Feature)
	err := ReadGTF(path, func(f *gtf.Feature) error {
		byChrom[f.Seqname] = append(byChrom[f.Seqname], f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewMemory(byChrom), nil
}

// Query returns all features overlapping [start, end) on chrom.
func (m *Memory) Query(chrom string, start, end int64) ([]*gtf.Feature, error) {
	tree, ok := m.trees[chrom]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChrom, chrom)
	}
	return tree.findOverlaps(start, end), nil
}

// Chromosomes returns the sorted chromosome names in the catalog.
func (m *Memory) Chromosomes() []string {
	chroms := make([]string, 0, len(m.trees))
	for chrom := range m.trees {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// FeatureCount returns the total number of features in the catalog.
func (m *Memory) FeatureCount() int {
	count := 0
	for _, tree := range m.trees {
		count += len(tree.intervals)
	}
	return count
}

// Close is a no-op for the in-memory catalog.
func (m *Memory) Close() error { return nil }
