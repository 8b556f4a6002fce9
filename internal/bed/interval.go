// Package bed provides BED interval parsing functionality.
package bed

import "fmt"

// Interval is a genomic interval in 0-based half-open coordinates.
// Chrom carries no "chr" prefix.
type Interval struct {
	Chrom string
	Start int64 // 0-based, inclusive
	End   int64 // 0-based, exclusive
}

// Length returns the interval length in bases.
func (iv Interval) Length() int64 {
	return iv.End - iv.Start
}

// String formats the interval as chrom:start-end.
func (iv Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", iv.Chrom, iv.Start, iv.End)
}
