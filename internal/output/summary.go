package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/seqann/bedann/internal/annotate"
)

// WriteSummary writes the run summary as key\tvalue lines: the unique gene
// count followed by per-biotype counts in lexical order.
func WriteSummary(w io.Writer, s annotate.Summary) error {
	if _, err := fmt.Fprintf(w, "unique_genes\t%d\n", s.UniqueGenes); err != nil {
		return err
	}

	biotypes := make([]string, 0, len(s.Biotypes))
	for bt := range s.Biotypes {
		biotypes = append(biotypes, bt)
	}
	sort.Strings(biotypes)

	for _, bt := range biotypes {
		if _, err := fmt.Fprintf(w, "biotype\t%s\t%d\n", bt, s.Biotypes[bt]); err != nil {
			return err
		}
	}
	return nil
}
