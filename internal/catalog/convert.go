package catalog

import (
	"fmt"

	"github.com/seqann/bedann/internal/gtf"
)

const convertBatchSize = 10000

// Convert loads a GTF file and writes it to a DuckDB catalog at dbPath.
// Returns the number of features written.
func Convert(gtfPath, dbPath string) (int, error) {
	d, err := CreateDuckDB(dbPath)
	if err != nil {
		return 0, err
	}
	defer d.Close()

	total := 0
	batch := make([]*gtf.Feature, 0, convertBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := d.InsertFeatures(batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	err = ReadGTF(gtfPath, func(f *gtf.Feature) error {
		batch = append(batch, f)
		if len(batch) == convertBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("convert %s: %w", gtfPath, err)
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
