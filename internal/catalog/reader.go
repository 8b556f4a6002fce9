package catalog

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seqann/bedann/internal/gtf"
)

// ReadGTF streams features from a (optionally gzipped) GTF file, calling fn
// for each successfully parsed record. Comment lines and malformed lines are
// skipped. An open or read failure is fatal; a parse failure is not.
func ReadGTF(path string, fn func(*gtf.Feature) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".bgz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return readGTF(reader, fn)
}

func readGTF(reader io.Reader, fn func(*gtf.Feature) error) error {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long attribute columns
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		feat, err := gtf.ParseLine(line)
		if err != nil {
			continue // skip malformed lines
		}

		if err := fn(feat); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan GTF: %w", err)
	}
	return nil
}
