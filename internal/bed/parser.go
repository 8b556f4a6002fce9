// Package bed provides BED interval parsing functionality.
package bed

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/seqann/bedann/internal/gtf"
)

// Parser reads intervals from a BED file.
// Malformed lines are skipped, never fatal; Skipped reports how many.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	skipped    int
}

// NewParser creates a new BED parser for the given file.
// Supports both plain BED and gzipped BED (.bed.gz) files.
// Use "-" to read from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bed file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read bed file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek bed file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next valid interval.
// Returns nil, nil when there are no more intervals.
func (p *Parser) Next() (*Interval, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if len(line) == 0 && err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("read interval line: %w", err)
		}
		p.lineNumber++

		line = strings.TrimSpace(line)
		if iv, ok := p.parseLine(line); ok {
			return iv, nil
		}
		if err == io.EOF {
			return nil, nil
		}
	}
}

// parseLine parses one BED line. The second return is false when the line
// carries no interval (blank, header, or malformed).
func (p *Parser) parseLine(line string) (*Interval, bool) {
	if line == "" {
		return nil, false
	}
	if strings.HasPrefix(line, "track") ||
		strings.HasPrefix(line, "browser") ||
		strings.HasPrefix(line, "#") {
		return nil, false
	}

	fields := strings.Fields(line)
	if len(fields) < 3 {
		p.skipped++
		return nil, false
	}

	chrom := gtf.NormalizeChrom(fields[0])

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		p.skipped++
		return nil, false
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		p.skipped++
		return nil, false
	}

	if end <= start {
		p.skipped++
		return nil, false
	}

	return &Interval{Chrom: chrom, Start: start, End: end}, true
}

// ReadAll reads every remaining interval in input order.
func (p *Parser) ReadAll() ([]Interval, error) {
	var out []Interval
	for {
		iv, err := p.Next()
		if err != nil {
			return out, err
		}
		if iv == nil {
			return out, nil
		}
		out = append(out, *iv)
	}
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Skipped returns the number of malformed or dropped lines seen so far.
func (p *Parser) Skipped() int {
	return p.skipped
}

// Close closes the parser and releases resources.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
