// Package gtf provides GTF feature line and attribute parsing.
package gtf

import (
	"fmt"
	"strconv"
	"strings"
)

// Feature types relevant to annotation. Any other type is carried through
// but ignored by the candidate builder.
const (
	FeatureTranscript = "transcript"
	FeatureExon       = "exon"
	FeatureCDS        = "CDS"
)

// Feature represents a single decoded GTF record.
// Start and End are 1-based inclusive, as in the file.
type Feature struct {
	Seqname    string
	Source     string
	Type       string
	Start      int64
	End        int64
	Score      string
	Strand     string
	Frame      string
	Attributes string
}

// ParseLine parses a single tab-delimited GTF line.
func ParseLine(line string) (*Feature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	return &Feature{
		Seqname:    fields[0],
		Source:     fields[1],
		Type:       fields[2],
		Start:      start,
		End:        end,
		Score:      fields[5],
		Strand:     fields[6],
		Frame:      fields[7],
		Attributes: fields[8],
	}, nil
}

// ParseAttributes parses a GTF attribute column.
// Format: key "value"; key "value"; ...
// If a key repeats, the later occurrence wins.
func ParseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	parts := strings.Split(attrStr, ";")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Split on the first space to separate key from value.
		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}

		key := part[:idx]
		value := strings.TrimSpace(part[idx+1:])
		value = strings.Trim(value, "\"")

		attrs[key] = value
	}

	return attrs
}

// NormalizeChrom removes a leading "chr" prefix so that catalog and BED
// chromosome names compare consistently.
func NormalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		return chrom[3:]
	}
	return chrom
}
