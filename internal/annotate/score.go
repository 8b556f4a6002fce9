package annotate

import (
	"math"
	"strings"
)

// BiotypeRank maps a transcript biotype to its priority class. Lower rank is
// higher priority: protein_coding > others > *RNA > *_decay > sense_* >
// antisense > translated_* > transcribed_*. The rank feeds only the scoring
// bonus; it is never used as a standalone sort key.
func BiotypeRank(biotype string) int {
	switch {
	case biotype == "":
		return 5
	case biotype == "protein_coding":
		return 0
	case strings.HasSuffix(biotype, "RNA"):
		return 2
	case strings.HasSuffix(biotype, "_decay"):
		return 3
	case strings.HasPrefix(biotype, "sense_"):
		return 4
	case biotype == "antisense":
		return 6
	case strings.HasPrefix(biotype, "translated_"):
		return 7
	case strings.HasPrefix(biotype, "transcribed_"):
		return 8
	default:
		return 5
	}
}

// TSLRank maps a transcript support level to its priority class.
// 1 > absent/NA > others > 2 > 3 > 4 > 5.
func TSLRank(tsl string) int {
	switch tsl {
	case "1":
		return 0
	case "", "NA", "Not_available":
		return 1
	case "2":
		return 3
	case "3":
		return 4
	case "4":
		return 5
	case "5":
		return 6
	default:
		return 2
	}
}

// ScoreConfig holds the optional scoring-weight toggles.
type ScoreConfig struct {
	// IncludeTSL adds the transcript-support-level bonus
	// max(0, 20 - 3*TSLRank(tsl)) to the composite score.
	IncludeTSL bool
}

// DefaultScoreConfig enables the TSL bonus.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{IncludeTSL: true}
}

// Score computes the composite priority score for one candidate from its
// three coverage percentages, biotype, support level, gene-symbol presence,
// and transcript length in bases. Non-positive lengths contribute no length
// bonus; the function never panics on malformed input.
func (c ScoreConfig) Score(txPct, cdsPct, exonPct float64, biotype, tsl string, hasSymbol bool, txLen int64) float64 {
	s := 3.0*txPct + 2.0*cdsPct + 1.5*exonPct

	if b := 50 - 10*BiotypeRank(biotype); b > 0 {
		s += float64(b)
	}

	if c.IncludeTSL {
		if b := 20 - 3*TSLRank(tsl); b > 0 {
			s += float64(b)
		}
	}

	if hasSymbol {
		s += 5.0
	}

	if txLen > 0 {
		bonus := math.Log1p(float64(txLen)) / math.Log(10) * 5.0
		if bonus > 10.0 {
			bonus = 10.0
		}
		s += bonus
	}

	return s
}
