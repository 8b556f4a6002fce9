package annotate

import "fmt"

// Policy selects how many top-scoring candidates are kept for one interval.
type Policy string

const (
	// PolicyBestOne keeps exactly the highest-scoring candidate.
	PolicyBestOne Policy = "best_one"
	// PolicyBestAll keeps every candidate within scoreEpsilon of the top score.
	PolicyBestAll Policy = "best_all"
	// PolicyAll keeps every candidate in descending score order.
	PolicyAll Policy = "all"

	// DefaultPolicy is used when no policy is given.
	DefaultPolicy = PolicyBestAll
)

// scoreEpsilon is the tie window for PolicyBestAll.
const scoreEpsilon = 1e-6

// ParsePolicy validates a policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyBestOne, PolicyBestAll, PolicyAll:
		return Policy(s), nil
	case "":
		return DefaultPolicy, nil
	default:
		return "", fmt.Errorf("unknown ambiguity policy %q (want best_one, best_all, or all)", s)
	}
}

// Candidate is one transcript with its coverage percentages and composite
// score, all held at full precision for comparison.
type Candidate struct {
	Info    *TranscriptInfo
	TxPct   float64
	ExonPct float64
	CDSPct  float64
	Score   float64
}

// Resolve picks the output candidates from a list sorted descending by
// score. The caller guarantees the ordering; Resolve must not be called with
// an empty list.
func Resolve(sorted []*Candidate, policy Policy) []*Candidate {
	switch policy {
	case PolicyAll:
		return sorted
	case PolicyBestAll:
		top := sorted[0].Score
		picks := make([]*Candidate, 0, 1)
		for _, c := range sorted {
			d := top - c.Score
			if d < 0 {
				d = -d
			}
			if d < scoreEpsilon {
				picks = append(picks, c)
			}
		}
		return picks
	default: // PolicyBestOne
		return sorted[:1]
	}
}
