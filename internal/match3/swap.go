package match3

// RejectReason explains why a swap request was refused.
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectNotAdjacent
	RejectOutOfBounds
	RejectBusy
	RejectNotActive
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectNotAdjacent:
		return "not adjacent"
	case RejectOutOfBounds:
		return "out of bounds"
	case RejectBusy:
		return "swap in progress"
	case RejectNotActive:
		return "session not active"
	default:
		return "unknown"
	}
}

// SwapOutcome is the fate of an accepted swap.
type SwapOutcome uint8

const (
	OutcomeRejected SwapOutcome = iota
	// OutcomePending means the swap was made but not yet checked; only
	// stepped sessions return it.
	OutcomePending
	OutcomeReverted
	OutcomeMatched
)

func (o SwapOutcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomePending:
		return "pending"
	case OutcomeReverted:
		return "reverted"
	case OutcomeMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// SwapResult is returned by Session.RequestSwap. Points and Rounds are only
// known when the cascade ran inside the call.
type SwapResult struct {
	Accepted bool
	Outcome  SwapOutcome
	Reason   RejectReason
	Points   int
	Rounds   int
}

// Adjacent reports whether a and b differ by exactly one in exactly one axis.
func Adjacent(a, b Pos) bool {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	return dr+dc == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Candidate is a swap that creates at least one match.
type Candidate struct {
	A, B    Pos
	Matches int
	// Points is what the first cascade round would score. Later rounds
	// depend on random refills and are not predicted.
	Points int
}

// FindSwaps lists every adjacent swap on b that would produce a match, in
// row-major order of A (right neighbour before lower neighbour). b is left
// unchanged.
func FindSwaps(b *Board) []Candidate {
	var out []Candidate
	trial := b.Clone()
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			a := Pos{r, c}
			for _, d := range [...]Pos{{0, 1}, {1, 0}} {
				o := Pos{r + d.Row, c + d.Col}
				if !b.InBounds(o) || b.At(a) == b.At(o) {
					continue
				}
				trial.Swap(a, o)
				if found := FindAllMatches(trial); len(found) > 0 {
					out = append(out, Candidate{A: a, B: o, Matches: len(found), Points: RoundPoints(found)})
				}
				trial.Swap(a, o)
			}
		}
	}
	return out
}

// BestSwap returns the candidate with the highest first-round points, the
// earliest one on ties.
func BestSwap(b *Board) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range FindSwaps(b) {
		if !found || c.Points > best.Points {
			best = c
			found = true
		}
	}
	return best, found
}
