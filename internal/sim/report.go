package sim

import (
	"io"
	"slices"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// Report summarizes a run.
type Report struct {
	Games   int
	Elapsed time.Duration

	MeanScore   float64
	StdDevScore float64
	MinScore    float64
	MedianScore float64
	P90Score    float64
	MaxScore    float64

	MeanMoves    float64
	MeanChains   float64
	LongestChain int
	CappedChains int
	StuckGames   int

	Results []GameResult
}

// NewReport computes the statistics of results. Results are kept in seed
// order.
func NewReport(results []GameResult, elapsed time.Duration) *Report {
	r := &Report{
		Games:   len(results),
		Elapsed: elapsed,
		Results: slices.Clone(results),
	}
	if len(results) == 0 {
		return r
	}
	slices.SortFunc(r.Results, func(a, b GameResult) int {
		switch {
		case a.Seed < b.Seed:
			return -1
		case a.Seed > b.Seed:
			return 1
		}
		return 0
	})

	scores := make([]float64, len(results))
	moves := make([]float64, len(results))
	chains := make([]float64, len(results))
	for i, g := range r.Results {
		scores[i] = float64(g.Score)
		moves[i] = float64(g.Moves)
		chains[i] = float64(g.Chains)
		r.LongestChain = max(r.LongestChain, g.LongestChain)
		r.CappedChains += g.Capped
		if g.Stuck {
			r.StuckGames++
		}
	}

	r.MeanScore, r.StdDevScore = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		r.StdDevScore = 0
	}
	r.MeanMoves = stat.Mean(moves, nil)
	r.MeanChains = stat.Mean(chains, nil)

	// Quantile needs sorted input.
	slices.Sort(scores)
	r.MinScore = scores[0]
	r.MaxScore = scores[len(scores)-1]
	r.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	r.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)
	return r
}

// GamesPerSecond returns the throughput of the run.
func (r *Report) GamesPerSecond() float64 {
	sec := r.Elapsed.Seconds()
	if sec <= 0 {
		return 0
	}
	return float64(r.Games) / sec
}

// Write prints the report with grouped digits.
func (r *Report) Write(w io.Writer) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "games        %d\n", r.Games)
	p.Fprintf(w, "score mean   %.1f (stddev %.1f)\n", r.MeanScore, r.StdDevScore)
	p.Fprintf(w, "score range  %.0f .. %.0f\n", r.MinScore, r.MaxScore)
	p.Fprintf(w, "score p50    %.0f\n", r.MedianScore)
	p.Fprintf(w, "score p90    %.0f\n", r.P90Score)
	p.Fprintf(w, "moves mean   %.1f\n", r.MeanMoves)
	p.Fprintf(w, "chains mean  %.1f (longest x%d)\n", r.MeanChains, r.LongestChain)
	if r.CappedChains > 0 {
		p.Fprintf(w, "capped       %d cascades hit the round cap\n", r.CappedChains)
	}
	if r.StuckGames > 0 {
		p.Fprintf(w, "stuck        %d games ran out of moves\n", r.StuckGames)
	}
	p.Fprintf(w, "elapsed      %s (%.0f games/sec)\n", r.Elapsed.Round(time.Millisecond), r.GamesPerSecond())
}
