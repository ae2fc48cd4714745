// Package sim plays many headless sessions with a greedy bot and summarizes
// the scores. It is used to compare variants and presets.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tilecrush/internal/match3"
)

// Config describes a simulation run.
type Config struct {
	Engine match3.Config
	// Games is the number of sessions to play.
	Games int
	// Moves is the move budget of each session. The bot does not play
	// against the clock.
	Moves int
	// Workers defaults to the number of CPUs.
	Workers int
	// Seed is the base seed; game i plays with Seed+i.
	Seed int64
	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer
}

// Validate checks the run parameters and the engine config.
func (c Config) Validate() error {
	switch {
	case c.Games < 1:
		return fmt.Errorf("sim: games must be positive, got %d", c.Games)
	case c.Moves < 1:
		return fmt.Errorf("sim: moves must be positive, got %d", c.Moves)
	case c.Workers < 0:
		return fmt.Errorf("sim: workers must not be negative, got %d", c.Workers)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	return nil
}

// GameResult is the outcome of one bot game.
type GameResult struct {
	Seed         int64
	Score        int
	Moves        int
	Chains       int
	LongestChain int
	Capped       int
	// Stuck is set when the board ran out of matching swaps before the
	// move budget was spent.
	Stuck bool
}

// PlayGame plays one session with the greedy bot: every move takes the swap
// with the best first-round score.
func PlayGame(cfg match3.Config, seed int64, moves int) (GameResult, error) {
	s, err := match3.NewSession(cfg, match3.WithSeed(seed))
	if err != nil {
		return GameResult{}, err
	}
	s.Start()

	res := GameResult{Seed: seed}
	for s.Moves() < moves {
		best, ok := match3.BestSwap(s.Board())
		if !ok {
			res.Stuck = true
			break
		}
		if r := s.RequestSwap(best.A, best.B); !r.Accepted {
			return res, fmt.Errorf("sim: bot swap %v-%v rejected: %s", best.A, best.B, r.Reason)
		}
	}

	res.Score = s.Score()
	res.Moves = s.Moves()
	res.Chains, res.LongestChain, res.Capped = s.ChainStats()
	return res, nil
}

// Run plays cfg.Games sessions on a worker pool and returns the report.
// Cancelling ctx stops the run and returns ctx's error.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, cfg.Games)

	bar := pb.StartNew(cfg.Games)
	if cfg.Progress != nil {
		bar.SetWriter(cfg.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int64)
	results := make(chan GameResult, workers)
	errc := make(chan error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for seed := range jobs {
				r, err := PlayGame(cfg.Engine, seed, cfg.Moves)
				if err != nil {
					errc <- err
					cancel()
					return
				}
				select {
				case results <- r:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Games; i++ {
			select {
			case jobs <- cfg.Seed + int64(i):
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]GameResult, 0, cfg.Games)
	for r := range results {
		all = append(all, r)
		bar.Increment()
	}
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	select {
	case err := <-errc:
		return nil, err
	default:
	}
	if len(all) < cfg.Games {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("sim: run stopped early")
	}

	return NewReport(all, elapsed), nil
}
