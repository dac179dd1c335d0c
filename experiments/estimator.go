package experiments

import (
	"bandit/experiments/metrics"
	"bandit/game"
	"bandit/stats"
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of an estimate. JSON names follow the constants they echo.
type Report struct {
	RMax        int     `json:"R_MAX"`
	Games       int     `json:"N_GAMES"`
	Alpha       float64 `json:"ALPHA"`
	Threshold   float64 `json:"PER_ROUND_THRESHOLD"`
	TargetProb  float64 `json:"TARGET_PROB"`
	Experiments int     `json:"N_EXPERIMENTS"`
	Seed        uint64  `json:"SEED"`

	// TargetRound is the smallest round r with P(0 < r* <= r) >= TargetProb,
	// or 0 when TargetMet is false.
	TargetRound int  `json:"R_TARGET"`
	TargetMet   bool `json:"TARGET_MET"`
	// ProbabilityAtTarget is the CDF at TargetRound, or at RMax when unmet.
	ProbabilityAtTarget float64 `json:"P_STOP_BY_R_TARGET"`

	CDF      []float64          `json:"CDF_P_STOP_BY_R"` // CDF[r-1] = P(0 < r* <= r)
	RStars   []int              `json:"RSTARS"`
	ArmMeans []float64          `json:"ARM_MEANS"`
	Metrics  *metrics.RunMetric `json:"METRICS,omitempty"`
}

type Option func(e *Estimator)

type Estimator struct {
	goroutines int
	metrics    metrics.Collector
}

func WithGoroutines(goroutines int) Option {
	return func(e *Estimator) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(e *Estimator) {
		e.metrics = metrics.NewCollector()
	}
}

func NewEstimator(options ...Option) *Estimator {
	e := &Estimator{ // Default values
		goroutines: runtime.NumCPU(),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Estimate repeats the significance test p.Experiments times and reports the
// empirical distribution of the earliest significant round. Experiment seeds
// are drawn from p.Seed in experiment order before any experiment runs, so
// the result does not depend on the number of goroutines.
func (e *Estimator) Estimate(ctx context.Context, b *game.Bandit, p Params) (*Report, error) {
	if err := p.Validate(b.K()); err != nil {
		return nil, err
	}

	seeds := ExperimentSeeds(p.Seed, p.Experiments)
	rstars := make([]int, p.Experiments)

	log.Info().Msgf("starting %d experiments of %d games over %d rounds with %d goroutines...",
		p.Experiments, p.Games, p.RMax, e.goroutines)
	e.metrics.Start(e.goroutines)

	var done atomic.Int64
	step := int64(max(1, p.Experiments/10))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.goroutines)
	for j, seed := range seeds {
		if gctx.Err() != nil {
			break
		}
		j, seed := j, seed // per-iteration copies; go.mod targets go 1.21
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rstars[j] = runExperiment(b, p.RMax, p.Games, p.Alpha, seed).RStar
			e.metrics.AddExperiment(p.Games, p.RMax, rstars[j] > 0)

			if n := done.Add(1); n%step == 0 {
				log.Debug().Int64("done", n).Int("total", p.Experiments).Msg("experiment progress")
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err() // Dispatch may stop early without a worker failing
	}
	if err != nil {
		return nil, fmt.Errorf("estimate interrupted after %d of %d experiments: %w", done.Load(), p.Experiments, err)
	}

	cdf := EmpiricalCDF(rstars, p.RMax)
	round, met := TargetRound(cdf, p.TargetProb)
	probability := cdf[len(cdf)-1]
	if met {
		probability = cdf[round-1]
	}

	report := &Report{
		RMax:                p.RMax,
		Games:               p.Games,
		Alpha:               p.Alpha,
		Threshold:           stats.Bonferroni(p.Alpha, p.RMax),
		TargetProb:          p.TargetProb,
		Experiments:         p.Experiments,
		Seed:                p.Seed,
		TargetRound:         round,
		TargetMet:           met,
		ProbabilityAtTarget: probability,
		CDF:                 cdf,
		RStars:              rstars,
		ArmMeans:            b.Means(),
		Metrics:             e.metrics.Complete(),
	}

	if met {
		log.Info().Msgf("completed estimate: P(stop by %d) = %.3f", round, probability)
	} else {
		log.Warn().Msgf("completed estimate: target %.2f not met within %d rounds, P(stop by %d) = %.3f",
			p.TargetProb, p.RMax, p.RMax, probability)
	}
	return report, nil
}

// ExperimentSeeds derives n experiment seeds from the top-level seed, one
// 32-bit draw per experiment in order.
func ExperimentSeeds(seed uint64, n int) []uint64 {
	rng := rand.New(rand.NewSource(seed))
	seeds := make([]uint64, n)
	for j := range seeds {
		seeds[j] = uint64(rng.Uint32())
	}
	return seeds
}

// EmpiricalCDF returns P(0 < r* <= r) for r in 1..rMax. Zero r* values count
// towards the total but never towards any round.
func EmpiricalCDF(rstars []int, rMax int) []float64 {
	counts := make([]int, rMax+1)
	for _, r := range rstars {
		if r > 0 && r <= rMax {
			counts[r]++
		}
	}

	cdf := make([]float64, rMax)
	if len(rstars) == 0 {
		return cdf
	}
	cumulative := 0
	for r := 1; r <= rMax; r++ {
		cumulative += counts[r]
		cdf[r-1] = float64(cumulative) / float64(len(rstars))
	}
	return cdf
}

// TargetRound returns the smallest 1-based round whose probability meets target.
func TargetRound(cdf []float64, target float64) (int, bool) {
	for i, probability := range cdf {
		if probability >= target {
			return i + 1, true
		}
	}
	return 0, false
}
