package experiments

import (
	"bandit/engine"
	"bandit/game"
	"bandit/searcher"
	"bandit/stats"
	"fmt"

	"golang.org/x/exp/rand"
)

// Experiment is the outcome of one batch of paired games.
type Experiment struct {
	Seed  uint64
	RStar int // Earliest significant round, 0 if none
	Stats stats.RoundStats
}

// EarliestStopRound runs games paired games of rMax rounds and returns the
// first round where UCB1's cumulative advantage over random play is positive
// and significant at alpha/rMax, or 0 if no round is.
func EarliestStopRound(b *game.Bandit, rMax, games int, alpha float64, seed uint64) (int, error) {
	e, err := RunExperiment(b, rMax, games, alpha, seed)
	if err != nil {
		return 0, err
	}
	return e.RStar, nil
}

// RunExperiment is EarliestStopRound with the per-round statistics kept.
func RunExperiment(b *game.Bandit, rMax, games int, alpha float64, seed uint64) (Experiment, error) {
	if err := validateExperiment(b.K(), rMax, games, alpha); err != nil {
		return Experiment{}, fmt.Errorf("experiment with seed %d: %w", seed, err)
	}
	return runExperiment(b, rMax, games, alpha, seed), nil
}

func runExperiment(b *game.Bandit, rMax, games int, alpha float64, seed uint64) Experiment {
	diffs := playGames(b, rMax, games, seed)
	roundStats := stats.PairedTest(diffs)
	return Experiment{
		Seed:  seed,
		RStar: roundStats.FirstSignificant(stats.Bonferroni(alpha, rMax)),
		Stats: roundStats,
	}
}

// playGames returns diffs[g][r], UCB1's cumulative reward minus random play's
// at round r of game g. For each game, in order, the master generator yields
// the reward table seed and then the random policy seed.
func playGames(b *game.Bandit, rMax, games int, seed uint64) [][]float64 {
	master := rand.New(rand.NewSource(seed))
	ucb1 := searcher.NewUCB1Policy(b)

	diffs := make([][]float64, games)
	for g := range diffs {
		tableSeed := uint64(master.Uint32())
		policySeed := uint64(master.Uint32())

		table := game.SampleRewards(b, rMax, rand.New(rand.NewSource(tableSeed)))
		random := searcher.NewRandomPolicy(rand.New(rand.NewSource(policySeed)))

		var e engine.Engine = engine.NewLocalEngine(table, ucb1, random)
		trajectories := e.Run()
		diffs[g] = engine.Advantage(trajectories[0], trajectories[1])
	}
	return diffs
}
