// meta/meta.go
package meta

import "bandit/game"

// R_MAX defines the round horizon of every game.
const R_MAX = 30

// N_GAMES defines the number of paired games per experiment.
const N_GAMES = 60

// ALPHA defines the family-wise significance level.
const ALPHA = 0.05

// TARGET_PROB defines the target probability of stopping by a round.
const TARGET_PROB = 0.95

// N_EXPERIMENTS defines the number of repeated experiments.
const N_EXPERIMENTS = 2000

// SEED defines the top-level seed.
const SEED = 2026

// ARMS returns the default bandit: a certain 8, then 50% 18/6, 60% 24/4 and 75% 26/2.
func ARMS() []game.ArmSpec {
	return []game.ArmSpec{
		{1: 8},
		{0.5: 18, 1: 6},
		{0.6: 24, 1: 4},
		{0.75: 26, 1: 2},
	}
}
