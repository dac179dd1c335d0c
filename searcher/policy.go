package searcher

import (
	"bandit/game"

	"golang.org/x/exp/rand"
)

// Policy plays one game on a reward table and reports its trajectory.
type Policy interface {
	Play(table *game.RewardTable) Trajectory
}

type ucb1Policy struct {
	bandit *game.Bandit
}

// NewUCB1Policy returns the adaptive upper confidence bound policy for b.
func NewUCB1Policy(b *game.Bandit) Policy {
	return ucb1Policy{bandit: b}
}

func (p ucb1Policy) Play(table *game.RewardTable) Trajectory {
	return UCB1(p.bandit, table)
}

type randomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy returns a uniform random policy drawing from rng.
// The generator should not be shared with any other sampling step.
func NewRandomPolicy(rng *rand.Rand) Policy {
	return randomPolicy{rng: rng}
}

func (p randomPolicy) Play(table *game.RewardTable) Trajectory {
	return Random(table, p.rng)
}

// Random pulls a uniformly random arm every round.
func Random(table *game.RewardTable, rng *rand.Rand) Trajectory {
	k, rounds := table.Arms(), table.Rounds()
	trajectory := newTrajectory(rounds)
	for t := 0; t < rounds; t++ {
		arm := rng.Intn(k)
		trajectory.record(t, arm, table.At(arm, t))
	}
	return trajectory
}
