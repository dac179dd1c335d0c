package engine

import (
	"bandit/game"
	"bandit/searcher"
)

type LocalEngine struct {
	Table    *game.RewardTable
	Policies []searcher.Policy
}

// NewLocalEngine pairs policies on one reward table so that every policy sees
// the same realized outcomes.
func NewLocalEngine(table *game.RewardTable, policies ...searcher.Policy) *LocalEngine {
	if len(policies) < 2 {
		panic("need at least two policies")
	}
	return &LocalEngine{
		Table:    table,
		Policies: policies,
	}
}

// Run plays the policies in order and returns their trajectories.
func (e *LocalEngine) Run() []searcher.Trajectory {
	trajectories := make([]searcher.Trajectory, len(e.Policies))
	for i, policy := range e.Policies {
		trajectories[i] = policy.Play(e.Table)
	}
	return trajectories
}

// Advantage returns the first trajectory's cumulative reward minus the
// second's at every round.
func Advantage(first, second searcher.Trajectory) []float64 {
	if len(first.Cumulative) != len(second.Cumulative) {
		panic("trajectories have different lengths")
	}
	diff := make([]float64, len(first.Cumulative))
	for r := range diff {
		diff[r] = first.Cumulative[r] - second.Cumulative[r]
	}
	return diff
}
