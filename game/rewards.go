package game

import "golang.org/x/exp/rand"

// RewardTable holds the reward each arm would pay at each round of one game.
// Both policies of a paired game read the same table.
type RewardTable struct {
	arms   int
	rounds int
	cells  []float64 // arm-major
}

// NewRewardTable returns a zeroed table of arms x rounds.
func NewRewardTable(arms, rounds int) *RewardTable {
	if arms <= 0 || rounds <= 0 {
		panic("reward table needs at least one arm and one round")
	}
	return &RewardTable{
		arms:   arms,
		rounds: rounds,
		cells:  make([]float64, arms*rounds),
	}
}

// SampleRewards draws every cell independently from the bandit's arms.
// Cells are drawn arm by arm, round by round, from rng only.
func SampleRewards(b *Bandit, rounds int, rng *rand.Rand) *RewardTable {
	table := NewRewardTable(b.K(), rounds)
	for a, arm := range b.Arms {
		for t := 0; t < rounds; t++ {
			reward := arm.Low
			if rng.Float64() < arm.P {
				reward = arm.High
			}
			table.Set(a, t, reward)
		}
	}
	return table
}

func (r *RewardTable) Arms() int {
	return r.arms
}

func (r *RewardTable) Rounds() int {
	return r.rounds
}

// At returns the reward for pulling arm at round.
func (r *RewardTable) At(arm, round int) float64 {
	return r.cells[arm*r.rounds+round]
}

// Set overwrites a single cell.
func (r *RewardTable) Set(arm, round int, reward float64) {
	r.cells[arm*r.rounds+round] = reward
}
