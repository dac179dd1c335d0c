package searcher

import (
	"bandit/game"
	"math"

	"gonum.org/v1/gonum/floats"
)

const CSquared = 2.0 // Exploration constant

// upperBound is an arm's rescaled mean reward plus the exploration bonus
// sqrt(CSquared*ln(round)/pulls), where round counts from 1.
func upperBound(mean float64, pulls float64, round int) float64 {
	if pulls == 0 {
		panic("arm has not been pulled")
	}
	return mean + math.Sqrt(CSquared*math.Log(float64(round))/pulls)
}

// UCB1 plays every arm once in index order, then the arm with the highest
// upper confidence bound on its rescaled mean. Ties go to the lowest index.
func UCB1(b *game.Bandit, table *game.RewardTable) Trajectory {
	k, rounds := b.K(), table.Rounds()
	if table.Arms() != k {
		panic("reward table does not match bandit")
	}

	pulls := make([]float64, k)
	scaledSums := make([]float64, k)
	scores := make([]float64, k)
	trajectory := newTrajectory(rounds)

	for t := 0; t < rounds; t++ {
		arm := t
		if t >= k {
			for a := range scores {
				scores[a] = upperBound(scaledSums[a]/pulls[a], pulls[a], t+1)
			}
			arm = floats.MaxIdx(scores)
		}

		reward := table.At(arm, t)
		trajectory.record(t, arm, reward)
		pulls[arm]++
		scaledSums[arm] += b.Scale(reward)
	}
	return trajectory
}
