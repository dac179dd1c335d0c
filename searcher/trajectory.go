package searcher

// Trajectory records one policy's play through a reward table.
type Trajectory struct {
	Cumulative []float64 // Running reward total after each round
	Pulls      []int     // Arm pulled at each round
}

func newTrajectory(rounds int) Trajectory {
	return Trajectory{
		Cumulative: make([]float64, rounds),
		Pulls:      make([]int, rounds),
	}
}

func (t Trajectory) record(round, arm int, reward float64) {
	total := reward
	if round > 0 {
		total += t.Cumulative[round-1]
	}
	t.Cumulative[round] = total
	t.Pulls[round] = arm
}

