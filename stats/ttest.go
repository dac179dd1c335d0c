// Package stats implements the per-round paired significance test.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// RoundStats holds one entry per round for every statistic of a paired test.
type RoundStats struct {
	Mean   []float64
	StdDev []float64 // Sample standard deviation (N-1 denominator)
	StdErr []float64
	T      []float64
	P      []float64 // One-sided p-value for a positive mean
}

// Rounds returns the number of rounds tested.
func (s RoundStats) Rounds() int {
	return len(s.Mean)
}

// PairedTest runs a one-sample, one-sided t-test per round on paired
// differences, where diffs[g][r] is game g's difference at round r.
func PairedTest(diffs [][]float64) RoundStats {
	n := len(diffs)
	if n < 2 {
		panic("paired test needs at least 2 samples")
	}
	rounds := len(diffs[0])

	s := RoundStats{
		Mean:   make([]float64, rounds),
		StdDev: make([]float64, rounds),
		StdErr: make([]float64, rounds),
		T:      make([]float64, rounds),
		P:      make([]float64, rounds),
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	sqrtN := math.Sqrt(float64(n))

	column := make([]float64, n)
	for r := 0; r < rounds; r++ {
		for g, row := range diffs {
			if len(row) != rounds {
				panic("paired differences have uneven rounds")
			}
			column[g] = row[r]
		}

		mean, variance := stat.MeanVariance(column, nil)
		sd := math.Sqrt(math.Max(variance, 0)) // Rounding can dip below 0
		se := sd / sqrtN

		s.Mean[r] = mean
		s.StdDev[r] = sd
		s.StdErr[r] = se
		s.T[r] = Statistic(mean, se)
		s.P[r] = Survival(dist, s.T[r])
	}
	return s
}

// Statistic returns mean/se, or an infinity signed like the mean when se is 0.
func Statistic(mean, se float64) float64 {
	if se > 0 {
		return mean / se
	}
	switch {
	case mean > 0:
		return math.Inf(1)
	case mean < 0:
		return math.Inf(-1)
	default:
		return 0
	}
}

// Survival returns P(T > t) for the given Student-t distribution.
func Survival(dist distuv.StudentsT, t float64) float64 {
	switch {
	case math.IsInf(t, 1):
		return 0
	case math.IsInf(t, -1):
		return 1
	}
	return dist.Survival(t)
}

// Bonferroni returns the per-test threshold that bounds the family-wise
// error rate at alpha across tests simultaneous tests.
func Bonferroni(alpha float64, tests int) float64 {
	return alpha / float64(tests)
}

// FirstSignificant returns the 1-based index of the first round whose mean is
// positive and whose p-value is at most threshold, or 0 if none is.
func (s RoundStats) FirstSignificant(threshold float64) int {
	for r := range s.Mean {
		if s.Mean[r] > 0 && s.P[r] <= threshold {
			return r + 1
		}
	}
	return 0
}
