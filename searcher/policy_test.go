package searcher

import (
	"bandit/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestUpperBound(t *testing.T) {
	t.Run("adding the exploration bonus to the rescaled mean", func(t *testing.T) {
		got := upperBound(0.5, 10, 100)

		expected := 0.5 + math.Sqrt(2*math.Log(100)/10)
		require.InDelta(t, expected, got, 1e-12)
	})

	t.Run("panics for an arm never pulled", func(t *testing.T) {
		require.Panics(t, func() {
			upperBound(0, 0, 5)
		}, "Unpulled arms are played during initialization")
	})

	t.Run("bonus vanishes at the first round", func(t *testing.T) {
		require.Equal(t, 0.75, upperBound(0.75, 1, 1), "ln(1) is 0")
	})

	t.Run("bonus grows with rounds and shrinks with pulls", func(t *testing.T) {
		require.Greater(t, upperBound(0.5, 10, 1000), upperBound(0.5, 10, 100))
		require.Greater(t, upperBound(0.5, 10, 100), upperBound(0.5, 20, 100))
	})

	t.Run("a rarely pulled arm can outrank a better mean", func(t *testing.T) {
		require.Greater(t, upperBound(0.2, 1, 50), upperBound(0.9, 40, 50))
	})
}

func TestRandom(t *testing.T) {
	b := game.NewBandit([]game.Arm{
		{P: 0.5, High: 18, Low: 6},
		{P: 0.6, High: 24, Low: 4},
		{P: 0.75, High: 26, Low: 2},
	})

	t.Run("collecting the pulled arm's reward every round", func(t *testing.T) {
		table := game.SampleRewards(b, 50, rand.New(rand.NewSource(3)))

		got := Random(table, rand.New(rand.NewSource(4)))

		require.Len(t, got.Cumulative, 50)
		total := 0.0
		for r, arm := range got.Pulls {
			require.GreaterOrEqual(t, arm, 0)
			require.Less(t, arm, b.K())
			total += table.At(arm, r)
			require.Equal(t, total, got.Cumulative[r])
		}
	})

	t.Run("same generator seed repeats the game", func(t *testing.T) {
		table := game.SampleRewards(b, 30, rand.New(rand.NewSource(3)))

		got1 := NewRandomPolicy(rand.New(rand.NewSource(9))).Play(table)
		got2 := NewRandomPolicy(rand.New(rand.NewSource(9))).Play(table)

		require.Equal(t, got1, got2)
	})

	t.Run("arms are chosen roughly uniformly", func(t *testing.T) {
		const rounds = 30000
		table := game.NewRewardTable(b.K(), rounds)

		got := Random(table, rand.New(rand.NewSource(11)))

		counts := make([]int, b.K())
		for _, arm := range got.Pulls {
			counts[arm]++
		}
		for arm, count := range counts {
			require.InDelta(t, 1.0/3, float64(count)/rounds, 0.02, "Arm %d frequency", arm)
		}
	})
}
