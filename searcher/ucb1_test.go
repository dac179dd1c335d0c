package searcher

import (
	"bandit/game"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"pgregory.net/rapid"
)

func TestUCB1(t *testing.T) {
	t.Run("initialization pulls every arm once in index order", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			k := rapid.IntRange(2, 8).Draw(rt, "k")
			arms := make([]game.Arm, k)
			for i := range arms {
				arms[i] = game.Arm{
					P:    rapid.Float64Range(0, 1).Draw(rt, fmt.Sprintf("p_%d", i)),
					High: float64(rapid.IntRange(1, 50).Draw(rt, fmt.Sprintf("high_%d", i))),
					Low:  float64(rapid.IntRange(0, 10).Draw(rt, fmt.Sprintf("low_%d", i))),
				}
			}
			rounds := rapid.IntRange(k, 3*k).Draw(rt, "rounds")
			b := game.NewBandit(arms)
			table := game.SampleRewards(b, rounds, rand.New(rand.NewSource(rapid.Uint64().Draw(rt, "seed"))))

			got := UCB1(b, table)

			for r := 0; r < k; r++ {
				require.Equal(rt, r, got.Pulls[r], "Round %d should pull arm %d", r, r)
			}
		})
	})

	t.Run("cumulative total uses unscaled rewards", func(t *testing.T) {
		b := game.NewBandit([]game.Arm{{P: 1, High: 8, Low: 8}, {P: 0.75, High: 26, Low: 2}})
		table := game.SampleRewards(b, 40, rand.New(rand.NewSource(5)))

		got := UCB1(b, table)

		total := 0.0
		for r, arm := range got.Pulls {
			total += table.At(arm, r)
			require.Equal(t, total, got.Cumulative[r])
		}
	})

	t.Run("selecting the arm with the highest bound", func(t *testing.T) {
		// Arm 1 pays the maximum every round, arm 0 the minimum
		b := game.NewBandit([]game.Arm{{P: 0, High: 10, Low: 0}, {P: 1, High: 10, Low: 0}})
		table := game.SampleRewards(b, 4, rand.New(rand.NewSource(1)))

		got := UCB1(b, table)

		// Round 2: arm0 = 0 + sqrt(2 ln 3), arm1 = 1 + sqrt(2 ln 3)
		require.Equal(t, []int{0, 1, 1, 1}, got.Pulls)
		require.Equal(t, []float64{0, 10, 20, 30}, got.Cumulative)
	})

	t.Run("ties go to the lowest arm index", func(t *testing.T) {
		b := game.NewBandit([]game.Arm{{P: 1, High: 5, Low: 5}, {P: 1, High: 5, Low: 5}, {P: 1, High: 5, Low: 5}})
		table := game.SampleRewards(b, 4, rand.New(rand.NewSource(1)))

		got := UCB1(b, table)

		require.Equal(t, 0, got.Pulls[3], "Equal bounds should select the first arm")
	})

	t.Run("exploration revisits a worse arm", func(t *testing.T) {
		b := game.NewBandit([]game.Arm{{P: 1, High: 6, Low: 6}, {P: 1, High: 8, Low: 8}})
		table := game.SampleRewards(b, 200, rand.New(rand.NewSource(1)))

		got := NewUCB1Policy(b).Play(table)

		counts := make([]int, 2)
		for _, arm := range got.Pulls {
			counts[arm]++
		}
		require.Greater(t, counts[1], counts[0], "Better arm should be pulled more often")
		require.Greater(t, counts[0], 1, "Worse arm should still be explored")
	})

	t.Run("panics on a mismatched table", func(t *testing.T) {
		b := game.NewBandit([]game.Arm{{P: 1, High: 1, Low: 1}, {P: 1, High: 2, Low: 2}})

		require.Panics(t, func() {
			UCB1(b, game.NewRewardTable(3, 5))
		})
	})
}
