package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting concurrent experiments", func(t *testing.T) {
		c := NewCollector()
		c.Start(4)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c.AddExperiment(60, 30, i%4 == 0)
			}(i)
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 100, got.Experiments)
		require.Equal(t, 25, got.Significant)
		require.Equal(t, 6000, got.Games)
		require.Equal(t, 2*6000*30, got.Rounds)
		require.False(t, got.EndTime.Before(got.StartTime))
		require.Equal(t, got.EndTime.Sub(got.StartTime), got.Duration)
	})

	t.Run("restarting clears counts", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddExperiment(10, 10, true)
		c.Start(2)

		got := c.Complete()
		require.Equal(t, 0, got.Experiments)
		require.Equal(t, 0, got.Significant)
		require.Equal(t, 2, got.Goroutines)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(8)
		c.AddExperiment(10, 10, true)

		require.Nil(t, c.Complete())
	})
}
