package metrics

import (
	"sync/atomic"
	"time"
)

// RunMetric summarizes the work done by one estimate.
type RunMetric struct {
	Goroutines  int           `json:"goroutines"`
	Experiments int           `json:"experiments"`
	Significant int           `json:"significant"` // Experiments that found a round
	Games       int           `json:"games"`
	Rounds      int           `json:"rounds"` // Policy rounds simulated across all games
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Duration    time.Duration `json:"duration"`
}

type Collector interface {
	Start(goroutines int)
	AddExperiment(games, rounds int, significant bool)
	Complete() *RunMetric
}

type collector struct {
	goroutines  int
	startTime   time.Time
	experiments atomic.Int64
	significant atomic.Int64
	games       atomic.Int64
	rounds      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.experiments.Store(0)
	m.significant.Store(0)
	m.games.Store(0)
	m.rounds.Store(0)
}

// AddExperiment is safe for concurrent use by experiment workers.
func (m *collector) AddExperiment(games, rounds int, significant bool) {
	m.experiments.Add(1)
	m.games.Add(int64(games))
	// Each game plays both policies
	m.rounds.Add(int64(2 * games * rounds))
	if significant {
		m.significant.Add(1)
	}
}

func (m *collector) Complete() *RunMetric {
	end := time.Now()
	return &RunMetric{
		Goroutines:  m.goroutines,
		Experiments: int(m.experiments.Load()),
		Significant: int(m.significant.Load()),
		Games:       int(m.games.Load()),
		Rounds:      int(m.rounds.Load()),
		StartTime:   m.startTime,
		EndTime:     end,
		Duration:    end.Sub(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)                              {}
func (m *dummyCollector) AddExperiment(games, rounds int, significant bool) {}
func (m *dummyCollector) Complete() *RunMetric                              { return nil }
