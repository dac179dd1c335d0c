package engine

import "bandit/searcher"

type Engine interface {
	// Run plays every policy once on the same reward table
	Run() []searcher.Trajectory
}
