package experiments

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when tunable constants cannot drive a simulation.
var ErrInvalidParams = errors.New("invalid parameters")

// Params are the tunable constants of an estimate.
type Params struct {
	RMax        int     // Round horizon
	Games       int     // Paired games per experiment
	Alpha       float64 // Family-wise significance level
	TargetProb  float64 // Target P(0 < r* <= r)
	Experiments int     // Outer repetitions
	Seed        uint64  // Top-level seed
}

// validateExperiment checks the constants needed by a single experiment on k arms.
func validateExperiment(k, rMax, games int, alpha float64) error {
	if games < 2 {
		return fmt.Errorf("%w: games must be at least 2, got %d", ErrInvalidParams, games)
	}
	if rMax < k {
		return fmt.Errorf("%w: round horizon %d is shorter than the %d arms", ErrInvalidParams, rMax, k)
	}
	if !(alpha > 0 && alpha < 1) {
		return fmt.Errorf("%w: alpha must be in (0,1), got %v", ErrInvalidParams, alpha)
	}
	return nil
}

// Validate checks every constant against a bandit of k arms.
func (p Params) Validate(k int) error {
	if err := validateExperiment(k, p.RMax, p.Games, p.Alpha); err != nil {
		return err
	}
	if p.Experiments < 1 {
		return fmt.Errorf("%w: experiments must be at least 1, got %d", ErrInvalidParams, p.Experiments)
	}
	if !(p.TargetProb > 0 && p.TargetProb < 1) {
		return fmt.Errorf("%w: target probability must be in (0,1), got %v", ErrInvalidParams, p.TargetProb)
	}
	return nil
}
