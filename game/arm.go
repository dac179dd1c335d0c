package game

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidArm is returned when an arm specification cannot be parsed.
var ErrInvalidArm = errors.New("invalid arm")

// Certain is the cumulative threshold that closes every arm specification.
const Certain = 1.0

// ArmSpec maps cumulative probability thresholds to rewards, e.g. {0.6: 24, 1: 4}
// gives 24 with probability 0.6 and 4 otherwise.
type ArmSpec map[float64]float64

// Arm is a two-outcome reward arm: High with probability P, Low otherwise.
type Arm struct {
	P    float64 `json:"p"`
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// Mean returns the expected reward of one pull.
func (a Arm) Mean() float64 {
	return a.P*a.High + (1-a.P)*a.Low
}

// Bandit is an ordered set of arms plus the reward bounds shared by all of them.
type Bandit struct {
	Arms      []Arm
	MinReward float64
	MaxReward float64
	Range     float64
}

// ParseArms converts threshold specifications into a Bandit.
func ParseArms(specs []ArmSpec) (*Bandit, error) {
	if len(specs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 arms, got %d", ErrInvalidArm, len(specs))
	}

	arms := make([]Arm, len(specs))
	for i, spec := range specs {
		arm, err := parseArm(spec)
		if err != nil {
			return nil, fmt.Errorf("arm %d: %w", i, err)
		}
		arms[i] = arm
	}
	return NewBandit(arms), nil
}

func parseArm(spec ArmSpec) (Arm, error) {
	thresholds := make([]float64, 0, len(spec))
	for threshold := range spec {
		thresholds = append(thresholds, threshold)
	}
	sort.Float64s(thresholds)

	switch len(thresholds) {
	case 1: // Certain arm, e.g. {1: 8}
		if thresholds[0] != Certain {
			return Arm{}, fmt.Errorf("%w: single threshold must be %v, got %v", ErrInvalidArm, Certain, thresholds[0])
		}
		reward := spec[Certain]
		if !isFinite(reward) {
			return Arm{}, fmt.Errorf("%w: reward %v is not finite", ErrInvalidArm, reward)
		}
		return Arm{P: 1, High: reward, Low: reward}, nil
	case 2:
		p, last := thresholds[0], thresholds[1]
		if last != Certain {
			return Arm{}, fmt.Errorf("%w: largest threshold must be %v, got %v", ErrInvalidArm, Certain, last)
		}
		if p < 0 || p > 1 || math.IsNaN(p) {
			return Arm{}, fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidArm, p)
		}
		high, low := spec[p], spec[last]
		if !isFinite(high) || !isFinite(low) {
			return Arm{}, fmt.Errorf("%w: rewards %v/%v are not finite", ErrInvalidArm, high, low)
		}
		return Arm{P: p, High: high, Low: low}, nil
	default:
		return Arm{}, fmt.Errorf("%w: expected 2 thresholds, got %d", ErrInvalidArm, len(thresholds))
	}
}

// NewBandit computes the shared reward bounds for already-parsed arms.
func NewBandit(arms []Arm) *Bandit {
	b := &Bandit{
		Arms:      arms,
		MinReward: math.Inf(1),
		MaxReward: math.Inf(-1),
	}
	for _, arm := range arms {
		b.MinReward = math.Min(b.MinReward, math.Min(arm.High, arm.Low))
		b.MaxReward = math.Max(b.MaxReward, math.Max(arm.High, arm.Low))
	}
	b.Range = b.MaxReward - b.MinReward
	return b
}

// K returns the number of arms.
func (b *Bandit) K() int {
	return len(b.Arms)
}

// Scale maps a reward into [0,1] using the bounds of all arms.
func (b *Bandit) Scale(reward float64) float64 {
	if b.Range == 0 { // Every outcome pays the same
		return 0
	}
	return (reward - b.MinReward) / b.Range
}

// Means returns the expected reward of each arm.
func (b *Bandit) Means() []float64 {
	means := make([]float64, len(b.Arms))
	for i, arm := range b.Arms {
		means[i] = arm.Mean()
	}
	return means
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
