package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidThresholds = errors.New("invalid click thresholds")

// Default click thresholds applied to new campaigns.
const (
	DefaultClickUpperThreshold   int64 = 15000
	DefaultClickLowerThreshold   int64 = 5000
	DefaultMidBandRaiseThreshold int64 = 12500
	DefaultMidBandLowerThreshold int64 = 7500
)

// Thresholds describes the click bands that drive activation. Between Lower
// and Upper lies a hysteresis band where only MidLower (for active
// campaigns) and MidRaise (for paused ones) cause a transition.
type Thresholds struct {
	Upper    int64
	Lower    int64
	MidRaise int64
	MidLower int64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Upper:    DefaultClickUpperThreshold,
		Lower:    DefaultClickLowerThreshold,
		MidRaise: DefaultMidBandRaiseThreshold,
		MidLower: DefaultMidBandLowerThreshold,
	}
}

// Validate checks lower < midLower < midRaise < upper.
func (t Thresholds) Validate() error {
	if t.Lower < t.MidLower && t.MidLower < t.MidRaise && t.MidRaise < t.Upper {
		return nil
	}
	return fmt.Errorf("%w: lower=%d mid_lower=%d mid_raise=%d upper=%d",
		ErrInvalidThresholds, t.Lower, t.MidLower, t.MidRaise, t.Upper)
}

// Target is the activation the click bands ask the controller to ensure.
type Target int

const (
	TargetUnchanged Target = iota
	TargetActive
	TargetPaused
)

func (t Target) String() string {
	switch t {
	case TargetActive:
		return "active"
	case TargetPaused:
		return "paused"
	default:
		return "unchanged"
	}
}

// Decide classifies remaining clicks into a band. Above Upper and at or
// below Lower the state is forced; inside the band a campaign only moves
// when it drifts past the mid threshold facing its current state. A zero
// remaining count is handled by the caller before thresholds are consulted.
func (t Thresholds) Decide(remaining int64, active bool) Target {
	switch {
	case remaining > t.Upper:
		return TargetActive
	case remaining <= t.Lower:
		return TargetPaused
	case active && remaining <= t.MidLower:
		return TargetPaused
	case !active && remaining >= t.MidRaise:
		return TargetActive
	default:
		return TargetUnchanged
	}
}
