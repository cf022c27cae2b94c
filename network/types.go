package network

import (
	"errors"
)

// Sentinel errors returned by Build and SegmentIndex.
var (
	// ErrInvalidFlowParameter indicates a flow or velocity that would produce
	// an undefined radius.
	ErrInvalidFlowParameter = errors.New("network: invalid flow parameter")

	// ErrSegmentMergeInconsistency indicates a pair lookup returned a segment
	// that does not join the requested nodes.
	ErrSegmentMergeInconsistency = errors.New("network: segment index inconsistent")

	// ErrNilGraph indicates a nil *spatial.Graph.
	ErrNilGraph = errors.New("network: graph is nil")
)

// Options configures Build.
//
// Velocity  – target flow velocity in ft/min, used unless the terminal's zone sets one.
// Elevation – placement elevation in ft for segment endpoints on plan (2D) nodes;
//
//	volume (3D) nodes keep their own mid-height.
//
// Flows     – optional region id → flow overrides in ft³/min.
type Options struct {
	Velocity  float64
	Elevation float64
	Flows     map[string]float64
}

// Option is a functional option for Build.
type Option func(*Options)

// WithVelocity sets the target flow velocity.
func WithVelocity(v float64) Option {
	return func(o *Options) {
		o.Velocity = v
	}
}

// WithElevation sets the placement elevation of plan segments.
func WithElevation(z float64) Option {
	return func(o *Options) {
		o.Elevation = z
	}
}

// WithFlows overrides the required flow of the named regions.
func WithFlows(flows map[string]float64) Option {
	return func(o *Options) {
		o.Flows = flows
	}
}

// DefaultVelocity is the target velocity used when none is configured,
// a common upper limit for low-pressure supply mains (ft/min).
const DefaultVelocity = 800

// DefaultOptions returns Options with DefaultVelocity and elevation 0.
func DefaultOptions() Options {
	return Options{
		Velocity:  DefaultVelocity,
		Elevation: 0,
	}
}
