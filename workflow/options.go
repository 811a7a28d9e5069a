package workflow

import (
	"time"

	"github.com/avelar/contentforge/retry"
)

// Options contains configuration for workflow execution.
type Options struct {
	// Timeout sets a deadline for the entire run (0 = unbounded).
	Timeout time.Duration

	// PhaseTimeout sets a deadline for each phase (0 = unbounded).
	PhaseTimeout time.Duration

	// CallTimeout sets a deadline for each capability call.
	CallTimeout time.Duration

	// Retry, when set, wraps each capability call in retry logic.
	// Retries stay within the call's share of the phase deadline.
	// Nil means no retries, matching the baseline policy.
	Retry *retry.Config
}

// Option is a functional option for workflow configuration.
type Option func(*Options)

// WithTimeout sets the overall run timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithPhaseTimeout sets the deadline for each phase.
func WithPhaseTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.PhaseTimeout = d
	}
}

// WithCallTimeout sets the deadline for each capability call.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.CallTimeout = d
	}
}

// WithRetry enables per-call retries with the given configuration.
func WithRetry(cfg retry.Config) Option {
	return func(o *Options) {
		o.Retry = &cfg
	}
}

// applyOptions applies functional options with defaults.
func applyOptions(opts ...Option) *Options {
	o := &Options{
		CallTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
