// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package arrays

// ReduceConfig collects the options accepted by the reduction operations of
// the capability set. Implementers build one with NewReduceConfig.
type ReduceConfig struct {
	// Axes to reduce over. Empty means reduce over all axes.
	// Negative axes count from the end.
	Axes []int

	// Out, if set, receives the result: it must have the result's shape and
	// dtype, and it is returned by the reduction.
	Out Array

	// KeepDims keeps the reduced axes in the result with dimension 1.
	KeepDims bool

	// Initial is the starting value for the reduction, included as if it
	// were one more element. Required for Max/Min with a Where mask that
	// may be all-false.
	Initial Array

	// Where is a boolean mask with the receiver's dimensions: only elements
	// where it is true participate in the reduction.
	Where Array

	// DDof is the delta degrees of freedom for Std and Var: the divisor
	// used is N - DDof.
	DDof int
}

// ReduceOpt is an option for the reduction operations. See WithAxes,
// WithOut, WithKeepDims, WithInitial, WithWhere and WithDDof.
type ReduceOpt func(*ReduceConfig)

// NewReduceConfig builds the configuration from the given options.
func NewReduceConfig(opts ...ReduceOpt) *ReduceConfig {
	cfg := &ReduceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithAxes selects the axes to reduce over, instead of reducing over all of
// them. For CumSum and CumProd exactly one axis must be given.
func WithAxes(axes ...int) ReduceOpt {
	return func(cfg *ReduceConfig) { cfg.Axes = axes }
}

// WithOut directs the reduction result into out, which must have the
// result's shape and dtype.
func WithOut(out Array) ReduceOpt {
	return func(cfg *ReduceConfig) { cfg.Out = out }
}

// WithKeepDims keeps the reduced axes in the result, with dimension 1.
func WithKeepDims() ReduceOpt {
	return func(cfg *ReduceConfig) { cfg.KeepDims = true }
}

// WithInitial sets the starting value of the reduction.
func WithInitial(initial Array) ReduceOpt {
	return func(cfg *ReduceConfig) { cfg.Initial = initial }
}

// WithWhere restricts the reduction to the elements where mask is true.
func WithWhere(mask Array) ReduceOpt {
	return func(cfg *ReduceConfig) { cfg.Where = mask }
}

// WithDDof sets the delta degrees of freedom for Std and Var.
func WithDDof(ddof int) ReduceOpt {
	return func(cfg *ReduceConfig) { cfg.DDof = ddof }
}
