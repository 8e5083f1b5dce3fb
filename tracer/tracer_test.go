// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package tracer

import (
	"testing"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/avals"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerClassification(t *testing.T) {
	// A tracer promising an array result is array-like even though *Tracer
	// is never registered as an implementer.
	unshaped := New(avals.NewUnshaped(dtypes.Float32, false))
	assert.True(t, arrays.IsArrayLike(unshaped))

	shaped := New(avals.NewShaped(shapes.Make(dtypes.Int64, 8), false))
	assert.True(t, arrays.IsArrayLike(shaped))

	// A tracer promising a non-array result is not.
	token := New(avals.Token{})
	assert.False(t, arrays.IsArrayLike(token))

	// A tracer with no descriptor at all is not, and doesn't make the
	// classifier panic.
	empty := New(nil)
	require.NotPanics(t, func() { arrays.IsArrayLike(empty) })
	assert.False(t, arrays.IsArrayLike(empty))
}

func TestTracerIdentity(t *testing.T) {
	aval := avals.NewUnshaped(dtypes.Float32, false)
	t1, t2 := New(aval), New(aval)
	assert.NotEqual(t, t1.ID(), t2.ID())
	assert.Contains(t, t1.String(), "Unshaped(Float32)")
}
