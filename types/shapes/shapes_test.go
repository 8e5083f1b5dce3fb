// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	invalid := Invalid()
	require.False(t, invalid.Ok())
	require.Equal(t, "(invalid)", invalid.String())

	scalar := Make(dtypes.Float64)
	require.True(t, scalar.Ok())
	require.True(t, scalar.IsScalar())
	require.Equal(t, 0, scalar.Rank())
	require.Equal(t, 1, scalar.Size())
	require.Equal(t, 8, int(scalar.Memory()))

	shape := Make(dtypes.Float32, 4, 3, 2)
	require.True(t, shape.Ok())
	require.False(t, shape.IsScalar())
	require.Equal(t, 3, shape.Rank())
	require.Equal(t, 4*3*2, shape.Size())
	require.Equal(t, 4*4*3*2, int(shape.Memory()))
	require.Equal(t, []int{6, 2, 1}, shape.Strides())

	require.Equal(t, 2, shape.Dim(-1))
	require.Equal(t, 4, shape.Dim(0))

	require.True(t, shape.Equal(Make(dtypes.Float32, 4, 3, 2)))
	require.False(t, shape.Equal(Make(dtypes.Float64, 4, 3, 2)))
	require.True(t, shape.EqualDimensions(Make(dtypes.Float64, 4, 3, 2)))

	clone := shape.Clone()
	clone.Dimensions[0] = 7
	require.Equal(t, 4, shape.Dimensions[0])
}

func TestShapeScalarGenerics(t *testing.T) {
	require.Equal(t, dtypes.Int32, Scalar[int32]().DType)
	require.Equal(t, dtypes.Complex64, Scalar[complex64]().DType)
}

func TestMakePanics(t *testing.T) {
	err := exceptions.Try(func() { _ = Make(dtypes.Float32, 3, 0) })
	require.NotNil(t, err)
}

func TestShapeIter(t *testing.T) {
	shape := Make(dtypes.Int8, 2, 3)
	var got [][]int
	for indices := range shape.Iter() {
		clone := make([]int, len(indices))
		copy(clone, indices)
		got = append(got, clone)
	}
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	require.Equal(t, want, got)

	// A scalar yields exactly one empty set of indices.
	count := 0
	for range Make(dtypes.Float64).Iter() {
		count++
	}
	require.Equal(t, 1, count)
}
