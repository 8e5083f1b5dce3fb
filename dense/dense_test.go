// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"testing"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/avals"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValue(t *testing.T) {
	a := FromValue([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.True(t, a.Shape().Equal(shapes.Make(dtypes.Float32, 2, 3)))
	assert.Equal(t, [][]float32{{1, 2, 3}, {4, 5, 6}}, a.Value())

	// Go int maps to Int64.
	scalar := FromValue(5)
	require.Equal(t, dtypes.Int64, scalar.DType())
	assert.Equal(t, 0, scalar.Rank())
	assert.Equal(t, int64(5), scalar.Item())

	// Irregular nested slices don't convert.
	require.Panics(t, func() { FromValue([][]int{{1, 2}, {3}}) })
	// Neither do empty slices: shapes have no zero dimensions.
	require.Panics(t, func() { FromValue([]float64{}) })

	// An arrays.Array value passes through.
	same := FromValue(a)
	assert.Same(t, a, same)
}

func TestFromFlatDataAndDimensions(t *testing.T) {
	a := FromFlatDataAndDimensions([]int32{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(t, int32(6), a.Item(1, 2))
	assert.Equal(t, int32(4), a.Item(1, 0))

	// Go `int` data converts to the Int64 storage.
	b := FromFlatDataAndDimensions([]int{7, 8}, 2)
	require.Equal(t, dtypes.Int64, b.DType())
	assert.Equal(t, int64(8), b.Item(1))

	require.Panics(t, func() { FromFlatDataAndDimensions([]int32{1, 2, 3}, 2, 2) })
}

func TestFromShapeAndScalar(t *testing.T) {
	a := FromShape(shapes.Make(dtypes.Float64, 2, 2))
	assert.Equal(t, 4, a.Size())
	assert.Equal(t, float64(0), a.Item(1, 1))

	s := FromScalar(float32(3.5))
	assert.Equal(t, dtypes.Float32, s.DType())
	assert.Equal(t, float32(3.5), s.Item())

	require.Panics(t, func() { FromShape(shapes.Invalid()) })
}

func TestBasicProperties(t *testing.T) {
	a := FromFlatDataAndDimensions([]uint16{1, 2, 3, 4, 5, 6}, 3, 2)
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, 6, a.Size())
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, uintptr(12), a.NBytes())

	scalar := FromScalar(int8(1))
	require.Panics(t, func() { scalar.Len() })
}

func TestEqualAndInDelta(t *testing.T) {
	a := FromValue([]float64{1, 2, 3})
	b := FromValue([]float64{1, 2, 3})
	c := FromValue([]float64{1, 2, 3.0001})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.InDelta(c, 0.001))
	assert.False(t, a.InDelta(c, 0.00001))

	// Same values, different dtype: not Equal, but within delta.
	d := FromValue([]float32{1, 2, 3})
	assert.False(t, a.Equal(d))
	assert.True(t, a.InDelta(d, 1e-6))
}

func TestWeakTypePromotion(t *testing.T) {
	weak := FromScalar(int64(2)).WithWeakType(true)
	f := FromValue([]float32{1.5, 2.5})

	sum := f.Add(weak)
	require.Equal(t, dtypes.Float32, sum.DType())
	assert.Equal(t, []float32{3.5, 4.5}, sum.Value())
	assert.False(t, sum.WeakType())

	// Two strong operands of different dtypes don't mix.
	strong := FromScalar(int64(2))
	require.Panics(t, func() { f.Add(strong) })

	// Two weak operands stay weak.
	w2 := FromScalar(int64(3)).WithWeakType(true)
	both := weak.Add(w2)
	assert.True(t, both.WeakType())

	// AsType always returns a strongly typed result.
	assert.False(t, weak.AsType(dtypes.Float64).WeakType())
}

func TestAval(t *testing.T) {
	a := FromValue([]int32{1, 2})
	aval := a.Aval()
	concrete, ok := aval.(avals.Concrete)
	require.True(t, ok)
	assert.Equal(t, dtypes.Int32, concrete.DType())
	assert.True(t, concrete.Shape().Equal(a.Shape()))
	assert.Same(t, a, concrete.Value())
	assert.True(t, avals.IsArrayKind(aval))
}

func TestRegisteredAsImplementer(t *testing.T) {
	// The package init registers *Array, so plain dense arrays classify as
	// array-like without consulting the descriptor.
	assert.True(t, arrays.IsArrayLike(FromScalar(int32(1))))
}

func TestString(t *testing.T) {
	small := FromValue([]int64{1, 2, 3})
	assert.Contains(t, small.String(), "[1 2 3]")

	big := FromShape(shapes.Make(dtypes.Float32, 100, 100))
	assert.Contains(t, big.String(), "(Float32)[100 100]")
	assert.NotContains(t, big.String(), "[0 0")
}

func TestValueSharesAndItem(t *testing.T) {
	a := FromFlatDataAndDimensions([]float64{1, 2, 3, 4}, 2, 2)
	v := a.Value().([][]float64)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, v)

	assert.Equal(t, float64(4), a.Item(-1, -1))
	require.Panics(t, func() { a.Item(2, 0) })
	require.Panics(t, func() { a.Item(0) })
	require.Panics(t, func() { a.Item() }) // 4 elements, no single item
}
