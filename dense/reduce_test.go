// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"math"
	"testing"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	a := FromFlatDataAndDimensions([]float64{1, 2, 3, 4, 5, 6}, 2, 3)

	total := a.Sum()
	assert.Equal(t, 0, total.Rank())
	assert.Equal(t, float64(21), total.Item())

	byCol := a.Sum(arrays.WithAxes(0))
	assert.Equal(t, []float64{5, 7, 9}, byCol.Value())

	byRow := a.Sum(arrays.WithAxes(-1))
	assert.Equal(t, []float64{6, 15}, byRow.Value())

	kept := a.Sum(arrays.WithAxes(1), arrays.WithKeepDims())
	assert.Equal(t, []int{2, 1}, kept.Shape().Dimensions)
	assert.Equal(t, [][]float64{{6}, {15}}, kept.Value())

	require.Panics(t, func() { a.Sum(arrays.WithAxes(2)) })
	require.Panics(t, func() { a.Sum(arrays.WithAxes(0, 0)) })
}

func TestSumOfBooleansCounts(t *testing.T) {
	a := FromValue([]bool{true, false, true, true})
	n := a.Sum()
	require.Equal(t, dtypes.Int64, n.DType())
	assert.Equal(t, int64(3), n.Item())
}

func TestProd(t *testing.T) {
	a := FromValue([]int64{2, 3, 4})
	assert.Equal(t, int64(24), a.Prod().Item())
	assert.Equal(t, int64(48), a.Prod(arrays.WithInitial(FromScalar(int64(2)))).Item())
}

func TestMinMaxWithWhere(t *testing.T) {
	a := FromFlatDataAndDimensions([]int32{9, 1, 5, 3, 7, 2}, 2, 3)
	assert.Equal(t, int32(9), a.Max().Item())
	assert.Equal(t, int32(1), a.Min().Item())

	assert.Equal(t, []int32{9, 7, 5}, a.Max(arrays.WithAxes(0)).Value())

	mask := FromValue([][]bool{{false, true, true}, {true, true, false}})
	assert.Equal(t, int32(7), a.Max(arrays.WithWhere(mask)).Item())

	// A mask can empty a cell: Max then needs an Initial seed.
	colMask := FromValue([][]bool{{false, true, true}, {false, true, true}})
	require.Panics(t, func() { a.Max(arrays.WithAxes(0), arrays.WithWhere(colMask)) })
	seeded := a.Max(arrays.WithAxes(0), arrays.WithWhere(colMask), arrays.WithInitial(FromScalar(int32(-1))))
	assert.Equal(t, []int32{-1, 7, 5}, seeded.Value())
}

func TestMeanVarStd(t *testing.T) {
	a := FromValue([]float64{1, 2, 3, 4})
	assert.Equal(t, float64(2.5), a.Mean().Item())
	assert.Equal(t, float64(1.25), a.Var().Item())
	assert.InDelta(t, math.Sqrt(1.25), a.Std().Item().(float64), 1e-12)

	// DDof switches to the sample variance.
	sample := a.Var(arrays.WithDDof(1))
	assert.InDelta(t, 5.0/3.0, sample.Item().(float64), 1e-12)

	// Integer inputs average as Float64.
	ints := FromValue([]int32{1, 2})
	m := ints.Mean()
	require.Equal(t, dtypes.Float64, m.DType())
	assert.Equal(t, float64(1.5), m.Item())

	// Variance of complex values is real.
	c := FromValue([]complex128{1 + 1i, 1 - 1i})
	v := c.Var()
	require.Equal(t, dtypes.Float64, v.DType())
	assert.Equal(t, float64(1), v.Item())
	mean := c.Mean()
	require.Equal(t, dtypes.Complex128, mean.DType())
	assert.Equal(t, complex128(1), mean.Item())
}

func TestArgMaxArgMin(t *testing.T) {
	a := FromFlatDataAndDimensions([]float32{3, 9, 1, 7, 2, 8}, 2, 3)

	// No axis: index into the flattened array.
	flat := a.ArgMax()
	require.Equal(t, dtypes.Int64, flat.DType())
	assert.Equal(t, int64(1), flat.Item())
	assert.Equal(t, int64(2), a.ArgMin().Item())

	assert.Equal(t, []int64{1, 0, 1}, a.ArgMax(arrays.WithAxes(0)).Value())
	assert.Equal(t, []int64{1, 2}, a.ArgMax(arrays.WithAxes(1)).Value())

	// Ties resolve to the first occurrence.
	ties := FromValue([]int64{5, 5, 5})
	assert.Equal(t, int64(0), ties.ArgMax().Item())

	require.Panics(t, func() { a.ArgMax(arrays.WithAxes(0, 1)) })
}

func TestCumSumCumProd(t *testing.T) {
	a := FromValue([]int64{1, 2, 3})
	assert.Equal(t, []int64{1, 3, 6}, a.CumSum().Value())
	assert.Equal(t, []int64{1, 2, 6}, a.CumProd().Value())

	grid := FromFlatDataAndDimensions([]int64{1, 2, 3, 4}, 2, 2)
	assert.Equal(t, [][]int64{{1, 2}, {4, 6}}, grid.CumSum(arrays.WithAxes(0)).Value())
	assert.Equal(t, [][]int64{{1, 3}, {3, 7}}, grid.CumSum(arrays.WithAxes(1)).Value())

	// No axis flattens first.
	assert.Equal(t, []int64{1, 3, 6, 10}, grid.CumSum().Value())

	bools := FromValue([]bool{true, true, false, true})
	counts := bools.CumSum()
	require.Equal(t, dtypes.Int64, counts.DType())
	assert.Equal(t, []int64{1, 2, 2, 3}, counts.Value())
}

func TestPtp(t *testing.T) {
	a := FromFlatDataAndDimensions([]float64{1, 9, 4, 2, 8, 6}, 2, 3)
	assert.Equal(t, float64(8), a.Ptp().Item())
	assert.Equal(t, []float64{8, 6}, a.Ptp(arrays.WithAxes(1)).Value())
}

func TestAllAny(t *testing.T) {
	a := FromValue([][]int64{{1, 0}, {2, 3}})
	assert.Equal(t, false, a.All().Item())
	assert.Equal(t, true, a.Any().Item())
	assert.Equal(t, []bool{true, false}, a.All(arrays.WithAxes(0)).Value())
	assert.Equal(t, []bool{false, true}, a.All(arrays.WithAxes(1)).Value())

	zeros := FromValue([]float64{0, 0})
	assert.Equal(t, false, zeros.Any().Item())
}

func TestReduceIntoOut(t *testing.T) {
	a := FromFlatDataAndDimensions([]int64{1, 2, 3, 4, 5, 6}, 2, 3)
	out := FromShape(shapes.Make(dtypes.Int64, 3))
	got := a.Sum(arrays.WithAxes(0), arrays.WithOut(out))
	assert.Same(t, out, got)
	assert.Equal(t, []int64{5, 7, 9}, out.Value())

	// Out of the wrong shape panics.
	bad := FromShape(shapes.Make(dtypes.Int64, 2))
	require.Panics(t, func() { a.Sum(arrays.WithAxes(0), arrays.WithOut(bad)) })
}

func TestReduceScalarReceiver(t *testing.T) {
	s := FromScalar(float64(5))
	assert.Equal(t, float64(5), s.Sum().Item())
	assert.Equal(t, float64(5), s.Mean().Item())
	assert.Equal(t, []float64{5}, s.CumSum().Value())
}
