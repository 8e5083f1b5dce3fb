// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBroadcast(t *testing.T) {
	a := FromFlatDataAndDimensions([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	row := FromValue([]float64{10, 20, 30})
	sum := a.Add(row)
	assert.Equal(t, [][]float64{{11, 22, 33}, {14, 25, 36}}, sum.Value())

	// Scalars broadcast everywhere.
	shifted := a.Add(FromScalar(float64(1)))
	assert.Equal(t, [][]float64{{2, 3, 4}, {5, 6, 7}}, shifted.Value())

	// Column against row: [2 1] + [3] -> [2 3].
	col := FromFlatDataAndDimensions([]float64{100, 200}, 2, 1)
	grid := col.Add(row)
	assert.Equal(t, [][]float64{{110, 120, 130}, {210, 220, 230}}, grid.Value())

	// Incompatible dimensions panic.
	require.Panics(t, func() { a.Add(FromValue([]float64{1, 2})) })
}

func TestTrueDivision(t *testing.T) {
	a := FromValue([]int64{3, 4})
	q := a.Div(FromScalar(int64(2)))
	require.Equal(t, dtypes.Float64, q.DType())
	assert.Equal(t, []float64{1.5, 2}, q.Value())

	// Float division keeps the dtype.
	f := FromValue([]float32{3, 4}).Div(FromScalar(float32(2)))
	require.Equal(t, dtypes.Float32, f.DType())
}

func TestFloorDivAndMod(t *testing.T) {
	a := FromValue([]int64{7, -7, 7, -7})
	b := FromValue([]int64{2, 2, -2, -2})
	q, r := a.DivMod(b)
	// Quotient rounds towards negative infinity, remainder takes the
	// divisor's sign.
	assert.Equal(t, []int64{3, -4, -4, 3}, q.Value())
	assert.Equal(t, []int64{1, 1, -1, -1}, r.Value())

	require.Panics(t, func() { a.FloorDiv(FromScalar(int64(0))) })

	fq := FromValue([]float64{7.5}).FloorDiv(FromScalar(float64(2)))
	assert.Equal(t, []float64{3}, fq.Value())
}

func TestPow(t *testing.T) {
	a := FromValue([]int64{2, 3, 10})
	p := a.Pow(FromScalar(int64(3)))
	assert.Equal(t, []int64{8, 27, 1000}, p.Value())

	require.Panics(t, func() { a.Pow(FromScalar(int64(-1))) })

	f := FromScalar(float64(2)).Pow(FromScalar(float64(-1)))
	assert.Equal(t, float64(0.5), f.Item())
}

func TestBitwiseAndShifts(t *testing.T) {
	a := FromValue([]uint8{0b1100, 0b1010})
	b := FromValue([]uint8{0b1010, 0b1010})
	assert.Equal(t, []uint8{0b1000, 0b1010}, a.BitAnd(b).Value())
	assert.Equal(t, []uint8{0b1110, 0b1010}, a.BitOr(b).Value())
	assert.Equal(t, []uint8{0b0110, 0}, a.BitXor(b).Value())

	assert.Equal(t, []uint8{0b110000, 0b101000}, a.LShift(FromValue([]uint8{2, 2})).Value())
	assert.Equal(t, []uint8{0b11, 0b10}, a.RShift(FromValue([]uint8{2, 2})).Value())

	// Booleans get the logical forms.
	bools := FromValue([]bool{true, false})
	mask := FromValue([]bool{true, true})
	assert.Equal(t, []bool{true, false}, bools.BitAnd(mask).Value())
	assert.Equal(t, []bool{false, true}, bools.BitXor(mask).Value())
	// Arithmetic on booleans doesn't fly.
	require.Panics(t, func() { bools.Add(mask) })
}

func TestReflectedForms(t *testing.T) {
	a := FromScalar(int64(3))
	b := FromScalar(int64(10))
	assert.Equal(t, int64(7), b.Sub(a).Item())
	assert.Equal(t, int64(7), a.RSub(b).Item())
	assert.Equal(t, int64(1), a.RMod(b).Item()) // 10 mod 3

	q, r := a.RDivMod(b)
	assert.Equal(t, int64(3), q.Item())
	assert.Equal(t, int64(1), r.Item())
}

func TestMatMul(t *testing.T) {
	a := FromFlatDataAndDimensions([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := FromFlatDataAndDimensions([]float64{7, 8, 9, 10, 11, 12}, 3, 2)
	prod := a.MatMul(b)
	assert.Equal(t, [][]float64{{58, 64}, {139, 154}}, prod.Value())

	// Vector forms drop the borrowed axis.
	v := FromValue([]float64{1, 1, 1})
	assert.Equal(t, []float64{6, 15}, a.MatMul(v).Value())
	assert.Equal(t, 1, a.MatMul(v).Rank())

	inner := v.MatMul(FromValue([]float64{1, 2, 3}))
	assert.Equal(t, 0, inner.Rank())
	assert.Equal(t, float64(6), inner.Item())

	// RMatMul computes other x receiver.
	assert.Equal(t, [][]float64{{58, 64}, {139, 154}}, b.RMatMul(a).Value())

	require.Panics(t, func() { a.MatMul(FromScalar(float64(2))) })
	require.Panics(t, func() { a.MatMul(FromValue([]float64{1, 2})) }) // contracting mismatch
}

func TestDot(t *testing.T) {
	v := FromValue([]float64{1, 2, 3})
	w := FromValue([]float64{4, 5, 6})
	assert.Equal(t, float64(32), v.Dot(w).Item())

	// Scalar operands multiply.
	scaled := v.Dot(FromScalar(float64(2)))
	assert.Equal(t, []float64{2, 4, 6}, scaled.Value())
}

func TestComparisons(t *testing.T) {
	a := FromValue([]int32{1, 5, 3})
	b := FromValue([]int32{2, 5, 1})
	assert.Equal(t, []bool{true, false, false}, a.Lt(b).Value())
	assert.Equal(t, []bool{true, true, false}, a.Le(b).Value())
	assert.Equal(t, []bool{false, true, false}, a.Eq(b).Value())
	assert.Equal(t, []bool{true, false, true}, a.Ne(b).Value())
	assert.Equal(t, []bool{false, false, true}, a.Gt(b).Value())
	assert.Equal(t, []bool{false, true, true}, a.Ge(b).Value())
	require.Equal(t, dtypes.Bool, a.Lt(b).DType())

	// Complex values compare for equality only.
	c := FromValue([]complex128{1 + 2i, 3})
	d := FromValue([]complex128{1 + 2i, 4})
	assert.Equal(t, []bool{true, false}, c.Eq(d).Value())
	require.Panics(t, func() { c.Lt(d) })
}

func TestUnary(t *testing.T) {
	a := FromValue([]int64{1, -2, 3})
	assert.Equal(t, []int64{-1, 2, -3}, a.Neg().Value())
	assert.Equal(t, []int64{1, 2, 3}, a.Abs().Value())
	assert.Equal(t, []int64{1, -2, 3}, a.Pos().Value())
	assert.Equal(t, []int64{-2, 1, -4}, a.Invert().Value())

	bools := FromValue([]bool{true, false})
	assert.Equal(t, []bool{false, true}, bools.Invert().Value())
	require.Panics(t, func() { bools.Neg() })

	// Abs of complex is the magnitude, in the matching float dtype.
	c := FromValue([]complex128{3 + 4i})
	mag := c.Abs()
	require.Equal(t, dtypes.Float64, mag.DType())
	assert.Equal(t, []float64{5}, mag.Value())
}

func TestRound(t *testing.T) {
	a := FromValue([]float64{0.5, 1.5, 2.5, -0.5})
	// Ties go to the even neighbor.
	assert.Equal(t, []float64{0, 2, 2, 0}, a.Round(0).Value())

	b := FromValue([]float64{0.25, 0.35})
	rounded := toDense("test", b.Round(1))
	assert.True(t, rounded.InDelta(FromValue([]float64{0.2, 0.4}), 1e-9))

	// Negative decimals round left of the decimal point, for integers too.
	big := FromValue([]int64{15, 24, 25})
	assert.Equal(t, []int64{20, 20, 20}, big.Round(-1).Value())
}

func TestScalarCoercions(t *testing.T) {
	assert.True(t, FromScalar(int64(3)).Bool())
	assert.False(t, FromScalar(float64(0)).Bool())
	assert.Equal(t, int64(3), FromScalar(float64(3.9)).Int()) // truncates towards zero
	assert.Equal(t, float64(2.5), FromScalar(float32(2.5)).Float())
	assert.Equal(t, complex128(1+2i), FromScalar(complex64(1+2i)).Complex())
	assert.Equal(t, 3, FromScalar(int32(3)).Index())

	// A single-element rank-1 array coerces too.
	assert.Equal(t, int64(7), FromValue([]int64{7}).Int())

	require.Panics(t, func() { FromValue([]int64{1, 2}).Int() })
	require.Panics(t, func() { FromScalar(float64(1.5)).Index() })
	require.Panics(t, func() { FromScalar(complex128(1i)).Float() })
}

func TestHalfPrecision(t *testing.T) {
	a := toDense("test", FromValue([]float32{1.5, 2.5}).AsType(dtypes.Float16))
	require.Equal(t, dtypes.Float16, a.DType())
	sum := toDense("test", a.Add(a))
	require.Equal(t, dtypes.Float16, sum.DType())
	assert.True(t, sum.InDelta(FromValue([]float32{3, 5}), 1e-3))

	b := toDense("test", FromValue([]float32{1, 2}).AsType(dtypes.BFloat16))
	prod := toDense("test", b.Mul(b))
	assert.True(t, prod.InDelta(FromValue([]float32{1, 4}), 1e-2))
}
