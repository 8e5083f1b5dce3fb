// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"math"
	"math/cmplx"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
)

type binOp int

const (
	binAdd binOp = iota
	binSub
	binMul
	binDiv
	binFloorDiv
	binMod
	binPow
	binLShift
	binRShift
	binAnd
	binXor
	binOr
	binMinimum
	binMaximum
)

// binaryOp applies an element-wise binary operation with broadcasting.
// Operands are dtype-promoted first (see promotePair); true division
// converts non-float operands to Float64, NumPy style.
func (a *Array) binaryOp(opName string, op binOp, otherAny arrays.Array) *Array {
	b := toDense(opName, otherAny)
	lhs, rhs := promotePair(opName, a, b)
	if op == binDiv && !isFloat(lhs.DType()) && !isComplex(lhs.DType()) {
		lhs = lhs.asTypeInternal(dtypes.Float64)
		rhs = rhs.asTypeInternal(dtypes.Float64)
	}
	dims := broadcastDims(opName, lhs.shape, rhs.shape)
	lhs, rhs = broadcastTo(lhs, dims), broadcastTo(rhs, dims)
	out := newDense(shapes.Make(lhs.DType(), dims...))
	out.weak = a.weak && b.weak
	dispatchBinary(opName, op, lhs, rhs, out)
	return out
}

func dispatchBinary(opName string, op binOp, lhs, rhs, out *Array) {
	switch lhs.DType() {
	case dtypes.Bool:
		binaryBoolKernel(opName, op, flatOf[bool](lhs), flatOf[bool](rhs), flatOf[bool](out))
	case dtypes.Int8:
		binaryIntKernel(opName, op, flatOf[int8](lhs), flatOf[int8](rhs), flatOf[int8](out))
	case dtypes.Int16:
		binaryIntKernel(opName, op, flatOf[int16](lhs), flatOf[int16](rhs), flatOf[int16](out))
	case dtypes.Int32:
		binaryIntKernel(opName, op, flatOf[int32](lhs), flatOf[int32](rhs), flatOf[int32](out))
	case dtypes.Int64:
		binaryIntKernel(opName, op, flatOf[int64](lhs), flatOf[int64](rhs), flatOf[int64](out))
	case dtypes.Uint8:
		binaryIntKernel(opName, op, flatOf[uint8](lhs), flatOf[uint8](rhs), flatOf[uint8](out))
	case dtypes.Uint16:
		binaryIntKernel(opName, op, flatOf[uint16](lhs), flatOf[uint16](rhs), flatOf[uint16](out))
	case dtypes.Uint32:
		binaryIntKernel(opName, op, flatOf[uint32](lhs), flatOf[uint32](rhs), flatOf[uint32](out))
	case dtypes.Uint64:
		binaryIntKernel(opName, op, flatOf[uint64](lhs), flatOf[uint64](rhs), flatOf[uint64](out))
	case dtypes.Float16:
		o32 := make([]float32, out.Size())
		binaryFloatKernel(opName, op, float32Flat(lhs), float32Flat(rhs), o32)
		f32ToF16(o32, flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		o32 := make([]float32, out.Size())
		binaryFloatKernel(opName, op, float32Flat(lhs), float32Flat(rhs), o32)
		f32ToBF16(o32, flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		binaryFloatKernel(opName, op, flatOf[float32](lhs), flatOf[float32](rhs), flatOf[float32](out))
	case dtypes.Float64:
		binaryFloatKernel(opName, op, flatOf[float64](lhs), flatOf[float64](rhs), flatOf[float64](out))
	case dtypes.Complex64:
		binaryComplexKernel(opName, op, flatOf[complex64](lhs), flatOf[complex64](rhs), flatOf[complex64](out))
	case dtypes.Complex128:
		binaryComplexKernel(opName, op, flatOf[complex128](lhs), flatOf[complex128](rhs), flatOf[complex128](out))
	default:
		exceptions.Panicf("dense.Array.%s: dtype %s not supported", opName, lhs.DType())
	}
}

func binaryIntKernel[T constraints.Integer](opName string, op binOp, lhs, rhs, out []T) {
	switch op {
	case binAdd:
		for i := range out {
			out[i] = lhs[i] + rhs[i]
		}
	case binSub:
		for i := range out {
			out[i] = lhs[i] - rhs[i]
		}
	case binMul:
		for i := range out {
			out[i] = lhs[i] * rhs[i]
		}
	case binFloorDiv:
		for i := range out {
			out[i] = floorDivInt(lhs[i], rhs[i])
		}
	case binMod:
		for i := range out {
			out[i] = modInt(lhs[i], rhs[i])
		}
	case binPow:
		for i := range out {
			out[i] = powInt(lhs[i], rhs[i])
		}
	case binLShift:
		for i := range out {
			out[i] = lhs[i] << rhs[i]
		}
	case binRShift:
		for i := range out {
			out[i] = lhs[i] >> rhs[i]
		}
	case binAnd:
		for i := range out {
			out[i] = lhs[i] & rhs[i]
		}
	case binXor:
		for i := range out {
			out[i] = lhs[i] ^ rhs[i]
		}
	case binOr:
		for i := range out {
			out[i] = lhs[i] | rhs[i]
		}
	case binMinimum:
		for i := range out {
			out[i] = min(lhs[i], rhs[i])
		}
	case binMaximum:
		for i := range out {
			out[i] = max(lhs[i], rhs[i])
		}
	default:
		exceptions.Panicf("dense.Array.%s: operation not defined for integer dtypes", opName)
	}
}

func binaryFloatKernel[T constraints.Float](opName string, op binOp, lhs, rhs, out []T) {
	switch op {
	case binAdd:
		for i := range out {
			out[i] = lhs[i] + rhs[i]
		}
	case binSub:
		for i := range out {
			out[i] = lhs[i] - rhs[i]
		}
	case binMul:
		for i := range out {
			out[i] = lhs[i] * rhs[i]
		}
	case binDiv:
		for i := range out {
			out[i] = lhs[i] / rhs[i]
		}
	case binFloorDiv:
		for i := range out {
			out[i] = floorDivFloat(lhs[i], rhs[i])
		}
	case binMod:
		for i := range out {
			out[i] = modFloat(lhs[i], rhs[i])
		}
	case binPow:
		for i := range out {
			out[i] = T(math.Pow(float64(lhs[i]), float64(rhs[i])))
		}
	case binMinimum:
		for i := range out {
			out[i] = min(lhs[i], rhs[i])
		}
	case binMaximum:
		for i := range out {
			out[i] = max(lhs[i], rhs[i])
		}
	default:
		exceptions.Panicf("dense.Array.%s: operation not defined for float dtypes", opName)
	}
}

func binaryComplexKernel[T constraints.Complex](opName string, op binOp, lhs, rhs, out []T) {
	switch op {
	case binAdd:
		for i := range out {
			out[i] = lhs[i] + rhs[i]
		}
	case binSub:
		for i := range out {
			out[i] = lhs[i] - rhs[i]
		}
	case binMul:
		for i := range out {
			out[i] = lhs[i] * rhs[i]
		}
	case binDiv:
		for i := range out {
			out[i] = lhs[i] / rhs[i]
		}
	case binPow:
		for i := range out {
			out[i] = T(cmplx.Pow(complex128(lhs[i]), complex128(rhs[i])))
		}
	default:
		exceptions.Panicf("dense.Array.%s: operation not defined for complex dtypes", opName)
	}
}

func binaryBoolKernel(opName string, op binOp, lhs, rhs, out []bool) {
	switch op {
	case binAnd:
		for i := range out {
			out[i] = lhs[i] && rhs[i]
		}
	case binXor:
		for i := range out {
			out[i] = lhs[i] != rhs[i]
		}
	case binOr, binMaximum:
		for i := range out {
			out[i] = lhs[i] || rhs[i]
		}
	case binMinimum:
		for i := range out {
			out[i] = lhs[i] && rhs[i]
		}
	default:
		exceptions.Panicf("dense.Array.%s: operation not defined for Bool, convert with AsType first", opName)
	}
}

// Add returns receiver + other, element-wise with broadcasting.
func (a *Array) Add(other arrays.Array) arrays.Array { return a.binaryOp("Add", binAdd, other) }

// Sub returns receiver - other, element-wise with broadcasting.
func (a *Array) Sub(other arrays.Array) arrays.Array { return a.binaryOp("Sub", binSub, other) }

// Mul returns receiver * other, element-wise with broadcasting.
func (a *Array) Mul(other arrays.Array) arrays.Array { return a.binaryOp("Mul", binMul, other) }

// Div returns receiver / other (true division): integer and boolean
// operands are converted to Float64 first.
func (a *Array) Div(other arrays.Array) arrays.Array { return a.binaryOp("Div", binDiv, other) }

// FloorDiv returns receiver / other rounded towards negative infinity.
func (a *Array) FloorDiv(other arrays.Array) arrays.Array {
	return a.binaryOp("FloorDiv", binFloorDiv, other)
}

// Mod returns the remainder of FloorDiv: the result takes the divisor's sign.
func (a *Array) Mod(other arrays.Array) arrays.Array { return a.binaryOp("Mod", binMod, other) }

// DivMod returns (FloorDiv, Mod) in one call.
func (a *Array) DivMod(other arrays.Array) (arrays.Array, arrays.Array) {
	return a.FloorDiv(other), a.Mod(other)
}

// Pow returns receiver raised to other, element-wise. Integer dtypes don't
// accept negative exponents.
func (a *Array) Pow(other arrays.Array) arrays.Array { return a.binaryOp("Pow", binPow, other) }

// LShift shifts left; integer dtypes only.
func (a *Array) LShift(other arrays.Array) arrays.Array {
	return a.binaryOp("LShift", binLShift, other)
}

// RShift shifts right; integer dtypes only.
func (a *Array) RShift(other arrays.Array) arrays.Array {
	return a.binaryOp("RShift", binRShift, other)
}

// BitAnd is the bitwise (logical, for Bool) and.
func (a *Array) BitAnd(other arrays.Array) arrays.Array {
	return a.binaryOp("BitAnd", binAnd, other)
}

// BitXor is the bitwise (logical, for Bool) exclusive-or.
func (a *Array) BitXor(other arrays.Array) arrays.Array {
	return a.binaryOp("BitXor", binXor, other)
}

// BitOr is the bitwise (logical, for Bool) or.
func (a *Array) BitOr(other arrays.Array) arrays.Array {
	return a.binaryOp("BitOr", binOr, other)
}

// The R-forms compute `other OP receiver`.

func (a *Array) RAdd(other arrays.Array) arrays.Array { return toDense("RAdd", other).Add(a) }
func (a *Array) RSub(other arrays.Array) arrays.Array { return toDense("RSub", other).Sub(a) }
func (a *Array) RMul(other arrays.Array) arrays.Array { return toDense("RMul", other).Mul(a) }
func (a *Array) RMatMul(other arrays.Array) arrays.Array {
	return toDense("RMatMul", other).MatMul(a)
}
func (a *Array) RDiv(other arrays.Array) arrays.Array { return toDense("RDiv", other).Div(a) }
func (a *Array) RFloorDiv(other arrays.Array) arrays.Array {
	return toDense("RFloorDiv", other).FloorDiv(a)
}
func (a *Array) RMod(other arrays.Array) arrays.Array { return toDense("RMod", other).Mod(a) }
func (a *Array) RDivMod(other arrays.Array) (arrays.Array, arrays.Array) {
	return toDense("RDivMod", other).DivMod(a)
}
func (a *Array) RPow(other arrays.Array) arrays.Array { return toDense("RPow", other).Pow(a) }
func (a *Array) RLShift(other arrays.Array) arrays.Array {
	return toDense("RLShift", other).LShift(a)
}
func (a *Array) RRShift(other arrays.Array) arrays.Array {
	return toDense("RRShift", other).RShift(a)
}
func (a *Array) RBitAnd(other arrays.Array) arrays.Array {
	return toDense("RBitAnd", other).BitAnd(a)
}
func (a *Array) RBitXor(other arrays.Array) arrays.Array {
	return toDense("RBitXor", other).BitXor(a)
}
func (a *Array) RBitOr(other arrays.Array) arrays.Array {
	return toDense("RBitOr", other).BitOr(a)
}

// MatMul is the matrix product. Both operands must be of rank 1 or 2:
// a rank-1 first operand is treated as a row vector, a rank-1 second operand
// as a column vector, and the corresponding axis is dropped from the result.
// Scalars are not accepted (use Mul).
func (a *Array) MatMul(otherAny arrays.Array) arrays.Array {
	b := toDense("MatMul", otherAny)
	lhs, rhs := promotePair("MatMul", a, b)
	if lhs.Rank() == 0 || rhs.Rank() == 0 {
		exceptions.Panicf("dense.Array.MatMul: scalar operands are not allowed, use Mul")
	}
	if lhs.Rank() > 2 || rhs.Rank() > 2 {
		exceptions.Panicf("dense.Array.MatMul: operands of rank > 2 are not supported (got %s x %s)",
			lhs.shape, rhs.shape)
	}
	if lhs.DType() == dtypes.Bool {
		exceptions.Panicf("dense.Array.MatMul: not defined for Bool, convert with AsType first")
	}
	m, k := 1, lhs.shape.Dim(-1)
	if lhs.Rank() == 2 {
		m = lhs.shape.Dimensions[0]
	}
	k2, n := rhs.shape.Dimensions[0], 1
	if rhs.Rank() == 2 {
		n = rhs.shape.Dimensions[1]
	}
	if k != k2 {
		exceptions.Panicf("dense.Array.MatMul: contracting dimensions mismatch, %s x %s", lhs.shape, rhs.shape)
	}

	// Result dimensions: m and n, minus the axes borrowed by rank-1 operands.
	var dims []int
	if lhs.Rank() == 2 {
		dims = append(dims, m)
	}
	if rhs.Rank() == 2 {
		dims = append(dims, n)
	}
	out := newDense(shapes.Make(lhs.DType(), dims...))

	switch lhs.DType() {
	case dtypes.Int8:
		matMulKernel(flatOf[int8](lhs), flatOf[int8](rhs), m, k, n, flatOf[int8](out))
	case dtypes.Int16:
		matMulKernel(flatOf[int16](lhs), flatOf[int16](rhs), m, k, n, flatOf[int16](out))
	case dtypes.Int32:
		matMulKernel(flatOf[int32](lhs), flatOf[int32](rhs), m, k, n, flatOf[int32](out))
	case dtypes.Int64:
		matMulKernel(flatOf[int64](lhs), flatOf[int64](rhs), m, k, n, flatOf[int64](out))
	case dtypes.Uint8:
		matMulKernel(flatOf[uint8](lhs), flatOf[uint8](rhs), m, k, n, flatOf[uint8](out))
	case dtypes.Uint16:
		matMulKernel(flatOf[uint16](lhs), flatOf[uint16](rhs), m, k, n, flatOf[uint16](out))
	case dtypes.Uint32:
		matMulKernel(flatOf[uint32](lhs), flatOf[uint32](rhs), m, k, n, flatOf[uint32](out))
	case dtypes.Uint64:
		matMulKernel(flatOf[uint64](lhs), flatOf[uint64](rhs), m, k, n, flatOf[uint64](out))
	case dtypes.Float16:
		o32 := make([]float32, out.Size())
		matMulKernel(float32Flat(lhs), float32Flat(rhs), m, k, n, o32)
		f32ToF16(o32, flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		o32 := make([]float32, out.Size())
		matMulKernel(float32Flat(lhs), float32Flat(rhs), m, k, n, o32)
		f32ToBF16(o32, flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		matMulKernel(flatOf[float32](lhs), flatOf[float32](rhs), m, k, n, flatOf[float32](out))
	case dtypes.Float64:
		matMulKernel(flatOf[float64](lhs), flatOf[float64](rhs), m, k, n, flatOf[float64](out))
	case dtypes.Complex64:
		matMulKernel(flatOf[complex64](lhs), flatOf[complex64](rhs), m, k, n, flatOf[complex64](out))
	case dtypes.Complex128:
		matMulKernel(flatOf[complex128](lhs), flatOf[complex128](rhs), m, k, n, flatOf[complex128](out))
	default:
		exceptions.Panicf("dense.Array.MatMul: dtype %s not supported", lhs.DType())
	}
	return out
}

func matMulKernel[T podNumeric](lhs, rhs []T, m, k, n int, out []T) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var acc T
			for p := 0; p < k; p++ {
				acc += lhs[i*k+p] * rhs[p*n+j]
			}
			out[i*n+j] = acc
		}
	}
}

// Dot is the generalized dot product: Mul if either operand is a scalar,
// the inner product for two rank-1 operands, MatMul otherwise.
func (a *Array) Dot(otherAny arrays.Array) arrays.Array {
	b := toDense("Dot", otherAny)
	if a.Rank() == 0 || b.Rank() == 0 {
		return a.Mul(b)
	}
	return a.MatMul(b)
}
