// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

type cmpOp int

const (
	cmpEq cmpOp = iota
	cmpNe
	cmpLt
	cmpLe
	cmpGt
	cmpGe
)

// compareOp applies an element-wise comparison with broadcasting; the result
// is always a Bool array. Complex dtypes only support Eq and Ne.
func (a *Array) compareOp(opName string, op cmpOp, otherAny arrays.Array) *Array {
	b := toDense(opName, otherAny)
	lhs, rhs := promotePair(opName, a, b)
	dims := broadcastDims(opName, lhs.shape, rhs.shape)
	lhs, rhs = broadcastTo(lhs, dims), broadcastTo(rhs, dims)
	out := newDense(shapes.Make(dtypes.Bool, dims...))
	dst := flatOf[bool](out)

	switch lhs.DType() {
	case dtypes.Bool:
		l, r := flatOf[bool](lhs), flatOf[bool](rhs)
		switch op {
		case cmpEq:
			for i := range dst {
				dst[i] = l[i] == r[i]
			}
		case cmpNe:
			for i := range dst {
				dst[i] = l[i] != r[i]
			}
		default:
			// Ordering on booleans compares false < true.
			orderedCmpKernel(op, convertFlat[uint8](lhs), convertFlat[uint8](rhs), dst)
		}
	case dtypes.Int8:
		orderedCmpKernel(op, flatOf[int8](lhs), flatOf[int8](rhs), dst)
	case dtypes.Int16:
		orderedCmpKernel(op, flatOf[int16](lhs), flatOf[int16](rhs), dst)
	case dtypes.Int32:
		orderedCmpKernel(op, flatOf[int32](lhs), flatOf[int32](rhs), dst)
	case dtypes.Int64:
		orderedCmpKernel(op, flatOf[int64](lhs), flatOf[int64](rhs), dst)
	case dtypes.Uint8:
		orderedCmpKernel(op, flatOf[uint8](lhs), flatOf[uint8](rhs), dst)
	case dtypes.Uint16:
		orderedCmpKernel(op, flatOf[uint16](lhs), flatOf[uint16](rhs), dst)
	case dtypes.Uint32:
		orderedCmpKernel(op, flatOf[uint32](lhs), flatOf[uint32](rhs), dst)
	case dtypes.Uint64:
		orderedCmpKernel(op, flatOf[uint64](lhs), flatOf[uint64](rhs), dst)
	case dtypes.Float16, dtypes.BFloat16:
		orderedCmpKernel(op, float32Flat(lhs), float32Flat(rhs), dst)
	case dtypes.Float32:
		orderedCmpKernel(op, flatOf[float32](lhs), flatOf[float32](rhs), dst)
	case dtypes.Float64:
		orderedCmpKernel(op, flatOf[float64](lhs), flatOf[float64](rhs), dst)
	case dtypes.Complex64:
		complexCmpKernel(opName, op, flatOf[complex64](lhs), flatOf[complex64](rhs), dst)
	case dtypes.Complex128:
		complexCmpKernel(opName, op, flatOf[complex128](lhs), flatOf[complex128](rhs), dst)
	default:
		exceptions.Panicf("dense.Array.%s: dtype %s not supported", opName, lhs.DType())
	}
	return out
}

func orderedCmpKernel[T podReal](op cmpOp, lhs, rhs []T, out []bool) {
	switch op {
	case cmpEq:
		for i := range out {
			out[i] = lhs[i] == rhs[i]
		}
	case cmpNe:
		for i := range out {
			out[i] = lhs[i] != rhs[i]
		}
	case cmpLt:
		for i := range out {
			out[i] = lhs[i] < rhs[i]
		}
	case cmpLe:
		for i := range out {
			out[i] = lhs[i] <= rhs[i]
		}
	case cmpGt:
		for i := range out {
			out[i] = lhs[i] > rhs[i]
		}
	case cmpGe:
		for i := range out {
			out[i] = lhs[i] >= rhs[i]
		}
	}
}

func complexCmpKernel[T ~complex64 | ~complex128](opName string, op cmpOp, lhs, rhs []T, out []bool) {
	switch op {
	case cmpEq:
		for i := range out {
			out[i] = lhs[i] == rhs[i]
		}
	case cmpNe:
		for i := range out {
			out[i] = lhs[i] != rhs[i]
		}
	default:
		exceptions.Panicf("dense.Array.%s: complex dtypes are not ordered", opName)
	}
}

// Eq returns element-wise equality as a Bool array.
func (a *Array) Eq(other arrays.Array) arrays.Array { return a.compareOp("Eq", cmpEq, other) }

// Ne returns element-wise inequality as a Bool array.
func (a *Array) Ne(other arrays.Array) arrays.Array { return a.compareOp("Ne", cmpNe, other) }

// Lt returns element-wise "less than" as a Bool array.
func (a *Array) Lt(other arrays.Array) arrays.Array { return a.compareOp("Lt", cmpLt, other) }

// Le returns element-wise "less or equal" as a Bool array.
func (a *Array) Le(other arrays.Array) arrays.Array { return a.compareOp("Le", cmpLe, other) }

// Gt returns element-wise "greater than" as a Bool array.
func (a *Array) Gt(other arrays.Array) arrays.Array { return a.compareOp("Gt", cmpGt, other) }

// Ge returns element-wise "greater or equal" as a Bool array.
func (a *Array) Ge(other arrays.Array) arrays.Array { return a.compareOp("Ge", cmpGe, other) }
