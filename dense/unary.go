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

// Neg returns the element-wise negation. Unsigned dtypes wrap around; Bool is
// not supported.
func (a *Array) Neg() arrays.Array {
	out := newDense(a.shape.Clone())
	out.weak = a.weak
	switch a.DType() {
	case dtypes.Int8:
		negKernel(flatOf[int8](a), flatOf[int8](out))
	case dtypes.Int16:
		negKernel(flatOf[int16](a), flatOf[int16](out))
	case dtypes.Int32:
		negKernel(flatOf[int32](a), flatOf[int32](out))
	case dtypes.Int64:
		negKernel(flatOf[int64](a), flatOf[int64](out))
	case dtypes.Uint8:
		negKernel(flatOf[uint8](a), flatOf[uint8](out))
	case dtypes.Uint16:
		negKernel(flatOf[uint16](a), flatOf[uint16](out))
	case dtypes.Uint32:
		negKernel(flatOf[uint32](a), flatOf[uint32](out))
	case dtypes.Uint64:
		negKernel(flatOf[uint64](a), flatOf[uint64](out))
	case dtypes.Float16:
		o32 := float32Flat(a)
		negKernel(o32, o32)
		f32ToF16(o32, flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		o32 := float32Flat(a)
		negKernel(o32, o32)
		f32ToBF16(o32, flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		negKernel(flatOf[float32](a), flatOf[float32](out))
	case dtypes.Float64:
		negKernel(flatOf[float64](a), flatOf[float64](out))
	case dtypes.Complex64:
		negKernel(flatOf[complex64](a), flatOf[complex64](out))
	case dtypes.Complex128:
		negKernel(flatOf[complex128](a), flatOf[complex128](out))
	default:
		exceptions.Panicf("dense.Array.Neg: not defined for %s", a.DType())
	}
	return out
}

func negKernel[T podNumeric](src, dst []T) {
	for i, v := range src {
		dst[i] = -v
	}
}

// Pos returns a copy of the array (the unary plus).
func (a *Array) Pos() arrays.Array {
	return a.copyInternal()
}

// Abs returns the element-wise absolute value. For complex dtypes the result
// is the magnitude, in the corresponding float dtype.
func (a *Array) Abs() arrays.Array {
	switch a.DType() {
	case dtypes.Bool, dtypes.Uint8, dtypes.Uint16, dtypes.Uint32, dtypes.Uint64:
		return a.copyInternal()
	case dtypes.Complex64:
		out := newDense(shapes.Make(dtypes.Float32, a.shape.Dimensions...))
		out.weak = a.weak
		dst := flatOf[float32](out)
		for i, v := range flatOf[complex64](a) {
			dst[i] = float32(cmplx.Abs(complex128(v)))
		}
		return out
	case dtypes.Complex128:
		out := newDense(shapes.Make(dtypes.Float64, a.shape.Dimensions...))
		out.weak = a.weak
		dst := flatOf[float64](out)
		for i, v := range flatOf[complex128](a) {
			dst[i] = cmplx.Abs(v)
		}
		return out
	}
	out := newDense(a.shape.Clone())
	out.weak = a.weak
	switch a.DType() {
	case dtypes.Int8:
		absKernel(flatOf[int8](a), flatOf[int8](out))
	case dtypes.Int16:
		absKernel(flatOf[int16](a), flatOf[int16](out))
	case dtypes.Int32:
		absKernel(flatOf[int32](a), flatOf[int32](out))
	case dtypes.Int64:
		absKernel(flatOf[int64](a), flatOf[int64](out))
	case dtypes.Float16:
		o32 := float32Flat(a)
		absKernel(o32, o32)
		f32ToF16(o32, flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		o32 := float32Flat(a)
		absKernel(o32, o32)
		f32ToBF16(o32, flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		absKernel(flatOf[float32](a), flatOf[float32](out))
	case dtypes.Float64:
		absKernel(flatOf[float64](a), flatOf[float64](out))
	default:
		exceptions.Panicf("dense.Array.Abs: not defined for %s", a.DType())
	}
	return out
}

func absKernel[T podReal](src, dst []T) {
	for i, v := range src {
		if v < 0 {
			dst[i] = -v
		} else {
			dst[i] = v
		}
	}
}

// Invert returns the bitwise complement for integer dtypes and the logical
// not for Bool.
func (a *Array) Invert() arrays.Array {
	out := newDense(a.shape.Clone())
	out.weak = a.weak
	switch a.DType() {
	case dtypes.Bool:
		dst := flatOf[bool](out)
		for i, v := range flatOf[bool](a) {
			dst[i] = !v
		}
	case dtypes.Int8:
		invertKernel(flatOf[int8](a), flatOf[int8](out))
	case dtypes.Int16:
		invertKernel(flatOf[int16](a), flatOf[int16](out))
	case dtypes.Int32:
		invertKernel(flatOf[int32](a), flatOf[int32](out))
	case dtypes.Int64:
		invertKernel(flatOf[int64](a), flatOf[int64](out))
	case dtypes.Uint8:
		invertKernel(flatOf[uint8](a), flatOf[uint8](out))
	case dtypes.Uint16:
		invertKernel(flatOf[uint16](a), flatOf[uint16](out))
	case dtypes.Uint32:
		invertKernel(flatOf[uint32](a), flatOf[uint32](out))
	case dtypes.Uint64:
		invertKernel(flatOf[uint64](a), flatOf[uint64](out))
	default:
		exceptions.Panicf("dense.Array.Invert: not defined for %s", a.DType())
	}
	return out
}

func invertKernel[T constraints.Integer](src, dst []T) {
	for i, v := range src {
		dst[i] = ^v
	}
}

// Round rounds to the given number of decimals, ties going to the even
// neighbor. Negative decimals round to powers of ten left of the decimal
// point; complex dtypes round the real and imaginary components separately.
func (a *Array) Round(decimals int) arrays.Array {
	if isInteger(a.DType()) && decimals >= 0 {
		return a.copyInternal()
	}
	out := newDense(a.shape.Clone())
	out.weak = a.weak
	switch a.DType() {
	case dtypes.Int8:
		roundIntKernel(flatOf[int8](a), flatOf[int8](out), decimals)
	case dtypes.Int16:
		roundIntKernel(flatOf[int16](a), flatOf[int16](out), decimals)
	case dtypes.Int32:
		roundIntKernel(flatOf[int32](a), flatOf[int32](out), decimals)
	case dtypes.Int64:
		roundIntKernel(flatOf[int64](a), flatOf[int64](out), decimals)
	case dtypes.Uint8:
		roundIntKernel(flatOf[uint8](a), flatOf[uint8](out), decimals)
	case dtypes.Uint16:
		roundIntKernel(flatOf[uint16](a), flatOf[uint16](out), decimals)
	case dtypes.Uint32:
		roundIntKernel(flatOf[uint32](a), flatOf[uint32](out), decimals)
	case dtypes.Uint64:
		roundIntKernel(flatOf[uint64](a), flatOf[uint64](out), decimals)
	case dtypes.Float16:
		o32 := float32Flat(a)
		roundFloatKernel(o32, o32, decimals)
		f32ToF16(o32, flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		o32 := float32Flat(a)
		roundFloatKernel(o32, o32, decimals)
		f32ToBF16(o32, flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		roundFloatKernel(flatOf[float32](a), flatOf[float32](out), decimals)
	case dtypes.Float64:
		roundFloatKernel(flatOf[float64](a), flatOf[float64](out), decimals)
	case dtypes.Complex64:
		dst := flatOf[complex64](out)
		for i, v := range flatOf[complex64](a) {
			dst[i] = complex64(complex(
				roundTo(float64(real(v)), decimals), roundTo(float64(imag(v)), decimals)))
		}
	case dtypes.Complex128:
		dst := flatOf[complex128](out)
		for i, v := range flatOf[complex128](a) {
			dst[i] = complex(roundTo(real(v), decimals), roundTo(imag(v), decimals))
		}
	default:
		exceptions.Panicf("dense.Array.Round: not defined for %s", a.DType())
	}
	return out
}

// roundTo rounds half-to-even at the given decimal position.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}

func roundFloatKernel[T constraints.Float](src, dst []T, decimals int) {
	for i, v := range src {
		dst[i] = T(roundTo(float64(v), decimals))
	}
}

func roundIntKernel[T constraints.Integer](src, dst []T, decimals int) {
	for i, v := range src {
		dst[i] = T(roundTo(float64(v), decimals))
	}
}

// The scalar coercions below require the array to hold exactly one element.

func (a *Array) requireSingle(opName string) {
	if a.Size() != 1 {
		exceptions.Panicf("dense.Array.%s(): array %s has %d elements, coercion needs exactly 1",
			opName, a.shape, a.Size())
	}
}

// Bool coerces a single-element array to its truthiness.
func (a *Array) Bool() bool {
	a.requireSingle("Bool")
	return truthyFlat(a)[0]
}

// Complex coerces a single-element array to complex128.
func (a *Array) Complex() complex128 {
	a.requireSingle("Complex")
	return complex128Flat(a)[0]
}

// Int coerces a single-element array to int64, truncating floats towards
// zero. Complex dtypes are not supported.
func (a *Array) Int() int64 {
	a.requireSingle("Int")
	if isComplex(a.DType()) {
		exceptions.Panicf("dense.Array.Int(): cannot coerce %s, take Real() or Abs() first", a.DType())
	}
	return convertFlat[int64](a)[0]
}

// Float coerces a single-element array to float64. Complex dtypes are not
// supported.
func (a *Array) Float() float64 {
	a.requireSingle("Float")
	if isComplex(a.DType()) {
		exceptions.Panicf("dense.Array.Float(): cannot coerce %s, take Real() or Abs() first", a.DType())
	}
	return convertFlat[float64](a)[0]
}

// Index coerces a single-element integer or boolean array to a Go int, for
// use as a slice or index position.
func (a *Array) Index() int {
	a.requireSingle("Index")
	if !isInteger(a.DType()) && a.DType() != dtypes.Bool {
		exceptions.Panicf("dense.Array.Index(): only integer and Bool arrays can be used as indices, got %s", a.DType())
	}
	return int(convertFlat[int64](a)[0])
}
