// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"math"
	"math/cmplx"
	"reflect"
	"slices"
	"unsafe"

	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// This file holds the dtype dispatch machinery: flat storage allocation,
// typed access to it, dtype conversions (including the float32 compute path
// for the half-precision dtypes) and the broadcasting helpers shared by the
// element-wise operations.

// podReal are the Go plain-old-data types stored natively that support
// ordering. Half-precision dtypes are not included: they are stored as
// float16.Float16/bfloat16.BFloat16 and computed as float32.
type podReal interface {
	constraints.Integer | constraints.Float
}

// podNumeric adds the complex types to podReal.
type podNumeric interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// newFlat allocates the flat storage for size elements of the given dtype.
func newFlat(dtype dtypes.DType, size int) any {
	switch dtype {
	case dtypes.Bool:
		return make([]bool, size)
	case dtypes.Int8:
		return make([]int8, size)
	case dtypes.Int16:
		return make([]int16, size)
	case dtypes.Int32:
		return make([]int32, size)
	case dtypes.Int64:
		return make([]int64, size)
	case dtypes.Uint8:
		return make([]uint8, size)
	case dtypes.Uint16:
		return make([]uint16, size)
	case dtypes.Uint32:
		return make([]uint32, size)
	case dtypes.Uint64:
		return make([]uint64, size)
	case dtypes.Float16:
		return make([]float16.Float16, size)
	case dtypes.BFloat16:
		return make([]bfloat16.BFloat16, size)
	case dtypes.Float32:
		return make([]float32, size)
	case dtypes.Float64:
		return make([]float64, size)
	case dtypes.Complex64:
		return make([]complex64, size)
	case dtypes.Complex128:
		return make([]complex128, size)
	}
	exceptions.Panicf("dense: dtype %s not supported", dtype)
	return nil
}

// flatOf returns the typed flat storage of the array. It panics if T
// doesn't match the array's dtype storage.
func flatOf[T any](a *Array) []T {
	flat, ok := a.flat.([]T)
	if !ok {
		exceptions.Panicf("dense: flat storage is %T, requested %T", a.flat, flat)
	}
	return flat
}

// bytes returns the flat storage viewed as bytes, without copying. The view
// is only valid while the array is alive.
func (a *Array) bytes() []byte {
	flatV := reflect.ValueOf(a.flat)
	elem0 := flatV.Index(0)
	ptr := elem0.Addr().UnsafePointer()
	sizeBytes := uintptr(flatV.Len()) * elem0.Type().Size()
	return unsafe.Slice((*byte)(ptr), sizeBytes)
}

// elemSize returns the storage size of one element, in bytes.
func (a *Array) elemSize() int {
	return int(a.DType().Memory())
}

// gatherBytes fills out's storage by copying, for each of out's flat
// positions, the source element at srcFlatFor(outFlat). Both arrays must
// have the same dtype.
func gatherBytes(src, out *Array, srcFlatFor func(outFlat int) int) {
	es := src.elemSize()
	srcBytes, outBytes := src.bytes(), out.bytes()
	for i := 0; i < out.Size(); i++ {
		j := srcFlatFor(i)
		copy(outBytes[i*es:(i+1)*es], srcBytes[j*es:(j+1)*es])
	}
}

// scatterBytes copies, for each of src's flat positions, the source element
// into out at outFlatFor(srcFlat). Both arrays must have the same dtype.
func scatterBytes(src, out *Array, outFlatFor func(srcFlat int) int) {
	es := src.elemSize()
	srcBytes, outBytes := src.bytes(), out.bytes()
	for i := 0; i < src.Size(); i++ {
		j := outFlatFor(i)
		copy(outBytes[j*es:(j+1)*es], srcBytes[i*es:(i+1)*es])
	}
}

// broadcastDims computes the dimensions resulting from broadcasting both
// operand shapes together, NumPy style: dimensions are matched from the
// trailing axis, and an axis of dimension 1 (or a missing axis) stretches to
// the other operand's dimension.
func broadcastDims(opName string, s1, s2 shapes.Shape) []int {
	rank := max(s1.Rank(), s2.Rank())
	dims := make([]int, rank)
	for i := 1; i <= rank; i++ {
		d1, d2 := 1, 1
		if i <= s1.Rank() {
			d1 = s1.Dimensions[s1.Rank()-i]
		}
		if i <= s2.Rank() {
			d2 = s2.Dimensions[s2.Rank()-i]
		}
		switch {
		case d1 == d2:
			dims[rank-i] = d1
		case d1 == 1:
			dims[rank-i] = d2
		case d2 == 1:
			dims[rank-i] = d1
		default:
			exceptions.Panicf("dense.Array.%s: shapes %s and %s are not broadcastable", opName, s1, s2)
		}
	}
	return dims
}

// broadcastTo returns the array stretched to the target dimensions,
// materializing the repeated elements. Returns the receiver unchanged when
// the dimensions already match.
func broadcastTo(a *Array, targetDims []int) *Array {
	if slices.Equal(a.shape.Dimensions, targetDims) {
		return a
	}
	out := newDense(shapes.Make(a.DType(), targetDims...))
	rank := len(targetDims)
	// Row-major strides of the source, with stride 0 on broadcast axes and
	// on the axes the source lacks.
	srcStrides := make([]int, rank)
	stride := 1
	for i := 1; i <= a.Rank(); i++ {
		axis := rank - i
		dim := a.shape.Dimensions[a.Rank()-i]
		if dim != 1 {
			srcStrides[axis] = stride
		}
		stride *= dim
	}
	es := a.elemSize()
	srcBytes, outBytes := a.bytes(), out.bytes()
	outFlat := 0
	for indices := range out.shape.Iter() {
		srcFlat := 0
		for axis, idx := range indices {
			srcFlat += idx * srcStrides[axis]
		}
		copy(outBytes[outFlat*es:(outFlat+1)*es], srcBytes[srcFlat*es:(srcFlat+1)*es])
		outFlat++
	}
	return out
}

// convertFlat converts the array's elements to the given real Go type.
// Complex sources keep only the real component; booleans convert to 0/1.
func convertFlat[To podReal](a *Array) []To {
	out := make([]To, a.Size())
	switch flat := a.flat.(type) {
	case []bool:
		for i, v := range flat {
			if v {
				out[i] = To(1)
			}
		}
	case []int8:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []int16:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []int32:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []int64:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []uint8:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []uint16:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []uint32:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []uint64:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []float16.Float16:
		for i, v := range flat {
			out[i] = To(v.Float32())
		}
	case []bfloat16.BFloat16:
		for i, v := range flat {
			out[i] = To(v.Float32())
		}
	case []float32:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []float64:
		for i, v := range flat {
			out[i] = To(v)
		}
	case []complex64:
		for i, v := range flat {
			out[i] = To(real(v))
		}
	case []complex128:
		for i, v := range flat {
			out[i] = To(real(v))
		}
	default:
		exceptions.Panicf("dense: unsupported flat storage %T", a.flat)
	}
	return out
}

// complex128Flat converts the array's elements to complex128. Real sources
// get a zero imaginary component.
func complex128Flat(a *Array) []complex128 {
	switch flat := a.flat.(type) {
	case []complex64:
		out := make([]complex128, len(flat))
		for i, v := range flat {
			out[i] = complex128(v)
		}
		return out
	case []complex128:
		return slices.Clone(flat)
	}
	reals := convertFlat[float64](a)
	out := make([]complex128, len(reals))
	for i, v := range reals {
		out[i] = complex(v, 0)
	}
	return out
}

// truthyFlat returns the element-wise truthiness: non-zero is true.
func truthyFlat(a *Array) []bool {
	switch flat := a.flat.(type) {
	case []bool:
		return slices.Clone(flat)
	case []complex64:
		out := make([]bool, len(flat))
		for i, v := range flat {
			out[i] = v != 0
		}
		return out
	case []complex128:
		out := make([]bool, len(flat))
		for i, v := range flat {
			out[i] = v != 0
		}
		return out
	}
	reals := convertFlat[float64](a)
	out := make([]bool, len(reals))
	for i, v := range reals {
		out[i] = v != 0
	}
	return out
}

// float32Flat returns the elements as float32, the compute type for the
// half-precision dtypes.
func float32Flat(a *Array) []float32 {
	if flat, ok := a.flat.([]float32); ok {
		return slices.Clone(flat)
	}
	return convertFlat[float32](a)
}

func f32ToF16(src []float32, dst []float16.Float16) {
	for i, v := range src {
		dst[i] = float16.Fromfloat32(v)
	}
}

func f32ToBF16(src []float32, dst []bfloat16.BFloat16) {
	for i, v := range src {
		dst[i] = bfloat16.FromFloat32(v)
	}
}

// isHalf reports whether the dtype is stored in half precision and computed
// as float32.
func isHalf(dtype dtypes.DType) bool {
	return dtype == dtypes.Float16 || dtype == dtypes.BFloat16
}

func isComplex(dtype dtypes.DType) bool {
	return dtype == dtypes.Complex64 || dtype == dtypes.Complex128
}

func isFloat(dtype dtypes.DType) bool {
	return dtype == dtypes.Float32 || dtype == dtypes.Float64 || isHalf(dtype)
}

func isInteger(dtype dtypes.DType) bool {
	switch dtype {
	case dtypes.Int8, dtypes.Int16, dtypes.Int32, dtypes.Int64,
		dtypes.Uint8, dtypes.Uint16, dtypes.Uint32, dtypes.Uint64:
		return true
	}
	return false
}

func isUnsigned(dtype dtypes.DType) bool {
	switch dtype {
	case dtypes.Uint8, dtypes.Uint16, dtypes.Uint32, dtypes.Uint64:
		return true
	}
	return false
}

func cmplxAbs(v complex128) float64 {
	return cmplx.Abs(v)
}

// floorDivInt is integer division rounding towards negative infinity.
func floorDivInt[T constraints.Integer](a, b T) T {
	if b == 0 {
		exceptions.Panicf("dense: integer division by zero")
	}
	q := a / b
	if a%b != 0 && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// modInt is the remainder matching floorDivInt: the result has the sign of
// the divisor.
func modInt[T constraints.Integer](a, b T) T {
	if b == 0 {
		exceptions.Panicf("dense: integer modulo by zero")
	}
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// floorDivFloat rounds the quotient towards negative infinity.
func floorDivFloat[T constraints.Float](a, b T) T {
	return T(math.Floor(float64(a) / float64(b)))
}

// modFloat is the remainder matching floorDivFloat.
func modFloat[T constraints.Float](a, b T) T {
	return a - floorDivFloat(a, b)*b
}

// powInt computes base**exp by squaring. Negative exponents are not defined
// for integer dtypes.
func powInt[T constraints.Integer](base, exp T) T {
	if isSignedNegative(exp) {
		exceptions.Panicf("dense: integers to negative integer powers are not allowed")
	}
	result := T(1)
	for exp > 0 {
		if exp%2 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func isSignedNegative[T constraints.Integer](v T) bool {
	return v < 0
}
