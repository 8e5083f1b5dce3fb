// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"reflect"
	"slices"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// AsType returns a copy of the array converted to the given dtype. Complex
// to real conversion keeps the real component; any dtype converts to Bool by
// truthiness. The result is strongly typed.
func (a *Array) AsType(dtype dtypes.DType) arrays.Array {
	return a.asTypeInternal(dtype).WithWeakType(false)
}

// asTypeInternal converts preserving the weak-type flag. Same-dtype
// conversion still copies.
func (a *Array) asTypeInternal(dtype dtypes.DType) *Array {
	if dtype == a.DType() {
		return a.copyInternal()
	}
	out := newDense(shapes.Make(dtype, a.shape.Dimensions...))
	out.weak = a.weak
	switch dtype {
	case dtypes.Bool:
		copy(flatOf[bool](out), truthyFlat(a))
	case dtypes.Int8:
		copy(flatOf[int8](out), convertFlat[int8](a))
	case dtypes.Int16:
		copy(flatOf[int16](out), convertFlat[int16](a))
	case dtypes.Int32:
		copy(flatOf[int32](out), convertFlat[int32](a))
	case dtypes.Int64:
		copy(flatOf[int64](out), convertFlat[int64](a))
	case dtypes.Uint8:
		copy(flatOf[uint8](out), convertFlat[uint8](a))
	case dtypes.Uint16:
		copy(flatOf[uint16](out), convertFlat[uint16](a))
	case dtypes.Uint32:
		copy(flatOf[uint32](out), convertFlat[uint32](a))
	case dtypes.Uint64:
		copy(flatOf[uint64](out), convertFlat[uint64](a))
	case dtypes.Float16:
		f32ToF16(convertFlat[float32](a), flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		f32ToBF16(convertFlat[float32](a), flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		copy(flatOf[float32](out), convertFlat[float32](a))
	case dtypes.Float64:
		copy(flatOf[float64](out), convertFlat[float64](a))
	case dtypes.Complex64:
		dst := flatOf[complex64](out)
		for i, v := range complex128Flat(a) {
			dst[i] = complex64(v)
		}
	case dtypes.Complex128:
		copy(flatOf[complex128](out), complex128Flat(a))
	default:
		exceptions.Panicf("dense.Array.AsType: dtype %s not supported", dtype)
	}
	return out
}

// View reinterprets the raw bytes of the array as the given dtype. If the
// element sizes differ, the last axis is rescaled accordingly; the total
// byte size must divide evenly. Scalars can only be viewed as same-size
// dtypes.
func (a *Array) View(dtype dtypes.DType) arrays.Array {
	oldSize, newSize := a.elemSize(), int(dtype.Memory())
	dims := slices.Clone(a.shape.Dimensions)
	if oldSize != newSize {
		if a.Rank() == 0 {
			exceptions.Panicf("dense.Array.View: cannot view scalar %s as %s of a different size", a.DType(), dtype)
		}
		lastBytes := dims[len(dims)-1] * oldSize
		if lastBytes%newSize != 0 {
			exceptions.Panicf("dense.Array.View: last axis (%d bytes) is not a whole number of %s elements", lastBytes, dtype)
		}
		dims[len(dims)-1] = lastBytes / newSize
	}
	out := newDense(shapes.Make(dtype, dims...))
	copy(out.bytes(), a.bytes())
	return out
}

// Copy returns a deep copy of the array.
func (a *Array) Copy() arrays.Array {
	return a.copyInternal()
}

func (a *Array) copyInternal() *Array {
	out := newDense(a.shape.Clone())
	out.weak = a.weak
	copy(out.bytes(), a.bytes())
	return out
}

// ToBytes returns the flat elements serialized in row-major order, using the
// platform memory layout of the dtype.
func (a *Array) ToBytes() []byte {
	return slices.Clone(a.bytes())
}

// Value returns the elements as a Go value: a scalar for rank-0 arrays, and
// a (nested) slice otherwise. The innermost slices share the array's
// storage; copy them before mutating.
func (a *Array) Value() any {
	flatV := reflect.ValueOf(a.flat)
	if a.Rank() == 0 {
		return flatV.Index(0).Interface()
	}
	if a.Rank() == 1 {
		return a.flat
	}
	resultT := flatV.Type().Elem()
	for range a.shape.Dimensions {
		resultT = reflect.SliceOf(resultT)
	}
	return nestSlices(resultT, flatV, a.shape.Dimensions, a.shape.Strides()).Interface()
}

// nestSlices builds nested slices over the flat data, recursively: the
// innermost level reuses (doesn't copy) the flat data.
func nestSlices(resultT reflect.Type, data reflect.Value, dimensions, strides []int) reflect.Value {
	if len(dimensions) == 1 {
		return data
	}
	n := dimensions[0]
	result := reflect.MakeSlice(resultT, n, n)
	for i := 0; i < n; i++ {
		sub := nestSlices(resultT.Elem(), data.Slice(i*strides[0], (i+1)*strides[0]), dimensions[1:], strides[1:])
		result.Index(i).Set(sub)
	}
	return result
}

// Item returns the element at the given indices as a Go value. With no
// indices the array must hold exactly one element.
func (a *Array) Item(indices ...int) any {
	flatV := reflect.ValueOf(a.flat)
	if len(indices) == 0 {
		if a.Size() != 1 {
			exceptions.Panicf("dense.Array.Item(): array %s has %d elements, Item() without indices needs exactly 1",
				a.shape, a.Size())
		}
		return flatV.Index(0).Interface()
	}
	if len(indices) != a.Rank() {
		exceptions.Panicf("dense.Array.Item(%v): need all %d indices (or none)", indices, a.Rank())
	}
	return flatV.Index(a.flatIndex(indices)).Interface()
}

// flatIndex converts per-axis indices (negatives count from the end) into
// the flat storage index.
func (a *Array) flatIndex(indices []int) int {
	strides := a.shape.Strides()
	flat := 0
	for axis, idx := range indices {
		dim := a.shape.Dimensions[axis]
		if idx < 0 {
			idx += dim
		}
		if idx < 0 || idx >= dim {
			exceptions.Panicf("dense.Array: index %d out of bounds for axis %d with dimension %d",
				indices[axis], axis, dim)
		}
		flat += idx * strides[axis]
	}
	return flat
}

// Real returns the real component of a complex array, or a copy for real
// dtypes.
func (a *Array) Real() arrays.Array {
	switch flat := a.flat.(type) {
	case []complex64:
		out := newDense(shapes.Make(dtypes.Float32, a.shape.Dimensions...))
		dst := flatOf[float32](out)
		for i, v := range flat {
			dst[i] = real(v)
		}
		return out
	case []complex128:
		out := newDense(shapes.Make(dtypes.Float64, a.shape.Dimensions...))
		dst := flatOf[float64](out)
		for i, v := range flat {
			dst[i] = real(v)
		}
		return out
	}
	return a.Copy()
}

// Imag returns the imaginary component of a complex array, or zeros of the
// same shape for real dtypes.
func (a *Array) Imag() arrays.Array {
	switch flat := a.flat.(type) {
	case []complex64:
		out := newDense(shapes.Make(dtypes.Float32, a.shape.Dimensions...))
		dst := flatOf[float32](out)
		for i, v := range flat {
			dst[i] = imag(v)
		}
		return out
	case []complex128:
		out := newDense(shapes.Make(dtypes.Float64, a.shape.Dimensions...))
		dst := flatOf[float64](out)
		for i, v := range flat {
			dst[i] = imag(v)
		}
		return out
	}
	return newDense(a.shape.Clone())
}

// Conj returns the complex conjugate, or a copy for real dtypes.
func (a *Array) Conj() arrays.Array {
	switch flat := a.flat.(type) {
	case []complex64:
		out := newDense(a.shape.Clone())
		dst := flatOf[complex64](out)
		for i, v := range flat {
			dst[i] = complex(real(v), -imag(v))
		}
		return out
	case []complex128:
		out := newDense(a.shape.Clone())
		dst := flatOf[complex128](out)
		for i, v := range flat {
			dst[i] = complex(real(v), -imag(v))
		}
		return out
	}
	return a.Copy()
}
