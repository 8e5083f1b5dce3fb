// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"iter"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// blockAt resolves indexing of the leading axes: it returns the flat offset
// of the selected block and the dimensions of the remaining axes. Negative
// indices count from the end of their axis.
func (a *Array) blockAt(opName string, indices []int) (offset int, blockDims []int) {
	if len(indices) > a.Rank() {
		exceptions.Panicf("dense.Array.%s: got %d indices for an array of rank %d", opName, len(indices), a.Rank())
	}
	return a.flatIndex(indices), a.shape.Dimensions[len(indices):]
}

// Get returns the sub-array selected by indexing the leading axes with the
// given indices. Indexing all axes yields a scalar array. The result is a
// copy.
func (a *Array) Get(indices ...int) arrays.Array {
	return a.get("Get", indices)
}

func (a *Array) get(opName string, indices []int) *Array {
	offset, blockDims := a.blockAt(opName, indices)
	out := newDense(shapes.Make(a.DType(), blockDims...))
	out.weak = a.weak
	es := a.elemSize()
	copy(out.bytes(), a.bytes()[offset*es:(offset+out.Size())*es])
	return out
}

// resolveSpec turns a SliceSpec into concrete (start, end, stride) bounds for
// an axis of the given dimension. Negative Start counts from the end of the
// axis, and so does End when <= 0 (so AxisElem(-1) selects the last element).
func resolveSpec(opName string, spec arrays.SliceSpec, dim, axis int) (start, end, stride int) {
	stride = spec.StrideValue
	if stride == 0 {
		stride = 1
	}
	if stride < 0 {
		exceptions.Panicf("dense.Array.%s: stride must be positive, got %d for axis %d", opName, stride, axis)
	}
	if spec.Full {
		return 0, dim, stride
	}
	start = spec.Start
	if start < 0 {
		start += dim
	}
	switch {
	case spec.NoEnd:
		end = dim
	case spec.End <= 0:
		end = spec.End + dim
	default:
		end = spec.End
	}
	if start < 0 || end > dim || start >= end {
		exceptions.Panicf("dense.Array.%s: axis %d spec [%d:%d] is empty or out of bounds for dimension %d",
			opName, axis, spec.Start, spec.End, dim)
	}
	return start, end, stride
}

// Slice returns the sub-array selected by the given per-axis specs. Axes
// without a spec are taken in full. The rank is preserved; use Squeeze to
// drop axes selected with AxisElem.
func (a *Array) Slice(specs ...arrays.SliceSpec) arrays.Array {
	if len(specs) > a.Rank() {
		exceptions.Panicf("dense.Array.Slice: got %d specs for an array of rank %d", len(specs), a.Rank())
	}
	rank := a.Rank()
	starts := make([]int, rank)
	strides := make([]int, rank)
	dims := make([]int, rank)
	for axis := 0; axis < rank; axis++ {
		spec := arrays.AxisRange()
		if axis < len(specs) {
			spec = specs[axis]
		}
		start, end, stride := resolveSpec("Slice", spec, a.shape.Dimensions[axis], axis)
		starts[axis] = start
		strides[axis] = stride
		dims[axis] = (end - start + stride - 1) / stride
	}
	out := newDense(shapes.Make(a.DType(), dims...))
	out.weak = a.weak
	srcStrides := a.shape.Strides()
	es := a.elemSize()
	srcBytes, outBytes := a.bytes(), out.bytes()
	outFlat := 0
	for indices := range out.shape.Iter() {
		srcFlat := 0
		for axis, idx := range indices {
			srcFlat += (starts[axis] + idx*strides[axis]) * srcStrides[axis]
		}
		copy(outBytes[outFlat*es:(outFlat+1)*es], srcBytes[srcFlat*es:(srcFlat+1)*es])
		outFlat++
	}
	return out
}

// checkMask validates a boolean selection mask against the receiver and
// returns its flat values.
func (a *Array) checkMask(opName string, maskAny arrays.Array) []bool {
	mask := toDense(opName, maskAny)
	if mask.DType() != dtypes.Bool {
		exceptions.Panicf("dense.Array.%s: mask must be Bool, got %s", opName, mask.DType())
	}
	if !a.shape.EqualDimensions(mask.shape) {
		exceptions.Panicf("dense.Array.%s: mask dimensions %v don't match array dimensions %v",
			opName, mask.shape.Dimensions, a.shape.Dimensions)
	}
	return flatOf[bool](mask)
}

// Mask returns a rank-1 array with the elements at the positions where mask
// is true, in row-major order. At least one position must be selected,
// shapes have no zero dimensions.
func (a *Array) Mask(maskAny arrays.Array) arrays.Array {
	sel := a.checkMask("Mask", maskAny)
	n := 0
	for _, s := range sel {
		if s {
			n++
		}
	}
	if n == 0 {
		exceptions.Panicf("dense.Array.Mask: mask selects no elements, shapes have no zero dimensions")
	}
	out := newDense(shapes.Make(a.DType(), n))
	out.weak = a.weak
	es := a.elemSize()
	srcBytes, outBytes := a.bytes(), out.bytes()
	next := 0
	for i, s := range sel {
		if s {
			copy(outBytes[next*es:(next+1)*es], srcBytes[i*es:(i+1)*es])
			next++
		}
	}
	return out
}

// reconcileValue converts an assigned value to the receiver's dtype. Like
// promotePair, only weakly typed values convert across dtypes.
func (a *Array) reconcileValue(opName string, valueAny arrays.Array) *Array {
	value := toDense(opName, valueAny)
	if value.DType() == a.DType() {
		return value
	}
	if !value.weak {
		exceptions.Panicf("dense.Array.%s: cannot assign strongly typed %s values into a %s array",
			opName, value.DType(), a.DType())
	}
	return value.asTypeInternal(a.DType())
}

// Set assigns value to the sub-array selected by indexing the leading axes.
// Value broadcasts to the sub-array's dimensions (a scalar replicates). It
// mutates the receiver.
func (a *Array) Set(valueAny arrays.Array, indices ...int) {
	value := a.reconcileValue("Set", valueAny)
	offset, blockDims := a.blockAt("Set", indices)
	dims := broadcastDims("Set", shapes.Make(a.DType(), blockDims...), value.shape)
	if !equalInts(dims, blockDims) {
		exceptions.Panicf("dense.Array.Set: value dimensions %v don't broadcast to the selected block %v",
			value.shape.Dimensions, blockDims)
	}
	value = broadcastTo(value, blockDims)
	es := a.elemSize()
	copy(a.bytes()[offset*es:(offset+value.Size())*es], value.bytes())
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SetMask assigns value to the positions where mask is true, in row-major
// order. Value must be a scalar (replicated) or a rank-1 array with one
// element per selected position. It mutates the receiver.
func (a *Array) SetMask(maskAny arrays.Array, valueAny arrays.Array) {
	sel := a.checkMask("SetMask", maskAny)
	value := a.reconcileValue("SetMask", valueAny)
	n := 0
	for _, s := range sel {
		if s {
			n++
		}
	}
	scalar := value.Rank() == 0
	if !scalar && (value.Rank() != 1 || value.Size() != n) {
		exceptions.Panicf("dense.Array.SetMask: mask selects %d positions, value must be a scalar or a rank-1 array of %d elements, got %s",
			n, n, value.shape)
	}
	es := a.elemSize()
	dstBytes, valBytes := a.bytes(), value.bytes()
	next := 0
	for i, s := range sel {
		if !s {
			continue
		}
		j := next
		if scalar {
			j = 0
		}
		copy(dstBytes[i*es:(i+1)*es], valBytes[j*es:(j+1)*es])
		next++
	}
}

// Elements iterates over the sub-arrays along axis 0, in order. Each yielded
// sub-array is an independent copy.
func (a *Array) Elements() iter.Seq2[int, arrays.Array] {
	n := a.Len()
	return func(yield func(int, arrays.Array) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, a.Get(i)) {
				return
			}
		}
	}
}

// Reversed iterates over the sub-arrays along axis 0, last first. The yielded
// indices still count down from Len()-1.
func (a *Array) Reversed() iter.Seq2[int, arrays.Array] {
	n := a.Len()
	return func(yield func(int, arrays.Array) bool) {
		for i := n - 1; i >= 0; i-- {
			if !yield(i, a.Get(i)) {
				return
			}
		}
	}
}

// atRef implements arrays.AtRef: a scoped, functional updater for the block
// at the given leading-axes indices.
type atRef struct {
	origin  *Array
	indices []int
}

// At returns a functional updater for the sub-array at the given indices:
// updates return a new array, the receiver stays untouched.
func (a *Array) At(indices ...int) arrays.AtRef {
	// Validate eagerly so the panic points at the At call site.
	a.blockAt("At", indices)
	return atRef{origin: a, indices: indices}
}

func (ref atRef) Get() arrays.Array {
	return ref.origin.get("At.Get", ref.indices)
}

func (ref atRef) Set(value arrays.Array) arrays.Array {
	out := ref.origin.copyInternal()
	out.Set(value, ref.indices...)
	return out
}

// apply runs a binary operation between the selected block and value, and
// returns a copy of the origin with the block replaced by the result.
func (ref atRef) apply(opName string, op binOp, value arrays.Array) arrays.Array {
	block := ref.origin.get(opName, ref.indices)
	updated := block.binaryOp(opName, op, value)
	out := ref.origin.copyInternal()
	out.Set(updated, ref.indices...)
	return out
}

func (ref atRef) Add(value arrays.Array) arrays.Array {
	return ref.apply("At.Add", binAdd, value)
}

func (ref atRef) Mul(value arrays.Array) arrays.Array {
	return ref.apply("At.Mul", binMul, value)
}

func (ref atRef) Min(value arrays.Array) arrays.Array {
	return ref.apply("At.Min", binMinimum, value)
}

func (ref atRef) Max(value arrays.Array) arrays.Array {
	return ref.apply("At.Max", binMaximum, value)
}
