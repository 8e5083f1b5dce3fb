// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"sort"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// Reshape returns the elements rearranged to the given dimensions, which
// must have the same total size. One dimension may be -1, and is inferred.
func (a *Array) Reshape(dimensions ...int) arrays.Array {
	inferred := -1
	known := 1
	for axis, dim := range dimensions {
		switch {
		case dim > 0:
			known *= dim
		case dim == -1:
			if inferred >= 0 {
				exceptions.Panicf("dense.Array.Reshape%v: only one dimension can be -1", dimensions)
			}
			inferred = axis
		default:
			exceptions.Panicf("dense.Array.Reshape%v: dimensions must be positive (or one -1)", dimensions)
		}
	}
	dims := append([]int(nil), dimensions...)
	if inferred >= 0 {
		if a.Size()%known != 0 {
			exceptions.Panicf("dense.Array.Reshape%v: cannot infer dimension, %d elements don't divide by %d",
				dimensions, a.Size(), known)
		}
		dims[inferred] = a.Size() / known
		known *= dims[inferred]
	}
	if known != a.Size() {
		exceptions.Panicf("dense.Array.Reshape%v: new shape needs %d elements, array has %d",
			dimensions, known, a.Size())
	}
	out := newDense(shapes.Make(a.DType(), dims...))
	out.weak = a.weak
	copy(out.bytes(), a.bytes())
	return out
}

// Transpose permutes the axes by the given permutation; with no arguments
// the axes are reversed.
func (a *Array) Transpose(axes ...int) arrays.Array {
	rank := a.Rank()
	perm := make([]int, rank)
	if len(axes) == 0 {
		for i := range perm {
			perm[i] = rank - 1 - i
		}
	} else {
		if len(axes) != rank {
			exceptions.Panicf("dense.Array.Transpose%v: need all %d axes", axes, rank)
		}
		used := make([]bool, rank)
		for i, axis := range axes {
			adjusted := shapes.AdjustAxis(a.shape, axis)
			if used[adjusted] {
				exceptions.Panicf("dense.Array.Transpose%v: axis %d given more than once", axes, axis)
			}
			used[adjusted] = true
			perm[i] = adjusted
		}
	}
	dims := make([]int, rank)
	for i, axis := range perm {
		dims[i] = a.shape.Dimensions[axis]
	}
	out := newDense(shapes.Make(a.DType(), dims...))
	out.weak = a.weak
	srcStrides := a.shape.Strides()
	es := a.elemSize()
	srcBytes, outBytes := a.bytes(), out.bytes()
	outFlat := 0
	for indices := range out.shape.Iter() {
		srcFlat := 0
		for i, idx := range indices {
			srcFlat += idx * srcStrides[perm[i]]
		}
		copy(outBytes[outFlat*es:(outFlat+1)*es], srcBytes[srcFlat*es:(srcFlat+1)*es])
		outFlat++
	}
	return out
}

// SwapAxes exchanges two axes.
func (a *Array) SwapAxes(axis1, axis2 int) arrays.Array {
	a1 := shapes.AdjustAxis(a.shape, axis1)
	a2 := shapes.AdjustAxis(a.shape, axis2)
	axes := make([]int, a.Rank())
	for i := range axes {
		axes[i] = i
	}
	axes[a1], axes[a2] = a2, a1
	return a.Transpose(axes...)
}

// Ravel returns the elements as a rank-1 array.
func (a *Array) Ravel() arrays.Array {
	out := newDense(shapes.Make(a.DType(), a.Size()))
	out.weak = a.weak
	copy(out.bytes(), a.bytes())
	return out
}

// Flatten returns the elements as a rank-1 array. Dense arrays don't share
// storage, so Flatten and Ravel are the same operation here.
func (a *Array) Flatten() arrays.Array {
	return a.Ravel()
}

// Squeeze removes axes of dimension 1: all of them with no arguments, or the
// given ones, which must have dimension 1.
func (a *Array) Squeeze(axes ...int) arrays.Array {
	drop := make([]bool, a.Rank())
	if len(axes) == 0 {
		for axis, dim := range a.shape.Dimensions {
			drop[axis] = dim == 1
		}
	} else {
		for _, axis := range axes {
			adjusted := shapes.AdjustAxis(a.shape, axis)
			if a.shape.Dimensions[adjusted] != 1 {
				exceptions.Panicf("dense.Array.Squeeze: axis %d has dimension %d, only axes of dimension 1 can be squeezed",
					axis, a.shape.Dimensions[adjusted])
			}
			drop[adjusted] = true
		}
	}
	var dims []int
	for axis, dim := range a.shape.Dimensions {
		if !drop[axis] {
			dims = append(dims, dim)
		}
	}
	out := newDense(shapes.Make(a.DType(), dims...))
	out.weak = a.weak
	copy(out.bytes(), a.bytes())
	return out
}

// laneGeometry decomposes the array around one axis: outer lanes before it,
// n elements along it, inner elements after it.
func (a *Array) laneGeometry(axis int) (outer, n, inner int) {
	n = a.shape.Dimensions[axis]
	inner = 1
	for _, dim := range a.shape.Dimensions[axis+1:] {
		inner *= dim
	}
	outer = a.Size() / (n * inner)
	return
}

func laneOrderKernel[T podReal](src []T, outer, n, inner int, order []int) {
	idx := make([]int, n)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in
			for k := range idx {
				idx[k] = k
			}
			sort.SliceStable(idx, func(x, y int) bool {
				return src[base+idx[x]*inner] < src[base+idx[y]*inner]
			})
			for k, orig := range idx {
				order[base+k*inner] = orig
			}
		}
	}
}

// laneOrderComplexKernel orders complex values lexicographically: by real
// component, then by imaginary.
func laneOrderComplexKernel(src []complex128, outer, n, inner int, order []int) {
	idx := make([]int, n)
	less := func(x, y complex128) bool {
		if real(x) != real(y) {
			return real(x) < real(y)
		}
		return imag(x) < imag(y)
	}
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in
			for k := range idx {
				idx[k] = k
			}
			sort.SliceStable(idx, func(x, y int) bool {
				return less(src[base+idx[x]*inner], src[base+idx[y]*inner])
			})
			for k, orig := range idx {
				order[base+k*inner] = orig
			}
		}
	}
}

// laneOrder computes, for every position, the original index along the axis
// of the element that belongs there after an ascending stable sort.
func (a *Array) laneOrder(outer, n, inner int) []int {
	order := make([]int, a.Size())
	switch a.DType() {
	case dtypes.Bool:
		laneOrderKernel(convertFlat[uint8](a), outer, n, inner, order)
	case dtypes.Int8:
		laneOrderKernel(flatOf[int8](a), outer, n, inner, order)
	case dtypes.Int16:
		laneOrderKernel(flatOf[int16](a), outer, n, inner, order)
	case dtypes.Int32:
		laneOrderKernel(flatOf[int32](a), outer, n, inner, order)
	case dtypes.Int64:
		laneOrderKernel(flatOf[int64](a), outer, n, inner, order)
	case dtypes.Uint8:
		laneOrderKernel(flatOf[uint8](a), outer, n, inner, order)
	case dtypes.Uint16:
		laneOrderKernel(flatOf[uint16](a), outer, n, inner, order)
	case dtypes.Uint32:
		laneOrderKernel(flatOf[uint32](a), outer, n, inner, order)
	case dtypes.Uint64:
		laneOrderKernel(flatOf[uint64](a), outer, n, inner, order)
	case dtypes.Float16, dtypes.BFloat16:
		laneOrderKernel(float32Flat(a), outer, n, inner, order)
	case dtypes.Float32:
		laneOrderKernel(flatOf[float32](a), outer, n, inner, order)
	case dtypes.Float64:
		laneOrderKernel(flatOf[float64](a), outer, n, inner, order)
	case dtypes.Complex64, dtypes.Complex128:
		laneOrderComplexKernel(complex128Flat(a), outer, n, inner, order)
	default:
		exceptions.Panicf("dense: cannot sort dtype %s", a.DType())
	}
	return order
}

// Sort returns the array with the lanes along the given axis sorted
// ascending. Complex values sort lexicographically.
func (a *Array) Sort(axis int) arrays.Array {
	adjusted := shapes.AdjustAxis(a.shape, axis)
	outer, n, inner := a.laneGeometry(adjusted)
	order := a.laneOrder(outer, n, inner)
	out := newDense(a.shape.Clone())
	out.weak = a.weak
	gatherBytes(a, out, func(i int) int {
		k := (i / inner) % n
		return i + (order[i]-k)*inner
	})
	return out
}

// ArgSort returns the Int64 indices along the axis that would sort the
// array: a.Take(a.ArgSort(axis) lanes, axis) gives a.Sort(axis).
func (a *Array) ArgSort(axis int) arrays.Array {
	adjusted := shapes.AdjustAxis(a.shape, axis)
	outer, n, inner := a.laneGeometry(adjusted)
	order := a.laneOrder(outer, n, inner)
	out := newDense(shapes.Make(dtypes.Int64, a.shape.Dimensions...))
	dst := flatOf[int64](out)
	for i, orig := range order {
		dst[i] = int64(orig)
	}
	return out
}

func (a *Array) checkKth(opName string, kth, axis int) {
	n := a.shape.Dimensions[axis]
	adjusted := kth
	if adjusted < 0 {
		adjusted += n
	}
	if adjusted < 0 || adjusted >= n {
		exceptions.Panicf("dense.Array.%s: kth %d out of bounds for axis of dimension %d", opName, kth, n)
	}
}

// Partition rearranges each lane so the kth element is in its sorted
// position, smaller elements before it and larger after. This implementation
// fully sorts the lanes, which satisfies the partition contract.
func (a *Array) Partition(kth, axis int) arrays.Array {
	adjusted := shapes.AdjustAxis(a.shape, axis)
	a.checkKth("Partition", kth, adjusted)
	return a.Sort(axis)
}

// ArgPartition returns indices along the axis placing the kth element in its
// sorted position; see Partition.
func (a *Array) ArgPartition(kth, axis int) arrays.Array {
	adjusted := shapes.AdjustAxis(a.shape, axis)
	a.checkKth("ArgPartition", kth, adjusted)
	return a.ArgSort(axis)
}

// takeIndices validates an index array and returns its flat values adjusted
// to [0, dim).
func takeIndices(opName string, indicesAny arrays.Array, dim int) []int {
	indices := toDense(opName, indicesAny)
	if !isInteger(indices.DType()) {
		exceptions.Panicf("dense.Array.%s: indices must be an integer array, got %s", opName, indices.DType())
	}
	idx := convertFlat[int64](indices)
	out := make([]int, len(idx))
	for i, v := range idx {
		if v < 0 {
			v += int64(dim)
		}
		if v < 0 || v >= int64(dim) {
			exceptions.Panicf("dense.Array.%s: index %d out of bounds for axis of dimension %d", opName, idx[i], dim)
		}
		out[i] = int(v)
	}
	return out
}

// Take gathers the sub-arrays at the given integer indices along the axis.
// The axis is replaced by the indices' dimensions in the result.
func (a *Array) Take(indicesAny arrays.Array, axis int) arrays.Array {
	adjusted := shapes.AdjustAxis(a.shape, axis)
	indices := toDense("Take", indicesAny)
	idx := takeIndices("Take", indices, a.shape.Dimensions[adjusted])

	dims := append([]int(nil), a.shape.Dimensions[:adjusted]...)
	dims = append(dims, indices.shape.Dimensions...)
	dims = append(dims, a.shape.Dimensions[adjusted+1:]...)
	out := newDense(shapes.Make(a.DType(), dims...))
	out.weak = a.weak

	_, n, inner := a.laneGeometry(adjusted)
	m := len(idx)
	gatherBytes(a, out, func(i int) int {
		in := i % inner
		j := (i / inner) % m
		o := i / (m * inner)
		return o*n*inner + idx[j]*inner + in
	})
	return out
}

// Repeat repeats each element (sub-array) along the axis `repeats` times.
func (a *Array) Repeat(repeats, axis int) arrays.Array {
	if repeats <= 0 {
		exceptions.Panicf("dense.Array.Repeat: repeats must be positive, got %d", repeats)
	}
	adjusted := shapes.AdjustAxis(a.shape, axis)
	_, n, inner := a.laneGeometry(adjusted)
	dims := append([]int(nil), a.shape.Dimensions...)
	dims[adjusted] = n * repeats
	out := newDense(shapes.Make(a.DType(), dims...))
	out.weak = a.weak
	m := n * repeats
	gatherBytes(a, out, func(i int) int {
		in := i % inner
		j := (i / inner) % m
		o := i / (m * inner)
		return o*n*inner + (j/repeats)*inner + in
	})
	return out
}

// Diagonal extracts the diagonal of the planes spanned by axis1 and axis2,
// offset above (positive) or below (negative) the main diagonal. The two
// axes are removed and the diagonal is appended as the last axis.
func (a *Array) Diagonal(offset, axis1, axis2 int) arrays.Array {
	a1 := shapes.AdjustAxis(a.shape, axis1)
	a2 := shapes.AdjustAxis(a.shape, axis2)
	if a1 == a2 {
		exceptions.Panicf("dense.Array.Diagonal: axis1 and axis2 must differ, got %d and %d", axis1, axis2)
	}
	d1, d2 := a.shape.Dimensions[a1], a.shape.Dimensions[a2]
	start1, start2 := 0, offset
	if offset < 0 {
		start1, start2 = -offset, 0
	}
	length := min(d1-start1, d2-start2)
	if length <= 0 {
		exceptions.Panicf("dense.Array.Diagonal: offset %d leaves no diagonal in %dx%d planes", offset, d1, d2)
	}

	var dims []int
	var keptAxes []int
	for axis, dim := range a.shape.Dimensions {
		if axis == a1 || axis == a2 {
			continue
		}
		dims = append(dims, dim)
		keptAxes = append(keptAxes, axis)
	}
	dims = append(dims, length)
	out := newDense(shapes.Make(a.DType(), dims...))
	out.weak = a.weak

	srcStrides := a.shape.Strides()
	es := a.elemSize()
	srcBytes, outBytes := a.bytes(), out.bytes()
	outFlat := 0
	for indices := range out.shape.Iter() {
		k := indices[len(indices)-1]
		srcFlat := (start1+k)*srcStrides[a1] + (start2+k)*srcStrides[a2]
		for i, axis := range keptAxes {
			srcFlat += indices[i] * srcStrides[axis]
		}
		copy(outBytes[outFlat*es:(outFlat+1)*es], srcBytes[srcFlat*es:(srcFlat+1)*es])
		outFlat++
	}
	return out
}

// Trace sums the diagonal extracted by Diagonal.
func (a *Array) Trace(offset, axis1, axis2 int) arrays.Array {
	return a.Diagonal(offset, axis1, axis2).Sum(arrays.WithAxes(-1))
}

// SearchSorted returns, for each value, the Int64 insertion index that keeps
// the receiver sorted. The receiver must be rank-1 and sorted ascending;
// side selects the leftmost or rightmost valid index for equal values.
func (a *Array) SearchSorted(valuesAny arrays.Array, side arrays.SearchSide) arrays.Array {
	if a.Rank() != 1 {
		exceptions.Panicf("dense.Array.SearchSorted: receiver must be rank-1, got %s", a.shape)
	}
	if isComplex(a.DType()) {
		exceptions.Panicf("dense.Array.SearchSorted: complex dtypes are not ordered")
	}
	values := toDense("SearchSorted", valuesAny)
	haystack := convertFlat[float64](a)
	needles := convertFlat[float64](values)
	out := newDense(shapes.Make(dtypes.Int64, values.shape.Dimensions...))
	dst := flatOf[int64](out)
	for i, v := range needles {
		var at int
		if side == arrays.SearchRight {
			at = sort.Search(len(haystack), func(j int) bool { return haystack[j] > v })
		} else {
			at = sort.Search(len(haystack), func(j int) bool { return haystack[j] >= v })
		}
		dst[i] = int64(at)
	}
	return out
}

// NonZero returns one rank-1 Int64 array per axis with the coordinates of
// the truthy elements, in row-major order. It panics when no element is
// truthy, shapes have no zero dimensions.
func (a *Array) NonZero() []arrays.Array {
	if a.Rank() == 0 {
		exceptions.Panicf("dense.Array.NonZero: not defined for scalars")
	}
	sel := truthyFlat(a)
	n := 0
	for _, s := range sel {
		if s {
			n++
		}
	}
	if n == 0 {
		exceptions.Panicf("dense.Array.NonZero: no truthy elements, shapes have no zero dimensions")
	}
	coords := make([]*Array, a.Rank())
	flats := make([][]int64, a.Rank())
	for axis := range coords {
		coords[axis] = newDense(shapes.Make(dtypes.Int64, n))
		flats[axis] = flatOf[int64](coords[axis])
	}
	i, next := 0, 0
	for indices := range a.shape.Iter() {
		if sel[i] {
			for axis, idx := range indices {
				flats[axis][next] = int64(idx)
			}
			next++
		}
		i++
	}
	result := make([]arrays.Array, a.Rank())
	for axis, c := range coords {
		result[axis] = c
	}
	return result
}

// Clip limits the elements to [min, max]. Either bound may be nil; bounds
// broadcast against the receiver.
func (a *Array) Clip(minAny, maxAny arrays.Array) arrays.Array {
	if minAny == nil && maxAny == nil {
		exceptions.Panicf("dense.Array.Clip: at least one of min and max must be given")
	}
	out := a
	if minAny != nil {
		out = out.binaryOp("Clip", binMaximum, minAny)
	}
	if maxAny != nil {
		out = out.binaryOp("Clip", binMinimum, maxAny)
	}
	if out == a {
		return a.copyInternal()
	}
	return out
}

// Compress selects the positions along the axis where condition is true.
// Condition must be a rank-1 Bool array no longer than the axis; missing
// trailing positions are dropped.
func (a *Array) Compress(conditionAny arrays.Array, axis int) arrays.Array {
	adjusted := shapes.AdjustAxis(a.shape, axis)
	condition := toDense("Compress", conditionAny)
	if condition.DType() != dtypes.Bool || condition.Rank() != 1 {
		exceptions.Panicf("dense.Array.Compress: condition must be a rank-1 Bool array, got %s", condition.shape)
	}
	dim := a.shape.Dimensions[adjusted]
	if condition.Len() > dim {
		exceptions.Panicf("dense.Array.Compress: condition has %d entries for an axis of dimension %d",
			condition.Len(), dim)
	}
	var selected []int64
	for i, s := range flatOf[bool](condition) {
		if s {
			selected = append(selected, int64(i))
		}
	}
	if len(selected) == 0 {
		exceptions.Panicf("dense.Array.Compress: condition selects no positions, shapes have no zero dimensions")
	}
	return a.Take(FromFlatDataAndDimensions(selected, len(selected)), adjusted)
}
