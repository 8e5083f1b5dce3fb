// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"math"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
)

// reducePlan resolves the reduction geometry shared by all reductions: which
// axes reduce, the result dimensions and, for every flat position of the
// source, the flat position of the result cell it folds into.
type reducePlan struct {
	cfg     *arrays.ReduceConfig
	reduced []bool
	outDims []int
	groups  int
	groupOf []int
	where   []bool // nil when no Where mask was given
}

func (a *Array) newReducePlan(opName string, opts []arrays.ReduceOpt) *reducePlan {
	cfg := arrays.NewReduceConfig(opts...)
	rank := a.Rank()
	plan := &reducePlan{cfg: cfg, reduced: make([]bool, rank)}
	if len(cfg.Axes) == 0 {
		for axis := range plan.reduced {
			plan.reduced[axis] = true
		}
	} else {
		for _, axis := range cfg.Axes {
			adjusted := shapes.AdjustAxis(a.shape, axis)
			if plan.reduced[adjusted] {
				exceptions.Panicf("dense.Array.%s: axis %d given more than once", opName, axis)
			}
			plan.reduced[adjusted] = true
		}
	}
	for axis, dim := range a.shape.Dimensions {
		if plan.reduced[axis] {
			if cfg.KeepDims {
				plan.outDims = append(plan.outDims, 1)
			}
			continue
		}
		plan.outDims = append(plan.outDims, dim)
	}

	// Strides of the result over the source's kept axes; reduced axes
	// contribute nothing.
	keptStrides := make([]int, rank)
	stride := 1
	for axis := rank - 1; axis >= 0; axis-- {
		if !plan.reduced[axis] {
			keptStrides[axis] = stride
			stride *= a.shape.Dimensions[axis]
		}
	}
	plan.groups = stride
	plan.groupOf = make([]int, a.Size())
	i := 0
	for indices := range a.shape.Iter() {
		g := 0
		for axis, idx := range indices {
			g += idx * keptStrides[axis]
		}
		plan.groupOf[i] = g
		i++
	}

	if cfg.Where != nil {
		plan.where = a.checkMask(opName, cfg.Where)
	}
	return plan
}

// finishInto copies the result into cfg.Out when one was given, and returns
// the array the caller should hand back.
func (a *Array) finishInto(opName string, outAny arrays.Array, result *Array) arrays.Array {
	if outAny == nil {
		return result
	}
	out := toDense(opName, outAny)
	if !out.shape.Equal(result.shape) {
		exceptions.Panicf("dense.Array.%s: Out has shape %s, the result needs %s", opName, out.shape, result.shape)
	}
	copy(out.bytes(), result.bytes())
	return out
}

type reduceKind int

const (
	reduceSum reduceKind = iota
	reduceProd
	reduceMin
	reduceMax
)

// reduceRealInto folds src into out, cell by cell per plan.groupOf. For Min
// and Max an empty cell (possible with a Where mask) panics unless an
// Initial value seeded it.
func reduceRealInto[T podReal](opName string, kind reduceKind, src []T, plan *reducePlan, init *Array, out []T) {
	seen := make([]bool, len(out))
	if kind == reduceProd {
		for i := range out {
			out[i] = 1
		}
	}
	if init != nil {
		v := convertFlat[T](init)[0]
		for i := range out {
			out[i] = v
			seen[i] = true
		}
	}
	for i, v := range src {
		if plan.where != nil && !plan.where[i] {
			continue
		}
		g := plan.groupOf[i]
		switch kind {
		case reduceSum:
			out[g] += v
		case reduceProd:
			out[g] *= v
		case reduceMin:
			if !seen[g] || v < out[g] {
				out[g] = v
			}
		case reduceMax:
			if !seen[g] || v > out[g] {
				out[g] = v
			}
		}
		seen[g] = true
	}
	if kind == reduceMin || kind == reduceMax {
		for _, s := range seen {
			if !s {
				exceptions.Panicf("dense.Array.%s: reduction over an empty selection, pass WithInitial", opName)
			}
		}
	}
}

func reduceComplexInto[T constraints.Complex](opName string, kind reduceKind, src []T, plan *reducePlan, init *Array, out []T) {
	if kind == reduceMin || kind == reduceMax {
		exceptions.Panicf("dense.Array.%s: complex dtypes are not ordered", opName)
	}
	if kind == reduceProd {
		for i := range out {
			out[i] = 1
		}
	}
	if init != nil {
		v := T(complex128Flat(init)[0])
		for i := range out {
			out[i] = v
		}
	}
	for i, v := range src {
		if plan.where != nil && !plan.where[i] {
			continue
		}
		g := plan.groupOf[i]
		if kind == reduceProd {
			out[g] *= v
		} else {
			out[g] += v
		}
	}
}

func (a *Array) reduceOp(opName string, kind reduceKind, opts []arrays.ReduceOpt) arrays.Array {
	plan := a.newReducePlan(opName, opts)
	cfg := plan.cfg
	if cfg.DDof != 0 {
		exceptions.Panicf("dense.Array.%s: DDof only applies to Std and Var", opName)
	}

	// Sums and products of booleans count, NumPy style.
	rt := a.DType()
	if rt == dtypes.Bool && (kind == reduceSum || kind == reduceProd) {
		rt = dtypes.Int64
	}

	var init *Array
	if cfg.Initial != nil {
		init = toDense(opName, cfg.Initial)
		init.requireSingle(opName)
	}

	out := newDense(shapes.Make(rt, plan.outDims...))
	if rt == a.DType() {
		out.weak = a.weak
	}
	switch a.DType() {
	case dtypes.Bool:
		if kind == reduceSum || kind == reduceProd {
			reduceRealInto(opName, kind, convertFlat[int64](a), plan, init, flatOf[int64](out))
		} else {
			acc := make([]uint8, plan.groups)
			reduceRealInto(opName, kind, convertFlat[uint8](a), plan, init, acc)
			dst := flatOf[bool](out)
			for i, v := range acc {
				dst[i] = v != 0
			}
		}
	case dtypes.Int8:
		reduceRealInto(opName, kind, flatOf[int8](a), plan, init, flatOf[int8](out))
	case dtypes.Int16:
		reduceRealInto(opName, kind, flatOf[int16](a), plan, init, flatOf[int16](out))
	case dtypes.Int32:
		reduceRealInto(opName, kind, flatOf[int32](a), plan, init, flatOf[int32](out))
	case dtypes.Int64:
		reduceRealInto(opName, kind, flatOf[int64](a), plan, init, flatOf[int64](out))
	case dtypes.Uint8:
		reduceRealInto(opName, kind, flatOf[uint8](a), plan, init, flatOf[uint8](out))
	case dtypes.Uint16:
		reduceRealInto(opName, kind, flatOf[uint16](a), plan, init, flatOf[uint16](out))
	case dtypes.Uint32:
		reduceRealInto(opName, kind, flatOf[uint32](a), plan, init, flatOf[uint32](out))
	case dtypes.Uint64:
		reduceRealInto(opName, kind, flatOf[uint64](a), plan, init, flatOf[uint64](out))
	case dtypes.Float16:
		acc := make([]float32, plan.groups)
		reduceRealInto(opName, kind, float32Flat(a), plan, init, acc)
		f32ToF16(acc, flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		acc := make([]float32, plan.groups)
		reduceRealInto(opName, kind, float32Flat(a), plan, init, acc)
		f32ToBF16(acc, flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		reduceRealInto(opName, kind, flatOf[float32](a), plan, init, flatOf[float32](out))
	case dtypes.Float64:
		reduceRealInto(opName, kind, flatOf[float64](a), plan, init, flatOf[float64](out))
	case dtypes.Complex64:
		reduceComplexInto(opName, kind, flatOf[complex64](a), plan, init, flatOf[complex64](out))
	case dtypes.Complex128:
		reduceComplexInto(opName, kind, flatOf[complex128](a), plan, init, flatOf[complex128](out))
	default:
		exceptions.Panicf("dense.Array.%s: dtype %s not supported", opName, a.DType())
	}
	return a.finishInto(opName, cfg.Out, out)
}

// Sum adds the elements over the selected axes (all, by default).
func (a *Array) Sum(opts ...arrays.ReduceOpt) arrays.Array {
	return a.reduceOp("Sum", reduceSum, opts)
}

// Prod multiplies the elements over the selected axes.
func (a *Array) Prod(opts ...arrays.ReduceOpt) arrays.Array {
	return a.reduceOp("Prod", reduceProd, opts)
}

// Max takes the largest element over the selected axes.
func (a *Array) Max(opts ...arrays.ReduceOpt) arrays.Array {
	return a.reduceOp("Max", reduceMax, opts)
}

// Min takes the smallest element over the selected axes.
func (a *Array) Min(opts ...arrays.ReduceOpt) arrays.Array {
	return a.reduceOp("Min", reduceMin, opts)
}

func (a *Array) boolReduce(opName string, isAll bool, opts []arrays.ReduceOpt) arrays.Array {
	plan := a.newReducePlan(opName, opts)
	cfg := plan.cfg
	if cfg.Initial != nil || cfg.DDof != 0 {
		exceptions.Panicf("dense.Array.%s: Initial and DDof are not supported", opName)
	}
	out := newDense(shapes.Make(dtypes.Bool, plan.outDims...))
	dst := flatOf[bool](out)
	for i := range dst {
		dst[i] = isAll
	}
	for i, v := range truthyFlat(a) {
		if plan.where != nil && !plan.where[i] {
			continue
		}
		g := plan.groupOf[i]
		if isAll {
			dst[g] = dst[g] && v
		} else {
			dst[g] = dst[g] || v
		}
	}
	return a.finishInto(opName, cfg.Out, out)
}

// All reports whether all elements are truthy, over the selected axes.
func (a *Array) All(opts ...arrays.ReduceOpt) arrays.Array {
	return a.boolReduce("All", true, opts)
}

// Any reports whether any element is truthy, over the selected axes.
func (a *Array) Any(opts ...arrays.ReduceOpt) arrays.Array {
	return a.boolReduce("Any", false, opts)
}

type momentKind int

const (
	momentMean momentKind = iota
	momentVar
	momentStd
)

// momentOp computes Mean, Var or Std in complex128/float64 regardless of the
// input dtype. Cells with no participating elements (or with N - DDof <= 0)
// come out as NaN.
func (a *Array) momentOp(opName string, kind momentKind, opts []arrays.ReduceOpt) arrays.Array {
	plan := a.newReducePlan(opName, opts)
	cfg := plan.cfg
	if cfg.Initial != nil {
		exceptions.Panicf("dense.Array.%s: Initial is not supported", opName)
	}
	if kind == momentMean && cfg.DDof != 0 {
		exceptions.Panicf("dense.Array.Mean: DDof only applies to Std and Var")
	}

	vals := complex128Flat(a)
	counts := make([]int, plan.groups)
	sums := make([]complex128, plan.groups)
	for i, v := range vals {
		if plan.where != nil && !plan.where[i] {
			continue
		}
		g := plan.groupOf[i]
		sums[g] += v
		counts[g]++
	}
	means := make([]complex128, plan.groups)
	for g := range means {
		if counts[g] == 0 {
			means[g] = complex(math.NaN(), math.NaN())
			continue
		}
		means[g] = sums[g] / complex(float64(counts[g]), 0)
	}

	if kind == momentMean {
		rt := a.DType()
		if !isFloat(rt) && !isComplex(rt) {
			rt = dtypes.Float64
		}
		out := newDense(shapes.Make(rt, plan.outDims...))
		if isComplex(rt) {
			writeComplexes(out, means)
		} else {
			reals := make([]float64, len(means))
			for g, m := range means {
				reals[g] = real(m)
			}
			writeFloats(out, reals)
		}
		return a.finishInto(opName, cfg.Out, out)
	}

	// Var and Std are real even for complex inputs: the squared magnitude of
	// the deviations.
	m2 := make([]float64, plan.groups)
	for i, v := range vals {
		if plan.where != nil && !plan.where[i] {
			continue
		}
		g := plan.groupOf[i]
		d := cmplxAbs(v - means[g])
		m2[g] += d * d
	}
	results := make([]float64, plan.groups)
	for g := range results {
		div := counts[g] - cfg.DDof
		if div <= 0 {
			results[g] = math.NaN()
			continue
		}
		results[g] = m2[g] / float64(div)
		if kind == momentStd {
			results[g] = math.Sqrt(results[g])
		}
	}

	var rt dtypes.DType
	switch {
	case a.DType() == dtypes.Complex64:
		rt = dtypes.Float32
	case a.DType() == dtypes.Complex128:
		rt = dtypes.Float64
	case isFloat(a.DType()):
		rt = a.DType()
	default:
		rt = dtypes.Float64
	}
	out := newDense(shapes.Make(rt, plan.outDims...))
	writeFloats(out, results)
	return a.finishInto(opName, cfg.Out, out)
}

// writeFloats stores float64 results into a float-dtyped array.
func writeFloats(out *Array, vals []float64) {
	switch dst := out.flat.(type) {
	case []float16.Float16:
		for i, v := range vals {
			dst[i] = float16.Fromfloat32(float32(v))
		}
	case []bfloat16.BFloat16:
		for i, v := range vals {
			dst[i] = bfloat16.FromFloat32(float32(v))
		}
	case []float32:
		for i, v := range vals {
			dst[i] = float32(v)
		}
	case []float64:
		copy(dst, vals)
	default:
		exceptions.Panicf("dense: cannot store float results into %s", out.DType())
	}
}

// writeComplexes stores complex128 results into a complex-dtyped array.
func writeComplexes(out *Array, vals []complex128) {
	switch dst := out.flat.(type) {
	case []complex64:
		for i, v := range vals {
			dst[i] = complex64(v)
		}
	case []complex128:
		copy(dst, vals)
	default:
		exceptions.Panicf("dense: cannot store complex results into %s", out.DType())
	}
}

// Mean averages the elements over the selected axes. Integer and boolean
// inputs yield Float64; float and complex inputs keep their dtype.
func (a *Array) Mean(opts ...arrays.ReduceOpt) arrays.Array {
	return a.momentOp("Mean", momentMean, opts)
}

// Var is the population variance (divisor N - DDof) over the selected axes.
// Complex inputs yield the corresponding float dtype.
func (a *Array) Var(opts ...arrays.ReduceOpt) arrays.Array {
	return a.momentOp("Var", momentVar, opts)
}

// Std is the square root of Var.
func (a *Array) Std(opts ...arrays.ReduceOpt) arrays.Array {
	return a.momentOp("Std", momentStd, opts)
}

func argReduceKernel[T podReal](isMin bool, src []T, groupOf []int, idxOf, bestIdx []int64, best []T, seen []bool) {
	for i, v := range src {
		g := groupOf[i]
		better := !seen[g] || (isMin && v < best[g]) || (!isMin && v > best[g])
		if better {
			best[g], bestIdx[g], seen[g] = v, idxOf[i], true
		}
	}
}

// argReduce locates the extreme element: its index along the reduced axis,
// or into the flattened array when no axis is given. Ties go to the first
// occurrence.
func (a *Array) argReduce(opName string, isMin bool, opts []arrays.ReduceOpt) arrays.Array {
	plan := a.newReducePlan(opName, opts)
	cfg := plan.cfg
	if cfg.Where != nil || cfg.Initial != nil || cfg.DDof != 0 {
		exceptions.Panicf("dense.Array.%s: Where, Initial and DDof are not supported", opName)
	}
	if len(cfg.Axes) > 1 {
		exceptions.Panicf("dense.Array.%s: takes a single axis, or none for the flattened array", opName)
	}

	idxOf := make([]int64, a.Size())
	if len(cfg.Axes) == 0 {
		for i := range idxOf {
			idxOf[i] = int64(i)
		}
	} else {
		axis := shapes.AdjustAxis(a.shape, cfg.Axes[0])
		i := 0
		for indices := range a.shape.Iter() {
			idxOf[i] = int64(indices[axis])
			i++
		}
	}

	out := newDense(shapes.Make(dtypes.Int64, plan.outDims...))
	bestIdx := flatOf[int64](out)
	seen := make([]bool, plan.groups)
	switch a.DType() {
	case dtypes.Bool:
		argReduceKernel(isMin, convertFlat[uint8](a), plan.groupOf, idxOf, bestIdx, make([]uint8, plan.groups), seen)
	case dtypes.Int8:
		argReduceKernel(isMin, flatOf[int8](a), plan.groupOf, idxOf, bestIdx, make([]int8, plan.groups), seen)
	case dtypes.Int16:
		argReduceKernel(isMin, flatOf[int16](a), plan.groupOf, idxOf, bestIdx, make([]int16, plan.groups), seen)
	case dtypes.Int32:
		argReduceKernel(isMin, flatOf[int32](a), plan.groupOf, idxOf, bestIdx, make([]int32, plan.groups), seen)
	case dtypes.Int64:
		argReduceKernel(isMin, flatOf[int64](a), plan.groupOf, idxOf, bestIdx, make([]int64, plan.groups), seen)
	case dtypes.Uint8:
		argReduceKernel(isMin, flatOf[uint8](a), plan.groupOf, idxOf, bestIdx, make([]uint8, plan.groups), seen)
	case dtypes.Uint16:
		argReduceKernel(isMin, flatOf[uint16](a), plan.groupOf, idxOf, bestIdx, make([]uint16, plan.groups), seen)
	case dtypes.Uint32:
		argReduceKernel(isMin, flatOf[uint32](a), plan.groupOf, idxOf, bestIdx, make([]uint32, plan.groups), seen)
	case dtypes.Uint64:
		argReduceKernel(isMin, flatOf[uint64](a), plan.groupOf, idxOf, bestIdx, make([]uint64, plan.groups), seen)
	case dtypes.Float16, dtypes.BFloat16:
		argReduceKernel(isMin, float32Flat(a), plan.groupOf, idxOf, bestIdx, make([]float32, plan.groups), seen)
	case dtypes.Float32:
		argReduceKernel(isMin, flatOf[float32](a), plan.groupOf, idxOf, bestIdx, make([]float32, plan.groups), seen)
	case dtypes.Float64:
		argReduceKernel(isMin, flatOf[float64](a), plan.groupOf, idxOf, bestIdx, make([]float64, plan.groups), seen)
	default:
		exceptions.Panicf("dense.Array.%s: dtype %s is not ordered", opName, a.DType())
	}
	return a.finishInto(opName, cfg.Out, out)
}

// ArgMax returns the index of the largest element along the given axis (see
// WithAxes), or into the flattened array when no axis is given.
func (a *Array) ArgMax(opts ...arrays.ReduceOpt) arrays.Array {
	return a.argReduce("ArgMax", false, opts)
}

// ArgMin returns the index of the smallest element, see ArgMax.
func (a *Array) ArgMin(opts ...arrays.ReduceOpt) arrays.Array {
	return a.argReduce("ArgMin", true, opts)
}

func cumKernel[T podNumeric](isProd bool, src, dst []T, outer, n, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in
			acc := T(0)
			if isProd {
				acc = 1
			}
			for k := 0; k < n; k++ {
				p := base + k*inner
				if isProd {
					acc *= src[p]
				} else {
					acc += src[p]
				}
				dst[p] = acc
			}
		}
	}
}

// cumOp is the running Sum or Prod along one axis (see WithAxes), or along
// the flattened elements when no axis is given.
func (a *Array) cumOp(opName string, isProd bool, opts []arrays.ReduceOpt) arrays.Array {
	cfg := arrays.NewReduceConfig(opts...)
	if cfg.Where != nil || cfg.Initial != nil || cfg.DDof != 0 || cfg.KeepDims {
		exceptions.Panicf("dense.Array.%s: only WithAxes and WithOut are supported", opName)
	}
	if len(cfg.Axes) > 1 {
		exceptions.Panicf("dense.Array.%s: takes a single axis, or none for the flattened array", opName)
	}

	src := a
	axis := 0
	if len(cfg.Axes) == 1 {
		axis = shapes.AdjustAxis(a.shape, cfg.Axes[0])
	} else if a.Rank() != 1 {
		// Flatten first; the result is rank-1.
		src = newDense(shapes.Make(a.DType(), a.Size()))
		copy(src.bytes(), a.bytes())
	}

	rt := a.DType()
	if rt == dtypes.Bool {
		rt = dtypes.Int64
	}
	out := newDense(shapes.Make(rt, src.shape.Dimensions...))
	if rt == a.DType() {
		out.weak = a.weak
	}

	n := src.shape.Dimensions[axis]
	inner := 1
	for _, dim := range src.shape.Dimensions[axis+1:] {
		inner *= dim
	}
	outer := src.Size() / (n * inner)

	switch src.DType() {
	case dtypes.Bool:
		cumKernel(isProd, convertFlat[int64](src), flatOf[int64](out), outer, n, inner)
	case dtypes.Int8:
		cumKernel(isProd, flatOf[int8](src), flatOf[int8](out), outer, n, inner)
	case dtypes.Int16:
		cumKernel(isProd, flatOf[int16](src), flatOf[int16](out), outer, n, inner)
	case dtypes.Int32:
		cumKernel(isProd, flatOf[int32](src), flatOf[int32](out), outer, n, inner)
	case dtypes.Int64:
		cumKernel(isProd, flatOf[int64](src), flatOf[int64](out), outer, n, inner)
	case dtypes.Uint8:
		cumKernel(isProd, flatOf[uint8](src), flatOf[uint8](out), outer, n, inner)
	case dtypes.Uint16:
		cumKernel(isProd, flatOf[uint16](src), flatOf[uint16](out), outer, n, inner)
	case dtypes.Uint32:
		cumKernel(isProd, flatOf[uint32](src), flatOf[uint32](out), outer, n, inner)
	case dtypes.Uint64:
		cumKernel(isProd, flatOf[uint64](src), flatOf[uint64](out), outer, n, inner)
	case dtypes.Float16:
		acc := make([]float32, src.Size())
		cumKernel(isProd, float32Flat(src), acc, outer, n, inner)
		f32ToF16(acc, flatOf[float16.Float16](out))
	case dtypes.BFloat16:
		acc := make([]float32, src.Size())
		cumKernel(isProd, float32Flat(src), acc, outer, n, inner)
		f32ToBF16(acc, flatOf[bfloat16.BFloat16](out))
	case dtypes.Float32:
		cumKernel(isProd, flatOf[float32](src), flatOf[float32](out), outer, n, inner)
	case dtypes.Float64:
		cumKernel(isProd, flatOf[float64](src), flatOf[float64](out), outer, n, inner)
	case dtypes.Complex64:
		cumKernel(isProd, flatOf[complex64](src), flatOf[complex64](out), outer, n, inner)
	case dtypes.Complex128:
		cumKernel(isProd, flatOf[complex128](src), flatOf[complex128](out), outer, n, inner)
	default:
		exceptions.Panicf("dense.Array.%s: dtype %s not supported", opName, src.DType())
	}
	return a.finishInto(opName, cfg.Out, out)
}

// CumSum is the running sum along one axis, or along the flattened elements
// when no axis is given (the result is then rank-1).
func (a *Array) CumSum(opts ...arrays.ReduceOpt) arrays.Array {
	return a.cumOp("CumSum", false, opts)
}

// CumProd is the running product, see CumSum.
func (a *Array) CumProd(opts ...arrays.ReduceOpt) arrays.Array {
	return a.cumOp("CumProd", true, opts)
}

// Ptp is the peak-to-peak range, Max minus Min, over the selected axes.
func (a *Array) Ptp(opts ...arrays.ReduceOpt) arrays.Array {
	cfg := arrays.NewReduceConfig(opts...)
	if cfg.Where != nil || cfg.Initial != nil || cfg.DDof != 0 {
		exceptions.Panicf("dense.Array.Ptp: only WithAxes, WithKeepDims and WithOut are supported")
	}
	sub := []arrays.ReduceOpt{arrays.WithAxes(cfg.Axes...)}
	if cfg.KeepDims {
		sub = append(sub, arrays.WithKeepDims())
	}
	maxA := toDense("Ptp", a.Max(sub...))
	minA := toDense("Ptp", a.Min(sub...))
	diff := toDense("Ptp", maxA.Sub(minA))
	return a.finishInto("Ptp", cfg.Out, diff)
}
