// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

// Package arrays declares the array capability set -- the full surface of
// operations any array-like value must support -- and the classifier that
// decides whether an arbitrary value conforms to it.
//
// The capability set is declared as the Array interface. Concrete
// representations (host-backed, device-backed, distributed) implement it and
// opt in by calling RegisterImplementer, usually from their package init.
//
// Deferred computation values (see package tracer) are placeholders for
// not-yet-materialized results: their runtime type is unrelated to any array
// implementation and cannot be registered. They are instead classified by
// the abstract value descriptor they carry (see AvalCarrier and package
// types/avals). IsArrayLike composes both checks.
//
// Package arrays only declares the contract; the semantics of each operation
// are defined by the implementers (see package dense for the host-backed
// reference implementation).
package arrays

import (
	"iter"

	"github.com/arraykit/arraykit/types/avals"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
)

// Array is the capability set of an array-like value.
//
// Operations that produce arrays return new values and leave the receiver
// untouched, except Set and SetMask which mutate the receiver in place. For
// functional updates of individual positions use At.
//
// Binary operations come in pairs: the plain form computes
// `receiver OP other` and the R-prefixed form computes `other OP receiver`.
// The R-forms exist so a value can appear as the second operand of an
// operation dispatched on the first: given a deferred or foreign first
// operand, `a.RSub(b)` computes `b - a`.
//
// Operations panic (in the style of github.com/gomlx/exceptions) on invalid
// arguments: out-of-bounds axes, shape mismatches, or operations undefined
// for the value's dtype.
type Array interface {
	// Shape returns the dtype and dimensions of the array.
	Shape() shapes.Shape
	// DType is a shortcut for Shape().DType.
	DType() dtypes.DType
	// Rank is a shortcut for Shape().Rank().
	Rank() int
	// Size is the number of elements, a shortcut for Shape().Size().
	Size() int
	// NBytes is the memory needed for the elements, a shortcut for Shape().Memory().
	NBytes() uintptr
	// Len is the dimension of axis 0. It panics for scalars.
	Len() int

	// Get returns the sub-array selected by indexing the leading axes with
	// the given indices. Negative indices count from the end of the axis.
	// Indexing all axes yields a scalar array.
	Get(indices ...int) Array
	// Slice returns the sub-array selected by the given per-axis specs.
	// Axes without a spec are taken in full. See AxisRange and AxisElem.
	Slice(specs ...SliceSpec) Array
	// Mask returns a rank-1 array with the elements selected by the given
	// boolean mask, which must have the same dimensions as the receiver.
	Mask(mask Array) Array
	// Set assigns value to the sub-array selected by indexing the leading
	// axes. Value must have the sub-array's shape, or be a scalar, which is
	// then replicated. It mutates the receiver.
	Set(value Array, indices ...int)
	// SetMask assigns value to the positions where mask is true. Value must
	// be a scalar or a rank-1 array with one element per true position.
	// It mutates the receiver.
	SetMask(mask Array, value Array)
	// Elements iterates over the sub-arrays along axis 0, in order.
	Elements() iter.Seq2[int, Array]
	// Reversed iterates over the sub-arrays along axis 0, last first.
	Reversed() iter.Seq2[int, Array]

	// Comparisons: element-wise, returning Bool arrays.
	Eq(other Array) Array
	Ne(other Array) Array
	Lt(other Array) Array
	Le(other Array) Array
	Gt(other Array) Array
	Ge(other Array) Array

	// Unary arithmetic.
	Neg() Array
	Pos() Array
	Abs() Array
	Invert() Array

	// Binary arithmetic, receiver as first operand.
	Add(other Array) Array
	Sub(other Array) Array
	Mul(other Array) Array
	MatMul(other Array) Array
	Div(other Array) Array
	FloorDiv(other Array) Array
	Mod(other Array) Array
	DivMod(other Array) (Array, Array)
	Pow(other Array) Array
	LShift(other Array) Array
	RShift(other Array) Array
	BitAnd(other Array) Array
	BitXor(other Array) Array
	BitOr(other Array) Array

	// Binary arithmetic, receiver as second operand.
	RAdd(other Array) Array
	RSub(other Array) Array
	RMul(other Array) Array
	RMatMul(other Array) Array
	RDiv(other Array) Array
	RFloorDiv(other Array) Array
	RMod(other Array) Array
	RDivMod(other Array) (Array, Array)
	RPow(other Array) Array
	RLShift(other Array) Array
	RRShift(other Array) Array
	RBitAnd(other Array) Array
	RBitXor(other Array) Array
	RBitOr(other Array) Array

	// Scalar coercions: they panic if the array is not a scalar (or size-1).
	Bool() bool
	Complex() complex128
	Int() int64
	Float() float64
	// Round rounds to the given number of decimals. Defined for float and
	// complex dtypes; an integer array is returned unchanged.
	Round(decimals int) Array
	// Index converts a scalar array of integer dtype to a Go int, for use
	// as an index.
	Index() int

	// Reductions. By default they reduce over all axes to a scalar; see
	// WithAxes, WithOut, WithKeepDims, WithInitial, WithWhere and WithDDof.
	All(opts ...ReduceOpt) Array
	Any(opts ...ReduceOpt) Array
	Max(opts ...ReduceOpt) Array
	Min(opts ...ReduceOpt) Array
	Mean(opts ...ReduceOpt) Array
	Std(opts ...ReduceOpt) Array
	Var(opts ...ReduceOpt) Array
	Sum(opts ...ReduceOpt) Array
	Prod(opts ...ReduceOpt) Array
	Ptp(opts ...ReduceOpt) Array
	ArgMax(opts ...ReduceOpt) Array
	ArgMin(opts ...ReduceOpt) Array
	CumSum(opts ...ReduceOpt) Array
	CumProd(opts ...ReduceOpt) Array

	// Structural operations.
	Reshape(dimensions ...int) Array
	// Transpose permutes the axes. No arguments reverses them.
	Transpose(axes ...int) Array
	SwapAxes(axis1, axis2 int) Array
	Ravel() Array
	Flatten() Array
	// Squeeze removes axes of dimension 1. No arguments removes all of
	// them; explicit axes must have dimension 1.
	Squeeze(axes ...int) Array
	Sort(axis int) Array
	ArgSort(axis int) Array
	// Partition rearranges the axis so the kth element is in its sorted
	// position, smaller elements before it and larger after.
	Partition(kth, axis int) Array
	ArgPartition(kth, axis int) Array
	// Take gathers the sub-arrays at the given integer indices along axis.
	Take(indices Array, axis int) Array
	// Repeat repeats each element (sub-array) along axis `repeats` times.
	Repeat(repeats, axis int) Array
	Diagonal(offset, axis1, axis2 int) Array
	Trace(offset, axis1, axis2 int) Array
	// SearchSorted returns for each value the insertion index that keeps
	// the receiver (rank-1, sorted) sorted.
	SearchSorted(values Array, side SearchSide) Array
	// NonZero returns one rank-1 Int64 index array per axis, locating the
	// non-zero elements.
	NonZero() []Array
	// Clip limits values to [min, max]. Either bound may be nil.
	Clip(min, max Array) Array
	// Compress selects the positions along axis where condition is true.
	Compress(condition Array, axis int) Array
	// Dot is the generalized dot-product: inner product for rank-1 operands,
	// matrix multiplication for rank-2.
	Dot(other Array) Array

	// Type and representation operations.
	AsType(dtype dtypes.DType) Array
	// View reinterprets the raw bytes as the given dtype, rescaling the
	// last axis by the relative element sizes.
	View(dtype dtypes.DType) Array
	Copy() Array
	// ToBytes serializes the flat elements in row-major order, using the
	// platform memory layout of the dtype.
	ToBytes() []byte
	// Value returns the elements as a Go scalar or (multidimensional) slice.
	Value() any
	// Item returns the element at the given indices as a Go value. With no
	// indices the array must have exactly one element.
	Item(indices ...int) any
	Real() Array
	Imag() Array
	Conj() Array

	// At returns a scoped accessor for functional updates of the sub-array
	// at the given indices: a.At(1, 2).Set(v) returns a new array with the
	// position updated, leaving the receiver untouched.
	At(indices ...int) AtRef

	// Aval returns the abstract value descriptor classifying this value.
	// Materialized arrays return a Concrete descriptor.
	Aval() avals.AbstractValue
	// WeakType reports whether the array is weakly typed: created from an
	// untyped literal, its dtype yields to the other operand's dtype in
	// mixed-dtype operations.
	WeakType() bool
}

// AtRef is the scoped-update accessor returned by Array.At. All updates are
// functional: they return a new array and leave the origin untouched.
type AtRef interface {
	// Get returns the selected sub-array.
	Get() Array
	// Set returns a copy of the origin with the selection replaced by value.
	Set(value Array) Array
	// Add returns a copy of the origin with value added to the selection.
	Add(value Array) Array
	// Mul returns a copy of the origin with the selection multiplied by value.
	Mul(value Array) Array
	// Min returns a copy of the origin with the selection replaced by the
	// element-wise minimum of itself and value.
	Min(value Array) Array
	// Max returns a copy of the origin with the selection replaced by the
	// element-wise maximum of itself and value.
	Max(value Array) Array
}

// AvalCarrier is implemented by values that carry an abstract value
// descriptor: deferred computation values and full Array implementers.
// IsArrayLike uses it to classify values whose runtime type is unknown.
type AvalCarrier interface {
	Aval() avals.AbstractValue
}
