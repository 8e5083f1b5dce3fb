// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

// Package unimplemented provides an arrays.Array implementation that panics
// with arrays.ErrNotImplemented for every operation of the capability set.
//
// Embed it to bootstrap a partial implementer: only the operations you
// override work, the rest fail with a clear "not implemented" error
// identifying the missing operation.
//
//	type sparseArray struct {
//		unimplemented.Array
//		...
//	}
package unimplemented

import (
	"iter"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/avals"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Array panics with a wrapped arrays.ErrNotImplemented on every operation.
type Array struct{}

var _ arrays.Array = Array{}

func notImplemented(op string) error {
	return errors.Wrapf(arrays.ErrNotImplemented, "in %s()", op)
}

func (Array) Shape() shapes.Shape { panic(notImplemented("Shape")) }
func (Array) DType() dtypes.DType { panic(notImplemented("DType")) }
func (Array) Rank() int           { panic(notImplemented("Rank")) }
func (Array) Size() int           { panic(notImplemented("Size")) }
func (Array) NBytes() uintptr     { panic(notImplemented("NBytes")) }
func (Array) Len() int            { panic(notImplemented("Len")) }

func (Array) Get(indices ...int) arrays.Array               { panic(notImplemented("Get")) }
func (Array) Slice(specs ...arrays.SliceSpec) arrays.Array  { panic(notImplemented("Slice")) }
func (Array) Mask(mask arrays.Array) arrays.Array           { panic(notImplemented("Mask")) }
func (Array) Set(value arrays.Array, indices ...int)        { panic(notImplemented("Set")) }
func (Array) SetMask(mask arrays.Array, value arrays.Array) { panic(notImplemented("SetMask")) }
func (Array) Elements() iter.Seq2[int, arrays.Array]        { panic(notImplemented("Elements")) }
func (Array) Reversed() iter.Seq2[int, arrays.Array]        { panic(notImplemented("Reversed")) }

func (Array) Eq(other arrays.Array) arrays.Array { panic(notImplemented("Eq")) }
func (Array) Ne(other arrays.Array) arrays.Array { panic(notImplemented("Ne")) }
func (Array) Lt(other arrays.Array) arrays.Array { panic(notImplemented("Lt")) }
func (Array) Le(other arrays.Array) arrays.Array { panic(notImplemented("Le")) }
func (Array) Gt(other arrays.Array) arrays.Array { panic(notImplemented("Gt")) }
func (Array) Ge(other arrays.Array) arrays.Array { panic(notImplemented("Ge")) }

func (Array) Neg() arrays.Array    { panic(notImplemented("Neg")) }
func (Array) Pos() arrays.Array    { panic(notImplemented("Pos")) }
func (Array) Abs() arrays.Array    { panic(notImplemented("Abs")) }
func (Array) Invert() arrays.Array { panic(notImplemented("Invert")) }

func (Array) Add(other arrays.Array) arrays.Array      { panic(notImplemented("Add")) }
func (Array) Sub(other arrays.Array) arrays.Array      { panic(notImplemented("Sub")) }
func (Array) Mul(other arrays.Array) arrays.Array      { panic(notImplemented("Mul")) }
func (Array) MatMul(other arrays.Array) arrays.Array   { panic(notImplemented("MatMul")) }
func (Array) Div(other arrays.Array) arrays.Array      { panic(notImplemented("Div")) }
func (Array) FloorDiv(other arrays.Array) arrays.Array { panic(notImplemented("FloorDiv")) }
func (Array) Mod(other arrays.Array) arrays.Array      { panic(notImplemented("Mod")) }
func (Array) DivMod(other arrays.Array) (arrays.Array, arrays.Array) {
	panic(notImplemented("DivMod"))
}
func (Array) Pow(other arrays.Array) arrays.Array    { panic(notImplemented("Pow")) }
func (Array) LShift(other arrays.Array) arrays.Array { panic(notImplemented("LShift")) }
func (Array) RShift(other arrays.Array) arrays.Array { panic(notImplemented("RShift")) }
func (Array) BitAnd(other arrays.Array) arrays.Array { panic(notImplemented("BitAnd")) }
func (Array) BitXor(other arrays.Array) arrays.Array { panic(notImplemented("BitXor")) }
func (Array) BitOr(other arrays.Array) arrays.Array  { panic(notImplemented("BitOr")) }

func (Array) RAdd(other arrays.Array) arrays.Array      { panic(notImplemented("RAdd")) }
func (Array) RSub(other arrays.Array) arrays.Array      { panic(notImplemented("RSub")) }
func (Array) RMul(other arrays.Array) arrays.Array      { panic(notImplemented("RMul")) }
func (Array) RMatMul(other arrays.Array) arrays.Array   { panic(notImplemented("RMatMul")) }
func (Array) RDiv(other arrays.Array) arrays.Array      { panic(notImplemented("RDiv")) }
func (Array) RFloorDiv(other arrays.Array) arrays.Array { panic(notImplemented("RFloorDiv")) }
func (Array) RMod(other arrays.Array) arrays.Array      { panic(notImplemented("RMod")) }
func (Array) RDivMod(other arrays.Array) (arrays.Array, arrays.Array) {
	panic(notImplemented("RDivMod"))
}
func (Array) RPow(other arrays.Array) arrays.Array    { panic(notImplemented("RPow")) }
func (Array) RLShift(other arrays.Array) arrays.Array { panic(notImplemented("RLShift")) }
func (Array) RRShift(other arrays.Array) arrays.Array { panic(notImplemented("RRShift")) }
func (Array) RBitAnd(other arrays.Array) arrays.Array { panic(notImplemented("RBitAnd")) }
func (Array) RBitXor(other arrays.Array) arrays.Array { panic(notImplemented("RBitXor")) }
func (Array) RBitOr(other arrays.Array) arrays.Array  { panic(notImplemented("RBitOr")) }

func (Array) Bool() bool                  { panic(notImplemented("Bool")) }
func (Array) Complex() complex128         { panic(notImplemented("Complex")) }
func (Array) Int() int64                  { panic(notImplemented("Int")) }
func (Array) Float() float64              { panic(notImplemented("Float")) }
func (Array) Round(decimals int) arrays.Array { panic(notImplemented("Round")) }
func (Array) Index() int                  { panic(notImplemented("Index")) }

func (Array) All(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("All")) }
func (Array) Any(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("Any")) }
func (Array) Max(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("Max")) }
func (Array) Min(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("Min")) }
func (Array) Mean(opts ...arrays.ReduceOpt) arrays.Array    { panic(notImplemented("Mean")) }
func (Array) Std(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("Std")) }
func (Array) Var(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("Var")) }
func (Array) Sum(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("Sum")) }
func (Array) Prod(opts ...arrays.ReduceOpt) arrays.Array    { panic(notImplemented("Prod")) }
func (Array) Ptp(opts ...arrays.ReduceOpt) arrays.Array     { panic(notImplemented("Ptp")) }
func (Array) ArgMax(opts ...arrays.ReduceOpt) arrays.Array  { panic(notImplemented("ArgMax")) }
func (Array) ArgMin(opts ...arrays.ReduceOpt) arrays.Array  { panic(notImplemented("ArgMin")) }
func (Array) CumSum(opts ...arrays.ReduceOpt) arrays.Array  { panic(notImplemented("CumSum")) }
func (Array) CumProd(opts ...arrays.ReduceOpt) arrays.Array { panic(notImplemented("CumProd")) }

func (Array) Reshape(dimensions ...int) arrays.Array     { panic(notImplemented("Reshape")) }
func (Array) Transpose(axes ...int) arrays.Array         { panic(notImplemented("Transpose")) }
func (Array) SwapAxes(axis1, axis2 int) arrays.Array     { panic(notImplemented("SwapAxes")) }
func (Array) Ravel() arrays.Array                        { panic(notImplemented("Ravel")) }
func (Array) Flatten() arrays.Array                      { panic(notImplemented("Flatten")) }
func (Array) Squeeze(axes ...int) arrays.Array           { panic(notImplemented("Squeeze")) }
func (Array) Sort(axis int) arrays.Array                 { panic(notImplemented("Sort")) }
func (Array) ArgSort(axis int) arrays.Array              { panic(notImplemented("ArgSort")) }
func (Array) Partition(kth, axis int) arrays.Array       { panic(notImplemented("Partition")) }
func (Array) ArgPartition(kth, axis int) arrays.Array    { panic(notImplemented("ArgPartition")) }
func (Array) Take(indices arrays.Array, axis int) arrays.Array {
	panic(notImplemented("Take"))
}
func (Array) Repeat(repeats, axis int) arrays.Array          { panic(notImplemented("Repeat")) }
func (Array) Diagonal(offset, axis1, axis2 int) arrays.Array { panic(notImplemented("Diagonal")) }
func (Array) Trace(offset, axis1, axis2 int) arrays.Array    { panic(notImplemented("Trace")) }
func (Array) SearchSorted(values arrays.Array, side arrays.SearchSide) arrays.Array {
	panic(notImplemented("SearchSorted"))
}
func (Array) NonZero() []arrays.Array               { panic(notImplemented("NonZero")) }
func (Array) Clip(min, max arrays.Array) arrays.Array { panic(notImplemented("Clip")) }
func (Array) Compress(condition arrays.Array, axis int) arrays.Array {
	panic(notImplemented("Compress"))
}
func (Array) Dot(other arrays.Array) arrays.Array { panic(notImplemented("Dot")) }

func (Array) AsType(dtype dtypes.DType) arrays.Array { panic(notImplemented("AsType")) }
func (Array) View(dtype dtypes.DType) arrays.Array   { panic(notImplemented("View")) }
func (Array) Copy() arrays.Array                     { panic(notImplemented("Copy")) }
func (Array) ToBytes() []byte                        { panic(notImplemented("ToBytes")) }
func (Array) Value() any                             { panic(notImplemented("Value")) }
func (Array) Item(indices ...int) any                { panic(notImplemented("Item")) }
func (Array) Real() arrays.Array                     { panic(notImplemented("Real")) }
func (Array) Imag() arrays.Array                     { panic(notImplemented("Imag")) }
func (Array) Conj() arrays.Array                     { panic(notImplemented("Conj")) }

func (Array) At(indices ...int) arrays.AtRef  { panic(notImplemented("At")) }
func (Array) Aval() avals.AbstractValue       { panic(notImplemented("Aval")) }
func (Array) WeakType() bool                  { panic(notImplemented("WeakType")) }
