// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

// Package dense implements the array capability set (arrays.Array) with a
// host-memory backed array: a flat, row-major slice of the underlying dtype
// plus a shape.
//
// Construct arrays with FromShape, FromScalar, FromFlatDataAndDimensions or
// FromValue. The package registers *Array as a capability-set implementer at
// initialization, so arrays.IsArrayLike recognizes dense arrays nominally.
//
// Operations follow NumPy semantics where the capability set leaves room for
// interpretation: element-wise binary operations broadcast, true division of
// integers yields Float64, floor-division and modulo round towards negative
// infinity, and reductions accept axes, keep-dims, initial values and
// boolean inclusion masks.
//
// Mixed-dtype operands are only allowed when one side is weakly typed (see
// Array.WeakType); the weak operand is converted to the other's dtype.
// Float16 and BFloat16 arrays are stored in half precision and computed in
// float32.
package dense

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/avals"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// maxSizeToPrint is the largest number of elements String renders in full.
const maxSizeToPrint = 24

// Array is a host-memory backed implementation of arrays.Array.
//
// The zero value is invalid: use one of the From* constructors. Array is not
// safe for concurrent mutation; treat values shared between goroutines as
// read-only.
type Array struct {
	shape shapes.Shape
	flat  any // []T with T matching shape.DType, len == shape.Size().
	weak  bool
}

var _ arrays.Array = (*Array)(nil)

func init() {
	arrays.RegisterImplementer((*Array)(nil))
	klog.V(2).Info("dense: registered *dense.Array as array implementer")
}

// newDense allocates an Array of the given shape with zero values.
func newDense(shape shapes.Shape) *Array {
	return &Array{shape: shape, flat: newFlat(shape.DType, shape.Size())}
}

// FromShape returns a new Array of the given shape, filled with zeros.
func FromShape(shape shapes.Shape) *Array {
	if !shape.Ok() {
		exceptions.Panicf("dense.FromShape: invalid shape %s", shape)
	}
	return newDense(shape)
}

// FromScalar returns a scalar Array holding the given value.
func FromScalar[T dtypes.Supported](value T) *Array {
	return FromFlatDataAndDimensions([]T{value})
}

// FromFlatDataAndDimensions returns an Array with the given dimensions,
// filled with the flattened values in data. The DType is inferred from T.
func FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) *Array {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if len(data) != shape.Size() {
		exceptions.Panicf("dense.FromFlatDataAndDimensions(%s): got %d values, shape needs %d",
			shape, len(data), shape.Size())
	}
	a := newDense(shape)
	dst := reflect.ValueOf(a.flat)
	src := reflect.ValueOf(data)
	if dst.Type() == src.Type() {
		reflect.Copy(dst, src)
	} else {
		// T is Go's `int` (or another alias of the storage type): convert
		// element by element.
		for i := 0; i < len(data); i++ {
			dst.Index(i).Set(src.Index(i).Convert(dst.Type().Elem()))
		}
	}
	return a
}

// FromValue returns an Array built from a Go scalar or (multidimensional)
// slice. Slices of rank > 1 must be regular: all sub-slices with the same
// length. It panics on irregular shapes or unsupported element types.
//
// If value is already an arrays.Array it is returned as is when dense, or
// materialized into a dense Array via its Value() otherwise.
func FromValue(value any) *Array {
	if a, ok := value.(*Array); ok {
		return a
	}
	if a, ok := value.(arrays.Array); ok {
		return FromValue(a.Value())
	}
	shape, err := shapeForValue(value)
	if err != nil {
		panic(errors.Wrapf(err, "dense.FromValue(%T)", value))
	}
	a := newDense(shape)
	flatV := reflect.ValueOf(a.flat)
	next := 0
	fillRecursively(flatV, reflect.ValueOf(value), &next)
	return a
}

// shapeForValue infers the Shape of a Go scalar or nested slice.
func shapeForValue(value any) (shape shapes.Shape, err error) {
	v := reflect.ValueOf(value)
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Slice {
		if v.Len() == 0 {
			return shape, errors.Errorf("empty slices cannot be converted to arrays, shapes have no zero dimensions")
		}
		shape.Dimensions = append(shape.Dimensions, v.Len())
		t = t.Elem()
		v = v.Index(0)
	}
	if t == nil {
		return shape, errors.Errorf("cannot infer a dtype from nil")
	}
	shape.DType = dtypes.FromGoType(t)
	if shape.DType == dtypes.InvalidDType {
		return shape, errors.Errorf("Go type %s is not a supported array element type", t)
	}
	if err = checkRegular(reflect.ValueOf(value), shape.Dimensions); err != nil {
		return shape, err
	}
	return shape, nil
}

// checkRegular verifies all sub-slices have the dimensions seen on the first
// element of each axis.
func checkRegular(v reflect.Value, dimensions []int) error {
	if len(dimensions) == 0 {
		return nil
	}
	if v.Len() != dimensions[0] {
		return errors.Errorf("irregular nested slices: got length %d where %d was expected", v.Len(), dimensions[0])
	}
	for i := 0; i < v.Len(); i++ {
		if err := checkRegular(v.Index(i), dimensions[1:]); err != nil {
			return err
		}
	}
	return nil
}

// fillRecursively copies a nested slice into the flat storage, converting
// each element to the storage type (this handles Go `int` values).
func fillRecursively(flat reflect.Value, value reflect.Value, next *int) {
	if value.Kind() != reflect.Slice {
		flat.Index(*next).Set(value.Convert(flat.Type().Elem()))
		*next++
		return
	}
	for i := 0; i < value.Len(); i++ {
		fillRecursively(flat, value.Index(i), next)
	}
}

// Shape returns the dtype and dimensions of the array.
func (a *Array) Shape() shapes.Shape { return a.shape }

// DType returns the element type, a shortcut for Shape().DType.
func (a *Array) DType() dtypes.DType { return a.shape.DType }

// Rank returns the number of axes.
func (a *Array) Rank() int { return a.shape.Rank() }

// Size returns the number of elements.
func (a *Array) Size() int { return a.shape.Size() }

// NBytes returns the memory taken by the elements.
func (a *Array) NBytes() uintptr { return a.shape.Memory() }

// Len returns the dimension of axis 0. It panics for scalars, that have no
// axes to measure.
func (a *Array) Len() int {
	if a.Rank() == 0 {
		exceptions.Panicf("dense.Array.Len(): scalar arrays have no length")
	}
	return a.shape.Dimensions[0]
}

// WeakType reports whether the array is weakly typed: its dtype yields to
// the other operand's in mixed-dtype operations.
func (a *Array) WeakType() bool { return a.weak }

// WithWeakType returns an array marked with the given weak-type status. The
// returned array shares the receiver's storage.
func (a *Array) WithWeakType(weak bool) *Array {
	return &Array{shape: a.shape, flat: a.flat, weak: weak}
}

// Aval returns the Concrete abstract value descriptor for this array.
func (a *Array) Aval() avals.AbstractValue {
	return avals.NewConcrete(a.shape, a.weak, a)
}

// Equal reports whether both arrays have the same shape and the same bytes.
// Note NaN elements compare equal to themselves under this definition.
func (a *Array) Equal(other *Array) bool {
	if a == other {
		return true
	}
	if other == nil || !a.shape.Equal(other.shape) {
		return false
	}
	aBytes, bBytes := a.bytes(), other.bytes()
	for i := range aBytes {
		if aBytes[i] != bBytes[i] {
			return false
		}
	}
	return true
}

// InDelta reports whether both arrays have the same dimensions and all
// elements within delta of each other, comparing as float64 (the absolute
// value is used for complex dtypes).
func (a *Array) InDelta(other *Array, delta float64) bool {
	if other == nil || !a.shape.EqualDimensions(other.shape) {
		return false
	}
	lhs := complex128Flat(a)
	rhs := complex128Flat(other)
	for i := range lhs {
		diff := lhs[i] - rhs[i]
		if cmplxAbs(diff) > delta {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer. Small arrays print all values; large ones
// print the shape and memory size.
func (a *Array) String() string {
	if a == nil || a.flat == nil {
		return "dense.Array(invalid)"
	}
	if a.Size() > maxSizeToPrint {
		return fmt.Sprintf("dense.Array%s: %s", a.shape, humanize.Bytes(uint64(a.NBytes())))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "dense.Array%s: ", a.shape)
	fmt.Fprintf(&b, "%v", a.Value())
	return b.String()
}

// toDense asserts the operand is a dense array. Operations on dense arrays
// require dense operands; use FromValue to materialize foreign values first.
func toDense(opName string, operand arrays.Array) *Array {
	if operand == nil {
		exceptions.Panicf("dense.Array.%s: operand is nil", opName)
	}
	b, ok := operand.(*Array)
	if !ok {
		exceptions.Panicf("dense.Array.%s: operand must be a *dense.Array, got %T", opName, operand)
	}
	return b
}

// promotePair reconciles the dtypes of two operands: equal dtypes pass
// through, otherwise a weakly typed operand is converted to the other's
// dtype. Two strongly typed operands of different dtypes don't mix.
func promotePair(opName string, lhs, rhs *Array) (*Array, *Array) {
	if lhs.DType() == rhs.DType() {
		return lhs, rhs
	}
	if lhs.weak && !rhs.weak {
		return lhs.asTypeInternal(rhs.DType()), rhs
	}
	if rhs.weak && !lhs.weak {
		return lhs, rhs.asTypeInternal(lhs.DType())
	}
	exceptions.Panicf("dense.Array.%s: dtypes %s and %s don't mix (neither operand is weakly typed)",
		opName, lhs.DType(), rhs.DType())
	return nil, nil
}
