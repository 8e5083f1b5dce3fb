// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

// Package avals defines abstract value descriptors ("avals"): classification
// tags attached to deferred computation values describing the kind of result
// they will eventually produce.
//
// The descriptor hierarchy, from least to most specific:
//
//   - Unshaped: "will produce an array-like result", dtype known, shape not
//     yet fixed. This is the classification the capability-set classifier
//     (arrays.IsArrayLike) looks for.
//   - Shaped: an Unshaped whose dimensions are also known.
//   - Concrete: a Shaped whose value is already materialized.
//   - Token: a non-array descriptor, used for effect-ordering values that
//     flow through computations but never materialize as arrays.
//
// Specialization is expressed with struct embedding: Shaped embeds Unshaped
// and Concrete embeds Shaped, so both inherit the array-kind classification.
package avals

import (
	"fmt"

	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
)

// AbstractValue is the interface implemented by all descriptors.
type AbstractValue interface {
	// DType of the eventual result, or dtypes.InvalidDType for non-array
	// descriptors.
	DType() dtypes.DType

	// WeakType reports whether the eventual result is weakly typed: its
	// dtype was inferred from an untyped literal and may be promoted to
	// the dtype of the other operand in mixed-dtype operations.
	WeakType() bool

	fmt.Stringer
}

// arrayKind is the marker for descriptors classified as "unshaped array or
// a more specific subtype". Only Unshaped implements it directly; Shaped
// and Concrete inherit it by embedding.
type arrayKind interface {
	arrayAval()
}

// IsArrayKind reports whether the descriptor is classified as an unshaped
// array or one of its specializations. A nil descriptor is not array-kind.
func IsArrayKind(av AbstractValue) bool {
	if av == nil {
		return false
	}
	_, ok := av.(arrayKind)
	return ok
}

// Unshaped describes a value that will produce an array-like result whose
// shape is not yet fixed.
type Unshaped struct {
	dtype dtypes.DType
	weak  bool
}

// NewUnshaped returns an Unshaped descriptor for the given dtype.
func NewUnshaped(dtype dtypes.DType, weakType bool) Unshaped {
	return Unshaped{dtype: dtype, weak: weakType}
}

func (u Unshaped) arrayAval() {}

// DType of the eventual result.
func (u Unshaped) DType() dtypes.DType { return u.dtype }

// WeakType reports whether the eventual result is weakly typed.
func (u Unshaped) WeakType() bool { return u.weak }

func (u Unshaped) String() string {
	if u.weak {
		return fmt.Sprintf("Unshaped(%s, weak)", u.dtype)
	}
	return fmt.Sprintf("Unshaped(%s)", u.dtype)
}

// Shaped describes a value that will produce an array-like result of a
// known shape.
type Shaped struct {
	Unshaped
	shape shapes.Shape
}

// NewShaped returns a Shaped descriptor for the given shape.
func NewShaped(shape shapes.Shape, weakType bool) Shaped {
	return Shaped{Unshaped: NewUnshaped(shape.DType, weakType), shape: shape.Clone()}
}

// Shape of the eventual result. It implements shapes.HasShape.
func (s Shaped) Shape() shapes.Shape { return s.shape }

func (s Shaped) String() string {
	if s.WeakType() {
		return fmt.Sprintf("Shaped(%s, weak)", s.shape)
	}
	return fmt.Sprintf("Shaped(%s)", s.shape)
}

// Concrete describes a value that is already materialized.
// Value holds the materialized array-like value; it is typed `any` here
// because the descriptor layer doesn't depend on any concrete array
// representation.
type Concrete struct {
	Shaped
	value any
}

// NewConcrete returns a Concrete descriptor wrapping a materialized value
// of the given shape.
func NewConcrete(shape shapes.Shape, weakType bool, value any) Concrete {
	return Concrete{Shaped: NewShaped(shape, weakType), value: value}
}

// Value returns the materialized value this descriptor wraps.
func (c Concrete) Value() any { return c.value }

func (c Concrete) String() string {
	return fmt.Sprintf("Concrete(%s)", c.Shape())
}

// Token is a non-array descriptor. It is used for values that order side
// effects through a computation and never materialize as arrays.
// IsArrayKind(Token{}) is false.
type Token struct{}

// DType returns dtypes.InvalidDType: tokens carry no element type.
func (Token) DType() dtypes.DType { return dtypes.InvalidDType }

// WeakType returns false: tokens are never weakly typed.
func (Token) WeakType() bool { return false }

func (Token) String() string { return "Token" }
