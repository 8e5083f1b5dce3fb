// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package arrays

import (
	"reflect"

	"github.com/arraykit/arraykit/types/avals"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrNotImplemented is the base error for capability-set operations an
// implementer doesn't provide. See package arrays/unimplemented.
var ErrNotImplemented = errors.New("array operation not implemented")

// implementers is the process-wide registry of concrete types that declared
// conformance to the capability set.
//
// The registry is append-only and meant to be populated during package
// initialization, before concurrent classification calls begin; after that
// it is read-only, so reads are not synchronized. Don't register new
// implementers from concurrent goroutines past initialization.
var implementers = make(map[reflect.Type]bool)

// RegisterImplementer declares the dynamic type of example as a conforming
// implementer of the array capability set. A typed nil pointer works as an
// example: RegisterImplementer((*MyArray)(nil)).
//
// Registration is additive: once a type is registered it stays registered
// for the life of the process. Call it during package initialization -- see
// the registry ordering note above.
func RegisterImplementer(example any) {
	t := reflect.TypeOf(example)
	if t == nil {
		exceptions.Panicf("arrays.RegisterImplementer: cannot register an untyped nil")
	}
	implementers[t] = true
	klog.V(2).Infof("arrays: registered %s as an array capability-set implementer", t)
}

// NumImplementers returns how many concrete types registered as implementers.
func NumImplementers() int { return len(implementers) }

// IsArrayLike reports whether value conforms to the array capability set.
//
// Two categorically different kinds of values qualify:
//
//   - Deferred computation values, classified by the abstract value
//     descriptor they carry: if value implements AvalCarrier and its
//     descriptor is an unshaped array (or a specialization of it), it is
//     array-like even though its runtime type was never registered.
//   - Materialized arrays, classified nominally: their concrete type was
//     registered with RegisterImplementer.
//
// Descriptor inspection failures -- a missing descriptor, a nil descriptor,
// or a panic while reading it -- are never propagated: the value simply
// falls through to the nominal check.
//
// IsArrayLike is a pure predicate: no side effects, never panics.
func IsArrayLike(value any) bool {
	if av, ok := carriedAval(value); ok && avals.IsArrayKind(av) {
		return true
	}
	return implementers[reflect.TypeOf(value)]
}

// carriedAval reads the abstract value descriptor off a value, recovering
// from any panic during the read. ok is false if the value carries no
// usable descriptor.
func carriedAval(value any) (av avals.AbstractValue, ok bool) {
	carrier, isCarrier := value.(AvalCarrier)
	if !isCarrier {
		return nil, false
	}
	defer func() {
		if recover() != nil {
			av, ok = nil, false
		}
	}()
	av = carrier.Aval()
	return av, av != nil
}

// New always fails: the array capability set is a contract, not a value,
// and cannot be instantiated directly. Use a concrete implementation
// factory instead, e.g. dense.FromValue or dense.FromShape.
func New(args ...any) Array {
	exceptions.Panicf("arrays.Array cannot be instantiated directly (called with %d arguments): "+
		"use a concrete implementation factory such as dense.FromValue or dense.FromShape", len(args))
	return nil
}
