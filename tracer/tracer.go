// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

// Package tracer defines Tracer, the placeholder value standing in for the
// not-yet-materialized result of a deferred computation.
//
// A Tracer is not an array: it holds no elements and its type is unrelated
// to any concrete array representation, so it cannot be registered as a
// capability-set implementer. What it does carry is an abstract value
// descriptor (see package types/avals) classifying the result it will
// eventually produce. arrays.IsArrayLike inspects that descriptor, so
// tracers whose descriptor is an unshaped array (or a specialization)
// classify as array-like.
//
// The machinery that creates tracers and materializes their results -- the
// tracing and compilation pipeline -- lives outside this module.
package tracer

import (
	"fmt"

	"github.com/arraykit/arraykit/arrays"
	"github.com/arraykit/arraykit/types/avals"
	"github.com/google/uuid"
)

// Tracer is a deferred computation value. Create it with New.
type Tracer struct {
	id   uuid.UUID
	aval avals.AbstractValue
}

var _ arrays.AvalCarrier = (*Tracer)(nil)

// New returns a Tracer carrying the given abstract value descriptor.
func New(aval avals.AbstractValue) *Tracer {
	return &Tracer{id: uuid.New(), aval: aval}
}

// ID uniquely identifies this tracer within the process, for logging and
// debugging of traced computations.
func (t *Tracer) ID() uuid.UUID { return t.id }

// Aval returns the abstract value descriptor of the eventual result.
func (t *Tracer) Aval() avals.AbstractValue { return t.aval }

// String implements fmt.Stringer.
func (t *Tracer) String() string {
	if t.aval == nil {
		return fmt.Sprintf("Tracer<%s>(?)", shortID(t.id))
	}
	return fmt.Sprintf("Tracer<%s>(%s)", shortID(t.id), t.aval)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
