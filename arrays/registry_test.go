// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package arrays

import (
	"testing"

	"github.com/arraykit/arraykit/types/avals"
	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hostArray stands in for a registered concrete array type. It doesn't
// implement the capability set: nominal registration is all the classifier
// looks at.
type hostArray struct{}

// remoteHandle is neither registered nor a descriptor carrier.
type remoteHandle struct{}

// tracedPlaceholder carries an abstract value descriptor, like a deferred
// computation value. Its type is never registered.
type tracedPlaceholder struct {
	aval avals.AbstractValue
}

func (t tracedPlaceholder) Aval() avals.AbstractValue { return t.aval }

// brokenCarrier panics when its descriptor is read.
type brokenCarrier struct{}

func (brokenCarrier) Aval() avals.AbstractValue { panic("descriptor storage corrupted") }

// registeredBrokenCarrier panics on descriptor read but its type is
// registered: the classifier must fall through to the nominal check.
type registeredBrokenCarrier struct{}

func (registeredBrokenCarrier) Aval() avals.AbstractValue { panic("no descriptor here") }

// nilCarrier returns a nil descriptor.
type nilCarrier struct{}

func (nilCarrier) Aval() avals.AbstractValue { return nil }

func TestIsArrayLikeNominal(t *testing.T) {
	RegisterImplementer(hostArray{})
	assert.True(t, IsArrayLike(hostArray{}))
	assert.False(t, IsArrayLike(remoteHandle{}))
	assert.False(t, IsArrayLike(42))
	assert.False(t, IsArrayLike("array"))
	assert.False(t, IsArrayLike(nil))
}

func TestIsArrayLikeDescriptor(t *testing.T) {
	unshaped := tracedPlaceholder{aval: avals.NewUnshaped(dtypes.Float32, false)}
	assert.True(t, IsArrayLike(unshaped), "unshaped-array descriptor qualifies even though the type is unregistered")

	// Specializations of the unshaped-array descriptor qualify too.
	shaped := tracedPlaceholder{aval: avals.NewShaped(shapes.Make(dtypes.Float32, 2, 3), false)}
	assert.True(t, IsArrayLike(shaped))

	// A non-array descriptor doesn't qualify, and the type is unregistered.
	token := tracedPlaceholder{aval: avals.Token{}}
	assert.False(t, IsArrayLike(token))
}

func TestIsArrayLikeDescriptorFailures(t *testing.T) {
	// A panic while reading the descriptor is swallowed; the nominal check
	// decides.
	require.NotPanics(t, func() { IsArrayLike(brokenCarrier{}) })
	assert.False(t, IsArrayLike(brokenCarrier{}))

	RegisterImplementer(registeredBrokenCarrier{})
	assert.True(t, IsArrayLike(registeredBrokenCarrier{}))

	// A nil descriptor counts as absent.
	assert.False(t, IsArrayLike(nilCarrier{}))
}

func TestRegistrationIsMonotonic(t *testing.T) {
	type lateArray struct{}
	assert.False(t, IsArrayLike(lateArray{}))
	before := NumImplementers()
	RegisterImplementer(lateArray{})
	assert.True(t, IsArrayLike(lateArray{}))
	assert.Equal(t, before+1, NumImplementers())

	// Re-registering is a no-op, not an error.
	RegisterImplementer(lateArray{})
	assert.True(t, IsArrayLike(lateArray{}))
	assert.Equal(t, before+1, NumImplementers())
}

func TestRegisterImplementerNilPanics(t *testing.T) {
	exception := exceptions.Try(func() { RegisterImplementer(nil) })
	require.NotNil(t, exception)
}

func TestNewAlwaysFails(t *testing.T) {
	for _, args := range [][]any{nil, {1}, {"shape", dtypes.Float32, nil}} {
		exception := exceptions.Try(func() { New(args...) })
		require.NotNil(t, exception)
		require.Contains(t, errorMessage(exception), "cannot be instantiated directly")
	}
}

func errorMessage(exception any) string {
	if err, ok := exception.(error); ok {
		return err.Error()
	}
	return ""
}
