// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package avals

import (
	"testing"

	"github.com/arraykit/arraykit/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestIsArrayKind(t *testing.T) {
	unshaped := NewUnshaped(dtypes.Float32, false)
	require.True(t, IsArrayKind(unshaped))

	// Specializations inherit the array-kind classification by embedding.
	shaped := NewShaped(shapes.Make(dtypes.Float32, 2, 3), false)
	require.True(t, IsArrayKind(shaped))

	concrete := NewConcrete(shapes.Make(dtypes.Int64), true, int64(7))
	require.True(t, IsArrayKind(concrete))

	require.False(t, IsArrayKind(Token{}))
	require.False(t, IsArrayKind(nil))
}

func TestDescriptors(t *testing.T) {
	unshaped := NewUnshaped(dtypes.Float64, true)
	require.Equal(t, dtypes.Float64, unshaped.DType())
	require.True(t, unshaped.WeakType())
	require.Equal(t, "Unshaped(Float64, weak)", unshaped.String())

	shape := shapes.Make(dtypes.Int32, 4)
	shaped := NewShaped(shape, false)
	require.Equal(t, dtypes.Int32, shaped.DType())
	require.True(t, shaped.Shape().Equal(shape))

	concrete := NewConcrete(shape, false, []int32{1, 2, 3, 4})
	require.Equal(t, []int32{1, 2, 3, 4}, concrete.Value())
	require.Equal(t, dtypes.Int32, concrete.DType())

	token := Token{}
	require.Equal(t, dtypes.InvalidDType, token.DType())
	require.False(t, token.WeakType())
}
