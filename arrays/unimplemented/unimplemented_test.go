// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package unimplemented

import (
	"testing"

	"github.com/arraykit/arraykit/arrays"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEveryOperationPanicsWithErrNotImplemented(t *testing.T) {
	var a arrays.Array = Array{}
	for name, op := range map[string]func(){
		"Shape":   func() { a.Shape() },
		"Get":     func() { a.Get(0) },
		"Add":     func() { a.Add(nil) },
		"RSub":    func() { a.RSub(nil) },
		"Sum":     func() { a.Sum() },
		"Reshape": func() { a.Reshape(2, 2) },
		"AsType":  func() { a.AsType(0) },
		"At":      func() { a.At(0) },
		"Aval":    func() { a.Aval() },
	} {
		func() {
			defer func() {
				exception := recover()
				require.NotNilf(t, exception, "operation %s didn't panic", name)
				err, ok := exception.(error)
				require.Truef(t, ok, "operation %s panicked with a non-error: %v", name, exception)
				require.Truef(t, errors.Is(err, arrays.ErrNotImplemented),
					"operation %s panicked with an unexpected error: %v", name, err)
			}()
			op()
		}()
	}
}

// A partial implementer only needs to override what it supports.
type lengthOnly struct {
	Array
	n int
}

func (l lengthOnly) Len() int { return l.n }

func TestEmbeddingOverrides(t *testing.T) {
	var a arrays.Array = lengthOnly{n: 7}
	require.Equal(t, 7, a.Len())
	require.Panics(t, func() { a.Rank() })
}
