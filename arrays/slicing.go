// Copyright 2026 The ArrayKit Authors. SPDX-License-Identifier: Apache-2.0

package arrays

// SliceSpec specifies the range and stride of one axis in Array.Slice.
//
// Full means include the whole axis (Start/End are ignored), and NoEnd means
// from Start to the full dimension of the axis. Negative Start/End count
// from the end of the axis.
//
// Use AxisRange or AxisElem to construct SliceSpec values.
type SliceSpec struct {
	Start, End, StrideValue int
	Full, NoEnd             bool
}

// Stride returns a copy of the SliceSpec with the stride set. The stride
// must be positive.
func (spec SliceSpec) Stride(stride int) SliceSpec {
	spec2 := spec
	spec2.StrideValue = stride
	return spec2
}

// AxisRange defines a range for one axis to include in Slice:
//
//   - AxisRange(): the full axis.
//   - AxisRange(start): from start to the end of the axis.
//   - AxisRange(start, end): from start to end (exclusive).
//   - AxisRange(start, end, stride): from start to end, taking every
//     stride-th element.
//
// Use the Stride method to set a stride on any other form.
func AxisRange(indices ...int) SliceSpec {
	switch len(indices) {
	case 0:
		return SliceSpec{Full: true}
	case 1:
		return SliceSpec{Start: indices[0], NoEnd: true}
	case 2:
		return SliceSpec{Start: indices[0], End: indices[1]}
	}
	return SliceSpec{Start: indices[0], End: indices[1], StrideValue: indices[2]}
}

// AxisRangeToEnd defines the range from the given value to the end of the axis.
func AxisRangeToEnd(from int) SliceSpec {
	return SliceSpec{Start: from, NoEnd: true}
}

// AxisRangeFromStart defines the range from the start of the axis to the
// given value (exclusive).
func AxisRangeFromStart(to int) SliceSpec {
	return SliceSpec{End: to}
}

// AxisElem selects a single element of an axis. The axis is kept in the
// result with dimension 1; use Squeeze to drop it.
func AxisElem(index int) SliceSpec {
	return SliceSpec{Start: index, End: index + 1}
}

// SearchSide selects which insertion index SearchSorted returns when values
// compare equal.
type SearchSide int

const (
	// SearchLeft returns the leftmost valid insertion index.
	SearchLeft SearchSide = iota
	// SearchRight returns the rightmost valid insertion index.
	SearchRight
)

// String implements fmt.Stringer.
func (s SearchSide) String() string {
	switch s {
	case SearchLeft:
		return "SearchLeft"
	case SearchRight:
		return "SearchRight"
	}
	return "SearchSide(invalid)"
}
