// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package setalg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/field"
)

func elem(v uint64) field.Element {
	var e field.Element
	e.SetUint64(v)
	return e
}

// TestExpandToPolyScenario2 matches spec.md scenario 2: {(1,2),(2,1),(3,1)}
// expands to coefficients [6, 17, 17, 7, 1] (low to high).
func TestExpandToPolyScenario2(t *testing.T) {
	ds := NewDigestSetFromEntries([]DigestSetEntry{
		{Key: elem(1), Count: 2},
		{Key: elem(2), Count: 1},
		{Key: elem(3), Count: 1},
	})

	p := ExpandToPoly(ds)
	require.Equal(t, 4, p.Degree())

	want := []uint64{6, 17, 17, 7, 1}
	for i, w := range want {
		var wantElem field.Element
		wantElem.SetUint64(w)
		require.True(t, p[i].Equal(&wantElem), "coefficient %d: got %v want %d", i, p[i], w)
	}
}

func TestExpandToPolyDegreeEqualsTotalMultiplicity(t *testing.T) {
	ds := NewDigestSetFromEntries([]DigestSetEntry{
		{Key: elem(10), Count: 3},
		{Key: elem(20), Count: 4},
		{Key: elem(30), Count: 5},
	})
	p := ExpandToPoly(ds)
	require.Equal(t, 12, p.Degree())
}

func TestDivModRoundTrip(t *testing.T) {
	// p = (x+1)(x+2)(x+3), d = (x+1); expect q = (x+2)(x+3), r = 0.
	p := Mul(Mul(linear(elem(1)), linear(elem(2))), linear(elem(3)))
	d := linear(elem(1))

	q, r := DivMod(p, d)
	require.Equal(t, -1, r.Degree())

	want := Mul(linear(elem(2)), linear(elem(3)))
	require.Equal(t, len(want), len(q))
	for i := range want {
		require.True(t, q[i].Equal(&want[i]))
	}
}
