// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chainbuild

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRawObjectsFromString(t *testing.T) {
	input := "1\t[1,2]\t{a,b}\n2 [ 3, 4 ] { c, d, }\n2\t[ 5, 6 ]\t { e }\n"

	got, err := LoadRawObjectsFromString(input)
	require.NoError(t, err)

	require.Len(t, got[1], 1)
	require.Equal(t, []uint32{1, 2}, got[1][0].VData)
	require.Equal(t, []string{"a", "b"}, got[1][0].WData)

	require.Len(t, got[2], 2)
	require.Equal(t, []uint32{3, 4}, got[2][0].VData)
	require.Equal(t, []string{"c", "d"}, got[2][0].WData)
	require.Equal(t, []uint32{5, 6}, got[2][1].VData)
	require.Equal(t, []string{"e"}, got[2][1].WData)
}

func TestLoadRawObjectsSkipsBlankLines(t *testing.T) {
	got, err := LoadRawObjectsFromString("\n\n0 [] {}\n\n")
	require.NoError(t, err)
	require.Len(t, got[0], 1)
	require.Empty(t, got[0][0].VData)
	require.Empty(t, got[0][0].WData)
}

func TestLoadRawObjectsRejectsMalformedLine(t *testing.T) {
	_, err := LoadRawObjectsFromString("not a valid line")
	require.Error(t, err)
}

func TestLoadRawObjectsRejectsBadInteger(t *testing.T) {
	_, err := LoadRawObjectsFromString("1 [x,2] {a}")
	require.Error(t, err)
}
