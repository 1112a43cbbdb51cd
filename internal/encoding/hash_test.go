package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdxHashKnownValues(t *testing.T) {
	cases := map[int64]uint32{
		0:  0,
		1:  824515495,
		2:  1722258072,
		42: 4147366645,
		-1: 539527247,
	}
	for in, expect := range cases {
		assert.Equal(t, expect, IdxHash(in), "index %d", in)
	}
}

func TestHashIndicesWraps(t *testing.T) {
	require.Equal(t, uint32(2153338743), HashIndices(7, 1, 2, 3))
	require.NotEqual(t, HashIndices(7, 1, 2, 3), HashIndices(8, 1, 2, 3))
}

func TestRandRanges(t *testing.T) {
	for _, x := range []uint32{0, 1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF, IdxHash(99)} {
		r := Rand1(x)
		require.True(t, r >= -1 && r < 1, "rand1 %v", r)

		v2 := Rand2(x)
		require.True(t, v2.X >= -1 && v2.X < 1)
		require.True(t, v2.Y >= -1 && v2.Y < 1)

		v3 := Rand3(x)
		require.True(t, v3.X >= -1 && v3.X < 1)
		require.True(t, v3.Y >= -1 && v3.Y < 1)
		require.True(t, v3.Z >= -1 && v3.Z < 1)
	}

	require.Equal(t, -1.0, Rand1(0))
	require.Equal(t, 0.0, Rand1(0x80000000))

	v := Rand2(0x80000000)
	require.Equal(t, -1.0, v.X)
	require.Equal(t, 0.0, v.Y)
}

func TestSplitMerge(t *testing.T) {
	hi, lo := Split32(0xDEADBEEF)
	require.Equal(t, uint16(0xDEAD), hi)
	require.Equal(t, uint16(0xBEEF), lo)
	require.Equal(t, uint32(0xDEADBEEF), Merge16(hi, lo))
	require.Equal(t, uint32(0x3FF), Bits(0xFFFFFFFF, 11, 10))
	require.Equal(t, uint32(0x5), Bits(0x50, 4, 4))
}
