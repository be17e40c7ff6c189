package sai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackVIDRoundTrip(t *testing.T) {
	cases := []struct {
		kind    ObjectType
		counter uint64
	}{
		{ObjectTypePort, 1},
		{ObjectTypeNextHop, 0},
		{ObjectTypeVirtualRouter, 0xffffffffffff},
		{ObjectTypeLAG, 42},
	}

	for _, c := range cases {
		vid := PackVID(c.kind, c.counter)
		require.Equal(t, c.kind, vid.TypeOf(), "kind for %+v", c)
		require.Equal(t, c.counter, vid.CounterOf(), "counter for %+v", c)
	}
}

func TestObjectIDStringRoundTrip(t *testing.T) {
	vid := PackVID(ObjectTypeRouterInterface, 7)
	parsed, err := ParseObjectID(vid.String())
	require.NoError(t, err)
	require.Equal(t, vid, parsed)
}

func TestNullObjectID(t *testing.T) {
	require.True(t, NullObjectID.IsNull())
	require.False(t, PackVID(ObjectTypePort, 1).IsNull())
}
