package sairedis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
)

func TestRefCounterHoldReleaseCycle(t *testing.T) {
	r := NewRefCounter()
	target := sai.ObjectID(42)

	require.False(t, r.InUse(target))
	r.Hold(target)
	r.Hold(target)
	require.Equal(t, 2, r.Count(target))
	require.True(t, r.InUse(target))

	r.Release(target)
	require.True(t, r.InUse(target))
	r.Release(target)
	require.False(t, r.InUse(target))
	require.Zero(t, r.Count(target))
}

func TestRefCounterIgnoresNullTarget(t *testing.T) {
	r := NewRefCounter()
	r.Hold(sai.NullObjectID)
	require.False(t, r.InUse(sai.NullObjectID))
	r.Release(sai.NullObjectID)
}

func TestRefCounterReleaseBelowZeroIsNoOp(t *testing.T) {
	r := NewRefCounter()
	target := sai.ObjectID(7)
	r.Release(target)
	require.False(t, r.InUse(target))
}
