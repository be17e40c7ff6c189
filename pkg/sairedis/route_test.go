package sairedis

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func testRouteKey(vr sai.ObjectID) sai.RouteEntry {
	return sai.RouteEntry{
		VRID:   vr,
		Prefix: net.ParseIP("10.0.0.0"),
		Mask:   net.ParseIP("255.255.255.0"),
	}
}

func TestCreateRouteEntryRejectsDuplicateKey(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	vr, err := sw.CreateVirtualRouter(ctx, nil)
	require.NoError(t, err)
	key := testRouteKey(vr)

	require.NoError(t, sw.CreateRouteEntry(ctx, key, nil))
	require.Equal(t, sai.StatusItemAlreadyExists, sw.CreateRouteEntry(ctx, key, nil))
}

func TestCreateRouteEntryRejectsUnknownVirtualRouter(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	key := testRouteKey(sai.PackVID(sai.ObjectTypeVirtualRouter, 777))
	require.Equal(t, sai.StatusInvalidParameter, sw.CreateRouteEntry(context.Background(), key, nil))
}

func TestRouteEntryNextHopRefBookkeeping(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	vr, err := sw.CreateVirtualRouter(ctx, nil)
	require.NoError(t, err)
	nh1 := mustVID(t, sai.ObjectTypeNextHop, sw)
	nh2 := mustVID(t, sai.ObjectTypeNextHop, sw)
	key := testRouteKey(vr)

	require.NoError(t, sw.CreateRouteEntry(ctx, key, []sai.Attribute{
		{ID: attr.RouteEntryAttrNextHopID, Value: sai.Value{Type: sai.SerializationObjectID, OID: nh1}},
	}))
	require.True(t, sw.lib.Refs.InUse(nh1))

	require.NoError(t, sw.SetRouteEntryAttribute(ctx, key, sai.Attribute{
		ID: attr.RouteEntryAttrNextHopID, Value: sai.Value{Type: sai.SerializationObjectID, OID: nh2},
	}))
	require.False(t, sw.lib.Refs.InUse(nh1))
	require.True(t, sw.lib.Refs.InUse(nh2))

	require.NoError(t, sw.RemoveRouteEntry(ctx, key))
	require.False(t, sw.lib.Refs.InUse(nh2))
}

func TestRemoveRouteEntryRefusesUnknownKey(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	key := testRouteKey(sai.PackVID(sai.ObjectTypeVirtualRouter, 1))
	require.Equal(t, sai.StatusInvalidParameter, sw.RemoveRouteEntry(context.Background(), key))
}
