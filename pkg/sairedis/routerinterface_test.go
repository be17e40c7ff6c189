package sairedis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func TestCreateRouterInterfacePortRequiresPortID(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	vr, err := sw.CreateVirtualRouter(ctx, nil)
	require.NoError(t, err)

	_, err = sw.CreateRouterInterface(ctx, []sai.Attribute{
		{ID: attr.RouterInterfaceAttrVirtualRouterID, Value: sai.Value{Type: sai.SerializationObjectID, OID: vr}},
		{ID: attr.RouterInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.RouterInterfaceTypePort}},
	})
	require.Equal(t, sai.StatusMandatoryAttributeMissing, err)
}

func TestCreateRouterInterfaceLoopbackNeedsNoSubAttrs(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	vr, err := sw.CreateVirtualRouter(ctx, nil)
	require.NoError(t, err)

	rif, err := sw.CreateRouterInterface(ctx, []sai.Attribute{
		{ID: attr.RouterInterfaceAttrVirtualRouterID, Value: sai.Value{Type: sai.SerializationObjectID, OID: vr}},
		{ID: attr.RouterInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.RouterInterfaceTypeLoopback}},
	})
	require.NoError(t, err)
	require.True(t, sw.lib.Refs.InUse(vr))

	require.Equal(t, sai.StatusInvalidParameter, sw.RemoveVirtualRouter(ctx, vr))

	require.NoError(t, sw.RemoveRouterInterface(ctx, rif))
	require.False(t, sw.lib.Refs.InUse(vr))
}

func TestCreateRouterInterfaceRejectsUnknownVirtualRouter(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	_, err := sw.CreateRouterInterface(context.Background(), []sai.Attribute{
		{ID: attr.RouterInterfaceAttrVirtualRouterID, Value: sai.Value{Type: sai.SerializationObjectID, OID: sai.PackVID(sai.ObjectTypeVirtualRouter, 999)}},
		{ID: attr.RouterInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.RouterInterfaceTypeLoopback}},
	})
	require.Equal(t, sai.StatusInvalidParameter, err)
}
