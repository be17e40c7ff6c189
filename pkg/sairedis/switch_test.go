package sairedis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func TestInitializeTransitionsToInitialized(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	require.Equal(t, StateInitialized, sw.State())
}

func TestInitializeRejectsUnknownMode(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	require.Error(t, sw.Initialize(context.Background(), "bogus"))
}

func TestReInitializeFlushesIndices(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	vid, err := sw.CreateVirtualRouter(ctx, nil)
	require.NoError(t, err)
	require.True(t, sw.lib.exists(sai.ObjectTypeVirtualRouter, vid))

	require.NoError(t, sw.Initialize(ctx, OpInitView))
	require.False(t, sw.lib.exists(sai.ObjectTypeVirtualRouter, vid))
}

func TestDiscoverDefaultsPopulatesAndIsIdempotent(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	cpuPort := sai.PackVID(sai.ObjectTypePort, 1)
	defaultVR := sai.PackVID(sai.ObjectTypeVirtualRouter, 1)

	daemon.setGetReply(func(m bus.Message) bus.Response {
		fields, err := attr.Serialize(sai.ObjectTypeSwitch, []sai.Attribute{
			{ID: attr.SwitchAttrCPUPort, Value: sai.Value{Type: sai.SerializationObjectID, OID: cpuPort}},
			{ID: attr.SwitchAttrDefaultVirtualRouterID, Value: sai.Value{Type: sai.SerializationObjectID, OID: defaultVR}},
		})
		require.NoError(t, err)
		return bus.Response{Status: sai.StatusSuccess.String(), Fields: fields}
	})

	require.NoError(t, sw.DiscoverDefaults(ctx))
	require.Equal(t, cpuPort, sw.lib.CPUPort)
	require.Equal(t, defaultVR, sw.lib.DefaultVR)

	require.NoError(t, sw.DiscoverDefaults(ctx))
	require.Equal(t, cpuPort, sw.lib.CPUPort)
}

func TestDiscoverDefaultsRejectsMismatchOnRediscovery(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	cpuPort := sai.PackVID(sai.ObjectTypePort, 1)
	daemon.setGetReply(func(m bus.Message) bus.Response {
		fields, _ := attr.Serialize(sai.ObjectTypeSwitch, []sai.Attribute{
			{ID: attr.SwitchAttrCPUPort, Value: sai.Value{Type: sai.SerializationObjectID, OID: cpuPort}},
		})
		return bus.Response{Status: sai.StatusSuccess.String(), Fields: fields}
	})
	require.NoError(t, sw.DiscoverDefaults(ctx))

	otherPort := sai.PackVID(sai.ObjectTypePort, 2)
	daemon.setGetReply(func(m bus.Message) bus.Response {
		fields, _ := attr.Serialize(sai.ObjectTypeSwitch, []sai.Attribute{
			{ID: attr.SwitchAttrCPUPort, Value: sai.Value{Type: sai.SerializationObjectID, OID: otherPort}},
		})
		return bus.Response{Status: sai.StatusSuccess.String(), Fields: fields}
	})
	require.Error(t, sw.DiscoverDefaults(ctx))
}
