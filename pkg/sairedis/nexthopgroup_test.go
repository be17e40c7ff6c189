package sairedis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func TestCreateNextHopGroupRejectsDuplicateMembers(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	nh := mustVID(t, sai.ObjectTypeNextHop, sw)

	_, err := sw.CreateNextHopGroup(context.Background(), []sai.Attribute{
		{ID: attr.NextHopGroupAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.NextHopGroupTypeECMP}},
		{ID: attr.NextHopGroupAttrNextHopList, Value: sai.Value{Type: sai.SerializationObjectList, OIDs: []sai.ObjectID{nh, nh}}},
	})
	require.Equal(t, sai.StatusInvalidParameter, err)
}

func TestCreateNextHopGroupRejectsEmptyList(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	_, err := sw.CreateNextHopGroup(context.Background(), []sai.Attribute{
		{ID: attr.NextHopGroupAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.NextHopGroupTypeECMP}},
		{ID: attr.NextHopGroupAttrNextHopList, Value: sai.Value{Type: sai.SerializationObjectList}},
	})
	require.Equal(t, sai.StatusInvalidParameter, err)
}

func TestCreateNextHopGroupHoldsRefOnEachMember(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	nh1 := mustVID(t, sai.ObjectTypeNextHop, sw)
	nh2 := mustVID(t, sai.ObjectTypeNextHop, sw)

	_, err := sw.CreateNextHopGroup(context.Background(), []sai.Attribute{
		{ID: attr.NextHopGroupAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.NextHopGroupTypeECMP}},
		{ID: attr.NextHopGroupAttrNextHopList, Value: sai.Value{Type: sai.SerializationObjectList, OIDs: []sai.ObjectID{nh1, nh2}}},
	})
	require.NoError(t, err)
	require.True(t, sw.lib.Refs.InUse(nh1))
	require.True(t, sw.lib.Refs.InUse(nh2))
}
