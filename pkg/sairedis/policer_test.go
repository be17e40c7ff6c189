package sairedis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func TestCreatePolicerTrTCMRequiresPIR(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	_, err := sw.CreatePolicer(context.Background(), []sai.Attribute{
		{ID: attr.PolicerAttrMeterType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.PolicerMeterTypeBytes}},
		{ID: attr.PolicerAttrMode, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.PolicerModeTrTCM}},
	})
	require.Equal(t, sai.StatusMandatoryAttributeMissing, err)
}

func TestCreatePolicerSrTCMNeedsNoPIR(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	vid, err := sw.CreatePolicer(context.Background(), []sai.Attribute{
		{ID: attr.PolicerAttrMeterType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.PolicerMeterTypePackets}},
		{ID: attr.PolicerAttrMode, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.PolicerModeSrTCM}},
	})
	require.NoError(t, err)
	require.NotZero(t, vid)
}

func TestRemovePolicerRefusesWhileReferencedByTrapGroup(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	policer, err := sw.CreatePolicer(ctx, []sai.Attribute{
		{ID: attr.PolicerAttrMeterType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.PolicerMeterTypePackets}},
		{ID: attr.PolicerAttrMode, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.PolicerModeSrTCM}},
	})
	require.NoError(t, err)

	_, err = sw.CreateTrapGroup(ctx, []sai.Attribute{
		{ID: attr.TrapGroupAttrPolicer, Value: sai.Value{Type: sai.SerializationObjectID, OID: policer}},
	})
	require.NoError(t, err)

	require.Equal(t, sai.StatusInvalidParameter, sw.RemovePolicer(ctx, policer))
}
