package sairedis

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func testFDBKey() sai.FDBEntry {
	mac, _ := net.ParseMAC("aa:bb:cc:dd:ee:ff")
	return sai.FDBEntry{MAC: mac, Vlan: sai.DefaultVlanID}
}

func TestCreateFDBEntryRequiresPort(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	require.Equal(t, sai.StatusMandatoryAttributeMissing, sw.CreateFDBEntry(context.Background(), testFDBKey(), nil))
}

func TestCreateFDBEntryRejectsDuplicateAndHoldsPortRef(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	port := mustVID(t, sai.ObjectTypePort, sw)
	key := testFDBKey()
	attrs := []sai.Attribute{{ID: attr.FDBEntryAttrPortID, Value: sai.Value{Type: sai.SerializationObjectID, OID: port}}}

	require.NoError(t, sw.CreateFDBEntry(ctx, key, attrs))
	require.True(t, sw.lib.Refs.InUse(port))
	require.Equal(t, sai.StatusItemAlreadyExists, sw.CreateFDBEntry(ctx, key, attrs))

	require.NoError(t, sw.RemoveFDBEntry(ctx, key))
	require.False(t, sw.lib.Refs.InUse(port))
}

func TestCreateFDBEntryRejectsNonPortKind(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	vr := mustVID(t, sai.ObjectTypeVirtualRouter, sw)
	attrs := []sai.Attribute{{ID: attr.FDBEntryAttrPortID, Value: sai.Value{Type: sai.SerializationObjectID, OID: vr}}}
	require.Equal(t, sai.StatusInvalidParameter, sw.CreateFDBEntry(context.Background(), testFDBKey(), attrs))
}
