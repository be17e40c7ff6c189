package sairedis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func TestCreateHostInterfaceFDRejectsEmptyName(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	_, err := sw.CreateHostInterface(context.Background(), []sai.Attribute{
		{ID: attr.HostInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.HostInterfaceTypeFD}},
		{ID: attr.HostInterfaceAttrName, Value: sai.Value{Type: sai.SerializationCharArray, Chars: ""}},
	})
	require.Equal(t, sai.StatusInvalidParameter, err)
}

func TestCreateHostInterfaceFDRejectsOversizedName(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	_, err := sw.CreateHostInterface(context.Background(), []sai.Attribute{
		{ID: attr.HostInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.HostInterfaceTypeFD}},
		{ID: attr.HostInterfaceAttrName, Value: sai.Value{Type: sai.SerializationCharArray, Chars: strings.Repeat("a", hostInterfaceNameSize)}},
	})
	require.Equal(t, sai.StatusInvalidParameter, err)
}

func TestCreateHostInterfaceFDRejectsNonPrintable(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	_, err := sw.CreateHostInterface(context.Background(), []sai.Attribute{
		{ID: attr.HostInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.HostInterfaceTypeFD}},
		{ID: attr.HostInterfaceAttrName, Value: sai.Value{Type: sai.SerializationCharArray, Chars: "eth\x010"}},
	})
	require.Equal(t, sai.StatusInvalidParameter, err)
}

func TestCreateHostInterfaceFDAcceptsValidName(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	vid, err := sw.CreateHostInterface(context.Background(), []sai.Attribute{
		{ID: attr.HostInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.HostInterfaceTypeFD}},
		{ID: attr.HostInterfaceAttrName, Value: sai.Value{Type: sai.SerializationCharArray, Chars: "eth0"}},
	})
	require.NoError(t, err)
	require.NotZero(t, vid)
}

func TestCreateHostInterfaceNetdevRequiresExistingTarget(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()

	_, err := sw.CreateHostInterface(context.Background(), []sai.Attribute{
		{ID: attr.HostInterfaceAttrType, Value: sai.Value{Type: sai.SerializationInt32, S32: attr.HostInterfaceTypeNetdev}},
		{ID: attr.HostInterfaceAttrRifOrPortID, Value: sai.Value{Type: sai.SerializationObjectID, OID: sai.PackVID(sai.ObjectTypePort, 999)}},
	})
	require.Equal(t, sai.StatusInvalidParameter, err)
}
