package sairedis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func TestNotifyWorkerRewritesRIDToVID(t *testing.T) {
	sw, daemon := newTestSwitch()
	defer daemon.close()
	ctx := context.Background()

	port := mustVID(t, sai.ObjectTypePort, sw)
	rid := sai.RealID(0xbeef)
	require.NoError(t, sw.lib.Trans.Bind(ctx, port, rid))

	received := make(chan []sai.Attribute, 1)
	sw.notify.Handle(bus.EventFDB, func(n bus.Notification, rewritten []sai.Attribute) {
		received <- rewritten
	})

	fields, err := attr.Serialize(sai.ObjectTypeFDBEntry, []sai.Attribute{
		{ID: attr.FDBEntryAttrPortID, Value: sai.Value{Type: sai.SerializationObjectID, OID: sai.ObjectID(rid)}},
	})
	require.NoError(t, err)

	require.NoError(t, sw.lib.Bus.PushNotify(ctx, bus.Notification{
		ID: "n1", Op: bus.EventFDB, Fields: fields,
	}))

	select {
	case got := <-received:
		require.Len(t, got, 1)
		require.Equal(t, port, got[0].Value.OID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
	}
}
