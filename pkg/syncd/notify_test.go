package syncd_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/syncd"
	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

func TestRunNotifyRelaysRecognizedEvent(t *testing.T) {
	store := newMemStore()
	b := bus.New(store, nil)
	trans := translation.New(store)
	fake := vendor.NewFake()
	d := syncd.NewDispatcher(b, trans, fake, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go d.RunNotify(ctx)

	fake.Emit(vendor.Event{Name: bus.EventPortStateChange, Kind: sai.ObjectTypePort, Data: "1"})

	n, ok, err := b.Notify.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, bus.EventPortStateChange, n.Op)
	require.Equal(t, "1", n.Data)
	require.NotEmpty(t, n.ID, "PushNotify must assign a uuid when ID is empty")
}

func TestRunNotifyDropsUnrecognizedEventKind(t *testing.T) {
	store := newMemStore()
	b := bus.New(store, nil)
	trans := translation.New(store)
	fake := vendor.NewFake()
	d := syncd.NewDispatcher(b, trans, fake, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go d.RunNotify(ctx)

	fake.Emit(vendor.Event{Name: "not_a_real_event"})
	fake.Emit(vendor.Event{Name: bus.EventFDB, Kind: sai.ObjectTypeFDBEntry})

	n, ok, err := b.Notify.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, bus.EventFDB, n.Op, "the unrecognized event must be dropped, not queued ahead of the real one")
}
