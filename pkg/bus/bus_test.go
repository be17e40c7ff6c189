package bus_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/bus"
)

type memStore struct {
	scalars map[string]string
	hashes  map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		scalars: make(map[string]string),
		hashes:  make(map[string]map[string]string),
	}
}

func (m *memStore) HGet(_ context.Context, hash, field string) (string, bool, error) {
	h, ok := m.hashes[hash]
	if !ok {
		return "", false, nil
	}
	v, ok := h[field]
	return v, ok, nil
}

func (m *memStore) HSet(_ context.Context, hash, field, value string) error {
	h, ok := m.hashes[hash]
	if !ok {
		h = make(map[string]string)
		m.hashes[hash] = h
	}
	h[field] = value
	return nil
}

func (m *memStore) HDel(_ context.Context, hash, field string) error {
	if h, ok := m.hashes[hash]; ok {
		delete(h, field)
	}
	return nil
}

func (m *memStore) HLen(_ context.Context, hash string) (int, error) {
	return len(m.hashes[hash]), nil
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.scalars[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.scalars[key] = value
	return nil
}

func (m *memStore) Incr(_ context.Context, key string) (uint64, error) {
	var cur uint64
	if v, ok := m.scalars[key]; ok {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		cur = parsed
	}
	cur++
	m.scalars[key] = strconv.FormatUint(cur, 10)
	return cur, nil
}

func (m *memStore) Close() error { return nil }

func TestQueuePushPop(t *testing.T) {
	q := bus.NewQueue[int](2)
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, 1))
	require.NoError(t, q.Push(ctx, 2))

	v, ok, err := q.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestQueueCloseDrainsThenReportsClosed(t *testing.T) {
	q := bus.NewQueue[int](2)
	ctx := context.Background()
	require.NoError(t, q.Push(ctx, 7))
	q.Close()

	v, ok, err := q.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 7, v)

	_, ok, err = q.Pop(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSelectReadyReceivesValue(t *testing.T) {
	q := bus.NewQueue[string](1)
	shutdown := bus.NewShutdownToken()
	require.NoError(t, q.Push(context.Background(), "hello"))

	result, index, value := bus.Select([]any{q.C()}, shutdown, time.Second)
	require.Equal(t, bus.SelectReady, result)
	require.Equal(t, 0, index)
	require.Equal(t, "hello", value)
}

func TestSelectShutdown(t *testing.T) {
	q := bus.NewQueue[string](1)
	shutdown := bus.NewShutdownToken()
	shutdown.Fire()

	result, _, _ := bus.Select([]any{q.C()}, shutdown, time.Second)
	require.Equal(t, bus.SelectShutdown, result)
}

func TestSelectTimeout(t *testing.T) {
	q := bus.NewQueue[string](1)
	shutdown := bus.NewShutdownToken()

	result, _, _ := bus.Select([]any{q.C()}, shutdown, 10*time.Millisecond)
	require.Equal(t, bus.SelectTimeout, result)
}

func TestBusNotifyRoundTrip(t *testing.T) {
	b := bus.New(newMemStore(), nil)
	ctx := context.Background()

	require.NoError(t, b.PushNotify(ctx, bus.Notification{ID: "1", Op: bus.EventFDB, Data: "x"}))

	n, ok, err := b.Notify.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, bus.EventFDB, n.Op)
}

func TestStoreIncrAllocatesSequentialCounters(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	first, err := store.Incr(ctx, bus.KeyVIDCounter)
	require.NoError(t, err)
	require.Equal(t, uint64(1), first)

	second, err := store.Incr(ctx, bus.KeyVIDCounter)
	require.NoError(t, err)
	require.Equal(t, uint64(2), second)
}

func TestStoreHashRoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	require.NoError(t, store.HSet(ctx, bus.HashVIDToRID, "0x1000000000001", "oid:0x1"))

	v, ok, err := store.HGet(ctx, bus.HashVIDToRID, "0x1000000000001")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "oid:0x1", v)

	n, err := store.HLen(ctx, bus.HashVIDToRID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, store.HDel(ctx, bus.HashVIDToRID, "0x1000000000001"))
	_, ok, err = store.HGet(ctx, bus.HashVIDToRID, "0x1000000000001")
	require.NoError(t, err)
	require.False(t, ok)
}
