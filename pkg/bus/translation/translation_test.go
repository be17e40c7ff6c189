package translation_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/sai"
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

func TestNextVIDEncodesKind(t *testing.T) {
	store := translation.New(newMemStore())
	ctx := context.Background()

	vid, err := store.NextVID(ctx, sai.ObjectTypeRouteEntry)
	require.NoError(t, err)
	require.Equal(t, sai.ObjectTypeRouteEntry, vid.TypeOf())

	vid2, err := store.NextVID(ctx, sai.ObjectTypeRouteEntry)
	require.NoError(t, err)
	require.Equal(t, vid.CounterOf()+1, vid2.CounterOf())
}

func TestBindIsMutualInverse(t *testing.T) {
	store := translation.New(newMemStore())
	ctx := context.Background()

	vid, err := store.NextVID(ctx, sai.ObjectTypeNextHop)
	require.NoError(t, err)
	rid := sai.RealID(0xABCD)

	require.NoError(t, store.Bind(ctx, vid, rid))

	gotRID, ok, err := store.RIDOf(ctx, vid)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rid, gotRID)

	gotVID, ok, err := store.VIDOf(ctx, rid)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, vid, gotVID)
}

func TestUnbindRemovesBothDirections(t *testing.T) {
	store := translation.New(newMemStore())
	ctx := context.Background()

	vid, err := store.NextVID(ctx, sai.ObjectTypePort)
	require.NoError(t, err)
	rid := sai.RealID(42)
	require.NoError(t, store.Bind(ctx, vid, rid))
	require.NoError(t, store.Unbind(ctx, vid, rid))

	_, ok, err := store.RIDOf(ctx, vid)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.VIDOf(ctx, rid)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDiscoverIsIdempotentForRepeatedRID(t *testing.T) {
	store := translation.New(newMemStore())
	ctx := context.Background()

	rid := sai.RealID(0xCAFE)
	vid1, fresh1, err := store.Discover(ctx, rid, sai.ObjectTypePort)
	require.NoError(t, err)
	require.True(t, fresh1)

	vid2, fresh2, err := store.Discover(ctx, rid, sai.ObjectTypePort)
	require.NoError(t, err)
	require.False(t, fresh2)
	require.Equal(t, vid1, vid2)
}

func TestDiscoverRejectsKindMismatchOnRediscovery(t *testing.T) {
	store := translation.New(newMemStore())
	ctx := context.Background()

	rid := sai.RealID(0xFACE)
	_, _, err := store.Discover(ctx, rid, sai.ObjectTypePort)
	require.NoError(t, err)

	_, _, err = store.Discover(ctx, rid, sai.ObjectTypeVlan)
	require.Error(t, err)
}

func TestRIDOfMissIsReportedNotFatal(t *testing.T) {
	store := translation.New(newMemStore())
	ctx := context.Background()

	vid := sai.PackVID(sai.ObjectTypeRouteEntry, 999)
	_, ok, err := store.RIDOf(ctx, vid)
	require.NoError(t, err)
	require.False(t, ok)
}
