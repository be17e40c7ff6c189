package saipb_test

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/api/saipb"
	"github.com/opencompute/go-sairedis/internal/obslog"
	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

type memStore struct {
	hashes  map[string]map[string]string
	scalars map[string]string
}

func newMemStore() *memStore {
	return &memStore{hashes: map[string]map[string]string{}, scalars: map[string]string{}}
}

func (m *memStore) HGet(_ context.Context, hash, field string) (string, bool, error) {
	v, ok := m.hashes[hash][field]
	return v, ok, nil
}
func (m *memStore) HSet(_ context.Context, hash, field, value string) error {
	if m.hashes[hash] == nil {
		m.hashes[hash] = map[string]string{}
	}
	m.hashes[hash][field] = value
	return nil
}
func (m *memStore) HDel(_ context.Context, hash, field string) error {
	delete(m.hashes[hash], field)
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
	m.scalars[key] = "1"
	return 1, nil
}
func (m *memStore) Close() error {
	return nil
}

var _ bus.Store = (*memStore)(nil)

func TestStatusResponseGobRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	want := saipb.StatusResponse{
		BusDepths:       map[string]int32{"asic_state": 3},
		TranslationSize: 42,
		LogLevel:        "debug",
	}
	require.NoError(t, gob.NewEncoder(&buf).Encode(want))

	var got saipb.StatusResponse
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	require.Equal(t, want, got)
}

func TestIntrospectorStatusReportsDepthsAndSize(t *testing.T) {
	store := newMemStore()
	b := bus.New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	trans := translation.New(store)
	sdk := vendor.NewFake()

	ctx := context.Background()
	require.NoError(t, b.PushAsicState(ctx, bus.Message{Key: "port:1"}))

	introspector := &saipb.Introspector{Bus: b, Trans: trans, SDK: sdk}
	resp, err := introspector.Status(ctx, &saipb.StatusRequest{})
	require.NoError(t, err)
	require.Equal(t, int32(1), resp.BusDepths["asic_state"])
	require.Equal(t, int64(0), resp.TranslationSize)
}

func TestIntrospectorSetLevelThenStatusReflectsOverride(t *testing.T) {
	store := newMemStore()
	b := bus.New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	trans := translation.New(store)
	sdk := vendor.NewFake()
	introspector := &saipb.Introspector{Bus: b, Trans: trans, SDK: sdk}

	ctx := context.Background()
	_, err := introspector.SetLevel(ctx, &saipb.SetLevelRequest{Component: obslog.ComponentSyncd, Level: "debug"})
	require.NoError(t, err)
	require.Equal(t, obslog.LevelDebug, obslog.CurrentLevel(obslog.ComponentSyncd))

	_, err = introspector.SetLevel(ctx, &saipb.SetLevelRequest{Component: obslog.ComponentSyncd, Level: ""})
	require.NoError(t, err)
	require.Equal(t, obslog.LevelInfo, obslog.CurrentLevel(obslog.ComponentSyncd))
}

func TestIntrospectorDiagCallsSDKOnce(t *testing.T) {
	store := newMemStore()
	b := bus.New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	trans := translation.New(store)
	sdk := vendor.NewFake()
	introspector := &saipb.Introspector{Bus: b, Trans: trans, SDK: sdk}

	resp, err := introspector.Diag(context.Background(), &saipb.DiagRequest{})
	require.NoError(t, err)
	require.True(t, resp.Ok)
	require.Equal(t, 1, sdk.DiagHits())
}
