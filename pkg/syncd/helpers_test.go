package syncd_test

import (
	"context"
	"strconv"

	"github.com/opencompute/go-sairedis/pkg/bus"
)

// memStore is a minimal in-memory bus.Store, the same shape as
// translation's own test double, reused here since dispatcher tests need
// a full bus.Bus (which requires a Store) rather than a bare
// translation.Store.
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

var _ bus.Store = (*memStore)(nil)
