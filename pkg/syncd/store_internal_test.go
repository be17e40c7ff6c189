package syncd

import (
	"context"
	"strconv"
)

// memStore is an in-memory bus.Store for internal (white-box) tests that
// need a translation.Store but live inside package syncd and so cannot
// import the external syncd_test helper of the same shape.
type memStore struct {
	scalars map[string]string
	hashes  map[string]map[string]string
}

func newTestStore() *memStore {
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
