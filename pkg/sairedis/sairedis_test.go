package sairedis

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
)

// memStore is an in-process bus.Store double, mirroring the one used in
// pkg/bus/translation's tests: good enough to exercise VID allocation and
// translation without a real database.
type memStore struct {
	mu     sync.Mutex
	hashes map[string]map[string]string
	scalar map[string]string
}

func newMemStore() *memStore {
	return &memStore{hashes: make(map[string]map[string]string), scalar: make(map[string]string)}
}

func (m *memStore) HGet(ctx context.Context, hash, field string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hashes[hash]
	if !ok {
		return "", false, nil
	}
	v, ok := h[field]
	return v, ok, nil
}

func (m *memStore) HSet(ctx context.Context, hash, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hashes[hash]
	if !ok {
		h = make(map[string]string)
		m.hashes[hash] = h
	}
	h[field] = value
	return nil
}

func (m *memStore) HDel(ctx context.Context, hash, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hashes[hash], field)
	return nil
}

func (m *memStore) HLen(ctx context.Context, hash string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hashes[hash]), nil
}

func (m *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.scalar[key]
	return v, ok, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scalar[key] = value
	return nil
}

func (m *memStore) Incr(ctx context.Context, key string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, _ := strconv.ParseUint(m.scalar[key], 10, 64)
	cur++
	m.scalar[key] = strconv.FormatUint(cur, 10)
	return cur, nil
}

func (m *memStore) Close() error { return nil }

// fakeDaemon answers asic-state and get-request traffic the way a real
// syncd dispatcher would, minimally: every create/set/remove succeeds, and
// every get replies with whatever the test installed via setGetReply (a
// bare SUCCESS with no fields when nothing was installed).
type fakeDaemon struct {
	b        *bus.Bus
	mu       sync.Mutex
	getReply func(m bus.Message) bus.Response
	stop     chan struct{}
}

func newFakeDaemon(b *bus.Bus) *fakeDaemon {
	d := &fakeDaemon{b: b, stop: make(chan struct{})}
	go d.runAsicState()
	go d.runGetRequest()
	return d
}

func (d *fakeDaemon) runAsicState() {
	for {
		select {
		case <-d.stop:
			return
		case <-d.b.AsicState.C():
		}
	}
}

func (d *fakeDaemon) runGetRequest() {
	ctx := context.Background()
	for {
		select {
		case <-d.stop:
			return
		case m := <-d.b.GetRequest.C():
			d.mu.Lock()
			reply := d.getReply
			d.mu.Unlock()
			resp := bus.Response{Status: sai.StatusSuccess.String()}
			if reply != nil {
				resp = reply(m)
			}
			_ = d.b.PushResponse(ctx, resp)
		}
	}
}

func (d *fakeDaemon) setGetReply(fn func(m bus.Message) bus.Response) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.getReply = fn
}

func (d *fakeDaemon) close() { close(d.stop) }

// newTestSwitch builds an initialized Switch backed by an in-memory store
// and a fake daemon that answers the view-transition handshake and
// otherwise accepts every mutation, matching the shape a real switch
// reaches after Initialize(SAI_INIT_VIEW). DiscoverDefaults is not run,
// so no default objects are recorded.
func newTestSwitch() (*Switch, *fakeDaemon) {
	b := bus.New(newMemStore(), nil)
	daemon := newFakeDaemon(b)
	go func() {
		for {
			select {
			case <-daemon.stop:
				return
			case mode := <-b.ViewRequest.C():
				_ = mode
				_ = b.ViewResponse.Push(context.Background(), sai.StatusSuccess)
			}
		}
	}()

	sw := New(b)
	ctx := context.Background()
	if err := sw.Initialize(ctx, OpInitView); err != nil {
		panic(fmt.Sprintf("test switch init: %v", err))
	}
	return sw, daemon
}

func mustVID(t interface{ Errorf(string, ...any) }, kind sai.ObjectType, sw *Switch) sai.ObjectID {
	vid, err := sw.lib.Trans.NextVID(context.Background(), kind)
	if err != nil {
		t.Errorf("allocate vid: %v", err)
	}
	sw.lib.insert(kind, vid)
	return vid
}
