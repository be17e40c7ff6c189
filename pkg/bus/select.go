package bus

import (
	"reflect"
	"time"
)

// ShutdownToken is the cancellation source Select observes. Firing it
// wakes every waiter currently blocked in Select; Queue.Push and Queue.Pop
// do not watch it and return only on their ctx or a closed queue.
type ShutdownToken struct {
	ch chan struct{}
}

// NewShutdownToken creates an unfired token.
func NewShutdownToken() *ShutdownToken {
	return &ShutdownToken{ch: make(chan struct{})}
}

// Fire closes the token's channel. Safe to call more than once.
func (t *ShutdownToken) Fire() {
	select {
	case <-t.ch:
		// already fired
	default:
		close(t.ch)
	}
}

// C returns the token's readiness channel: closed once Fire has been
// called.
func (t *ShutdownToken) C() <-chan struct{} {
	return t.ch
}

// Fired reports whether the token has been fired, without blocking.
func (t *ShutdownToken) Fired() bool {
	select {
	case <-t.ch:
		return true
	default:
		return false
	}
}

// SelectResult names which source woke a Select call.
type SelectResult int

const (
	// SelectTimeout means no source became ready before the deadline.
	SelectTimeout SelectResult = iota
	// SelectShutdown means the shutdown token fired.
	SelectShutdown
	// SelectReady means sources[index] became ready; its value was
	// received and is returned in Select's third return value.
	SelectReady
)

// Select waits on an arbitrary set of receive channels (e.g. the `<-chan T`
// exposed by a Queue's C method) plus a shutdown token and an optional
// timeout, exactly as spec section 4.1 describes: the caller is woken when
// any source becomes readable, the token fires, or the timeout elapses.
// Each element of sources must be a channel value (any concrete `<-chan T`
// or `chan T`); Select receives from whichever one fires first, so callers
// never race a second reader for the same message.
//
// This is the generic form for waiters that must watch heterogeneous
// channel types in one call (e.g. a get-response Queue[Response] and a
// ShutdownToken together, as sairedis's synchronous get path does).
// Single-purpose loops with a small, fixed set of channels should just use
// a native Go select statement, which is clearer there (see
// syncd.Dispatcher.Run).
func Select(sources []any, shutdown *ShutdownToken, timeout time.Duration) (result SelectResult, index int, value any) {
	cases := make([]reflect.SelectCase, 0, len(sources)+2)
	for _, s := range sources {
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(s)})
	}
	shutdownIdx := len(cases)
	cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(shutdown.C())})

	timeoutIdx := -1
	if timeout > 0 {
		timeoutIdx = len(cases)
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(time.After(timeout))})
	}

	chosen, recv, _ := reflect.Select(cases)
	switch {
	case chosen == shutdownIdx:
		return SelectShutdown, -1, nil
	case timeoutIdx >= 0 && chosen == timeoutIdx:
		return SelectTimeout, -1, nil
	default:
		return SelectReady, chosen, recv.Interface()
	}
}
