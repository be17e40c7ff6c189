package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// NotificationHandler processes one notification after RID->VID rewrite.
// Registered per event name; unrecognized events are dropped (a vendor
// notification type this adapter does not model), matching the source's
// "arbitrary vendor notifications" allowance in spec section 4.1.
type NotificationHandler func(n bus.Notification, rewritten []sai.Attribute)

// eventKind maps a notification's event name to the object kind whose
// attribute metadata its Fields were serialized against, so the rewrite
// pass knows which (kind, attr id) table to deserialize with. Events
// carrying no object-valued fields (switch/shutdown) need no kind.
var eventKind = map[string]sai.ObjectType{
	bus.EventPortStateChange: sai.ObjectTypePort,
	bus.EventFDB:             sai.ObjectTypeFDBEntry,
}

// notifyWorker is the single dedicated task spec section 4.2 describes:
// it waits on {notification queue, shutdown token}, and for each popped
// notification, rewrites any RID-valued object references back to VIDs
// before routing to a per-event handler under the API lock.
type notifyWorker struct {
	lib      *LibraryState
	handlers map[string]NotificationHandler
	stopped  chan struct{}
	token    *bus.ShutdownToken
}

func newNotifyWorker(lib *LibraryState) *notifyWorker {
	return &notifyWorker{
		lib:      lib,
		handlers: make(map[string]NotificationHandler),
		stopped:  make(chan struct{}),
		token:    bus.NewShutdownToken(),
	}
}

// Handle registers (or replaces) the handler for an event name.
func (w *notifyWorker) Handle(event string, h NotificationHandler) {
	w.handlers[event] = h
}

func (w *notifyWorker) start() {
	go w.run()
}

func (w *notifyWorker) stop() {
	w.token.Fire()
	<-w.stopped
}

func (w *notifyWorker) run() {
	defer close(w.stopped)
	ctx := context.Background()
	for {
		result, _, value := bus.Select([]any{w.lib.Bus.Notify.C()}, w.token, 0)
		if result == bus.SelectShutdown {
			return
		}
		n := value.(bus.Notification)
		w.deliver(ctx, n)
	}
}

func (w *notifyWorker) deliver(ctx context.Context, n bus.Notification) {
	kind, hasKind := eventKind[n.Op]

	var rewritten []sai.Attribute
	if hasKind {
		attrs, err := attr.Deserialize(kind, n.Fields)
		if err != nil {
			return
		}
		for i, a := range attrs {
			nv, err := a.Value.RewriteObjectRefs(func(rid sai.ObjectID) (sai.ObjectID, error) {
				vid, ok, err := w.lib.Trans.VIDOf(ctx, sai.RealID(rid))
				if err != nil {
					return 0, err
				}
				if !ok {
					// Unseen RID in a notification payload: best effort,
					// leave unrewritten rather than failing delivery (the
					// dispatcher already failed-stop on a genuine miss;
					// the library side never does).
					return rid, nil
				}
				return vid, nil
			})
			if err != nil {
				return
			}
			attrs[i].Value = nv
		}
		rewritten = attrs
	}

	w.lib.lock()
	defer w.lib.unlock()

	if h, ok := w.handlers[n.Op]; ok {
		h(n, rewritten)
	}
}
