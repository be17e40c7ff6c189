package syncd

import (
	"context"
	"fmt"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

// vendorEventOp maps a vendor.Event.Name to the bus notification op name
// the library's notifyWorker switches on (spec section 6). Names outside
// this table (anything not switch/port/FDB/packet/PFC) are dropped with a
// log line: the vendor SDK boundary is
// wider than the notification set this repo forwards.
func vendorEventOp(e vendor.Event) (string, bool) {
	switch e.Name {
	case bus.EventSwitchStateChange, bus.EventPortStateChange, bus.EventFDB,
		bus.EventSwitchShutdownRequest, bus.EventPacket, bus.EventQueuePFCDeadlock:
		return e.Name, true
	default:
		return "", false
	}
}

// RunNotify relays vendor SDK notifications onto the bus notification
// queue until the SDK's channel closes or ctx is canceled. It runs on its
// own goroutine, separate from Run's single-threaded request dispatch,
// since notifications are independent of the request/response protocol
// (spec section 5: dispatcher and notification relay are separate
// concurrency domains).
//
// No RID->VID rewriting happens here: pkg/sairedis's notifyWorker already
// does that on receipt, best-effort and non-fatal on a miss. Attrs are
// serialized as-is, still in RID space.
func (d *Dispatcher) RunNotify(ctx context.Context) {
	for {
		select {
		case e, ok := <-d.sdk.Notifications():
			if !ok {
				return
			}
			d.relayNotification(ctx, e)

		case <-ctx.Done():
			return

		case <-d.bus.Shutdown.C():
			return
		}
	}
}

func (d *Dispatcher) relayNotification(ctx context.Context, e vendor.Event) {
	op, ok := vendorEventOp(e)
	if !ok {
		if d.logger != nil {
			d.logger.Warn("dropping notification of unrecognized kind", "name", e.Name)
		}
		return
	}

	fields, err := attr.Serialize(e.Kind, e.Attrs)
	if err != nil {
		if d.logger != nil {
			d.logger.Error("serialize notification attrs", "name", e.Name, "error", err)
		}
		return
	}

	n := bus.Notification{Op: op, Data: e.Data, Fields: fields}
	if err := d.bus.PushNotify(ctx, n); err != nil {
		if d.logger != nil {
			d.logger.Error("publish notification", "name", e.Name, "error", fmt.Errorf("push: %w", err))
		}
	}
}
