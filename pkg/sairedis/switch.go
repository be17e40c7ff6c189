package sairedis

import (
	"context"
	"fmt"
	"slices"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// SwitchState is the library-side switch lifecycle (spec section 4.4).
type SwitchState int

const (
	StateUninitialized SwitchState = iota
	StateInitialized
	StateShutdown
)

func (s SwitchState) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateInitialized:
		return "INITIALIZED"
	case StateShutdown:
		return "SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

// View protocol operation names (spec section 6).
const (
	OpInitView  = "SAI_INIT_VIEW"
	OpApplyView = "SAI_APPLY_VIEW"
)

// Switch owns the library-side lifecycle state machine and the two-phase
// view-transition client. It wraps a LibraryState so the notification
// worker and the per-kind entry points share the same underlying indices.
type Switch struct {
	state SwitchState
	lib   *LibraryState

	notify *notifyWorker
}

// New creates a Switch in the UNINITIALIZED state, backed by b.
func New(b *bus.Bus) *Switch {
	lib := newLibraryState(b)
	return &Switch{
		state: StateUninitialized,
		lib:   lib,
	}
}

// State reports the current lifecycle state.
func (sw *Switch) State() SwitchState {
	sw.lib.shutdownMu.Lock()
	defer sw.lib.shutdownMu.Unlock()
	return sw.state
}

// Initialize drives the two-phase view protocol (spec section 4.4). mode
// must be OpInitView or OpApplyView. It is synchronous: the request is
// written to the syncd-notification producer and the call blocks up to 60
// seconds for a reply on the consumer.
//
// Calling Initialize(OpInitView) on an already-initialized switch clears
// every local index first — "the candidate view is a fresh slate" — and
// the caller is expected to redrive default-object discovery afterward via
// DiscoverDefaults.
func (sw *Switch) Initialize(ctx context.Context, mode string) error {
	if mode != OpInitView && mode != OpApplyView {
		return fmt.Errorf("initialize: unknown view mode %q", mode)
	}

	sw.lib.shutdownMu.Lock()
	defer sw.lib.shutdownMu.Unlock()

	if sw.state == StateShutdown {
		return fmt.Errorf("initialize: switch is shut down")
	}

	wasInitialized := sw.state == StateInitialized
	if mode == OpInitView && wasInitialized {
		sw.lib.apiMu.Lock()
		sw.lib.flushIndices()
		sw.lib.apiMu.Unlock()
	}

	if err := sw.lib.Bus.ViewRequest.Push(ctx, mode); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	result, _, value := bus.Select([]any{sw.lib.Bus.ViewResponse.C()}, sw.lib.Bus.Shutdown, getTimeout)
	switch result {
	case bus.SelectShutdown:
		return fmt.Errorf("initialize: bus shut down")
	case bus.SelectTimeout:
		return sai.StatusFailure
	}

	status := value.(sai.Status)
	if !status.OK() {
		return status
	}

	sw.state = StateInitialized

	if sw.notify == nil {
		sw.notify = newNotifyWorker(sw.lib)
		sw.notify.start()
	}

	return nil
}

// Shutdown signals the notification worker, joins it, and zeroes the
// notification table (spec section 4.4). The switch is torn down on the
// daemon side by sending the switch-shutdown operation first, which is the
// caller's responsibility (typically via a dedicated shutdown attribute
// set, not part of this repo's minimal generic-kind surface).
func (sw *Switch) Shutdown(ctx context.Context) error {
	sw.lib.shutdownMu.Lock()
	defer sw.lib.shutdownMu.Unlock()

	if sw.state == StateShutdown {
		return nil
	}

	if sw.notify != nil {
		sw.notify.stop()
		sw.notify = nil
	}

	sw.lib.apiMu.Lock()
	sw.lib.flushIndices()
	sw.lib.apiMu.Unlock()

	sw.state = StateShutdown
	return nil
}

// DiscoverDefaults performs the first successful switch-get (spec section
// 3 & 4.2): CPU_PORT, DEFAULT_VIRTUAL_ROUTER_ID, PORT_LIST, DEFAULT_VLAN_ID,
// and DEFAULT_TRAP_GROUP are recorded, and re-discovery must be idempotent
// — any mismatch against a prior discovery is a fatal protocol bug on the
// library side, surfaced as an error rather than a process exit (only the
// daemon fails stop; the library observes desync via a returned error and
// may restart the switch, per spec section 7's propagation policy).
func (sw *Switch) DiscoverDefaults(ctx context.Context) error {
	sw.lib.lock()
	defer sw.lib.unlock()

	want := []sai.Attribute{
		{ID: attr.SwitchAttrCPUPort, Value: sai.Value{Type: sai.SerializationObjectID}},
		{ID: attr.SwitchAttrDefaultVirtualRouterID, Value: sai.Value{Type: sai.SerializationObjectID}},
		{ID: attr.SwitchAttrPortList, Value: sai.Value{Type: sai.SerializationObjectList}},
		{ID: attr.SwitchAttrDefaultVlanID, Value: sai.Value{Type: sai.SerializationObjectID}},
		{ID: attr.SwitchAttrDefaultTrapGroup, Value: sai.Value{Type: sai.SerializationObjectID}},
	}

	got, status, err := sw.lib.syncGet(ctx, sai.ObjectTypeSwitch, objectRef(sai.ObjectTypeSwitch, sai.NullObjectID), want)
	if err != nil {
		return err
	}
	if !status.OK() {
		return status
	}

	cpuPort, _ := sai.Find(got, attr.SwitchAttrCPUPort)
	defaultVR, _ := sai.Find(got, attr.SwitchAttrDefaultVirtualRouterID)
	portList, _ := sai.Find(got, attr.SwitchAttrPortList)
	defaultVlan, _ := sai.Find(got, attr.SwitchAttrDefaultVlanID)
	defaultTrapGroup, _ := sai.Find(got, attr.SwitchAttrDefaultTrapGroup)

	if sw.lib.discovered {
		if cpuPort != nil && cpuPort.Value.OID != sw.lib.CPUPort {
			return fmt.Errorf("default-object discovery mismatch: CPU_PORT changed from %s to %s", sw.lib.CPUPort, cpuPort.Value.OID)
		}
		if defaultVR != nil && defaultVR.Value.OID != sw.lib.DefaultVR {
			return fmt.Errorf("default-object discovery mismatch: DEFAULT_VIRTUAL_ROUTER_ID changed from %s to %s", sw.lib.DefaultVR, defaultVR.Value.OID)
		}
		if portList != nil && !slices.Equal(portList.Value.OIDs, sw.lib.PortList) {
			return fmt.Errorf("default-object discovery mismatch: PORT_LIST changed from %v to %v", sw.lib.PortList, portList.Value.OIDs)
		}
		if defaultTrapGroup != nil && defaultTrapGroup.Value.OID != sw.lib.DefaultTrapGroup {
			return fmt.Errorf("default-object discovery mismatch: DEFAULT_TRAP_GROUP changed from %s to %s", sw.lib.DefaultTrapGroup, defaultTrapGroup.Value.OID)
		}
		if defaultVlan != nil && defaultVlan.Value.OID != sw.lib.vlanByID[sai.DefaultVlanID] {
			return fmt.Errorf("default-object discovery mismatch: DEFAULT_VLAN_ID changed from %s to %s", sw.lib.vlanByID[sai.DefaultVlanID], defaultVlan.Value.OID)
		}
		return nil
	}

	if cpuPort != nil {
		sw.lib.CPUPort = cpuPort.Value.OID
		sw.lib.insert(sai.ObjectTypePort, sw.lib.CPUPort)
	}
	if defaultVR != nil {
		sw.lib.DefaultVR = defaultVR.Value.OID
		sw.lib.insert(sai.ObjectTypeVirtualRouter, sw.lib.DefaultVR)
	}
	if portList != nil {
		sw.lib.PortList = portList.Value.OIDs
		for _, p := range sw.lib.PortList {
			sw.lib.insert(sai.ObjectTypePort, p)
		}
	}
	if defaultTrapGroup != nil {
		sw.lib.DefaultTrapGroup = defaultTrapGroup.Value.OID
		sw.lib.insert(sai.ObjectTypeTrapGroup, sw.lib.DefaultTrapGroup)
	}
	if defaultVlan != nil {
		sw.lib.insert(sai.ObjectTypeVlan, defaultVlan.Value.OID)
		sw.lib.vlanByID[sai.DefaultVlanID] = defaultVlan.Value.OID
		sw.lib.vlanByVID[defaultVlan.Value.OID] = sai.DefaultVlanID
	}
	sw.lib.discovered = true
	return nil
}

// Lib exposes the underlying LibraryState for the per-kind operation
// files in this package and for tests.
func (sw *Switch) Lib() *LibraryState { return sw.lib }
