package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// portSpeedsMbps is the fixed set of speeds this adapter accepts
// (SUPPLEMENTED FEATURE 6): ports are pre-existing and discovered, not
// created, so speed is the only attribute needing domain validation beyond
// the settable whitelist.
var portSpeedsMbps = map[uint32]bool{
	10: true, 100: true, 1000: true, 10000: true,
	25000: true, 40000: true, 50000: true, 100000: true,
}

var portSettable = map[sai.AttrID]bool{
	attr.PortAttrSpeed:      true,
	attr.PortAttrAdminState: true,
}

// SetPortAttribute is the only mutation available on ports; ports come
// into existence solely through switch discovery (spec section 4.2 note:
// "port: no create; discovered from switch PORT_LIST").
func (sw *Switch) SetPortAttribute(ctx context.Context, id sai.ObjectID, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypePort, id) {
		return sai.StatusInvalidParameter
	}
	if !portSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	if a.ID == attr.PortAttrSpeed && !portSpeedsMbps[a.Value.U32] {
		return sai.StatusInvalidParameter
	}
	return s.pushMutation(ctx, sai.ObjectTypePort, objectRef(sai.ObjectTypePort, id), bus.OpSet, []sai.Attribute{a})
}

func (sw *Switch) GetPortAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypePort, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypePort, objectRef(sai.ObjectTypePort, id), want)
}
