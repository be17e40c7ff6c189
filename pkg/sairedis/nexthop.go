package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// CreateNextHop validates TYPE and ROUTER_INTERFACE_ID always required;
// TYPE=IP additionally requires IP; TYPE=TUNNEL_ENCAP requires TUNNEL_ID
// to reference an existing tunnel (spec section 4.2).
func (sw *Switch) CreateNextHop(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	typeAttr, ok := sai.Find(attrs, attr.NextHopAttrType)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}
	rifAttr, ok := sai.Find(attrs, attr.NextHopAttrRouterInterfaceID)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}
	if !s.exists(sai.ObjectTypeRouterInterface, rifAttr.Value.OID) {
		return 0, sai.StatusInvalidParameter
	}

	var tunnelAttr *sai.Attribute
	switch typeAttr.Value.S32 {
	case attr.NextHopTypeIP:
		if _, ok := sai.Find(attrs, attr.NextHopAttrIP); !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
	case attr.NextHopTypeTunnelEncap:
		t, ok := sai.Find(attrs, attr.NextHopAttrTunnelID)
		if !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
		if !s.exists(sai.ObjectTypeTunnel, t.Value.OID) {
			return 0, sai.StatusInvalidParameter
		}
		tunnelAttr = t
	default:
		return 0, sai.StatusInvalidParameter
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeNextHop)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeNextHop, objectRef(sai.ObjectTypeNextHop, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeNextHop, vid)
	s.Refs.Hold(rifAttr.Value.OID)
	if tunnelAttr != nil {
		s.Refs.Hold(tunnelAttr.Value.OID)
	}
	return vid, nil
}

func (sw *Switch) RemoveNextHop(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeNextHop, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeNextHop, objectRef(sai.ObjectTypeNextHop, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeNextHop, id)
	return nil
}

func (sw *Switch) GetNextHopAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeNextHop, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeNextHop, objectRef(sai.ObjectTypeNextHop, id), want)
}
