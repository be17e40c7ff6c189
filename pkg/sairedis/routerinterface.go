package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// CreateRouterInterface validates the requires-VIRTUAL_ROUTER_ID-and-TYPE
// contract, plus the TYPE=PORT -> PORT_ID and TYPE=VLAN -> VLAN_ID
// sub-contracts (spec section 4.2).
func (sw *Switch) CreateRouterInterface(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	vrAttr, ok := sai.Find(attrs, attr.RouterInterfaceAttrVirtualRouterID)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}
	if !s.isValidVirtualRouter(vrAttr.Value.OID) {
		return 0, sai.StatusInvalidParameter
	}

	typeAttr, ok := sai.Find(attrs, attr.RouterInterfaceAttrType)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}

	switch typeAttr.Value.S32 {
	case attr.RouterInterfaceTypePort:
		portAttr, ok := sai.Find(attrs, attr.RouterInterfaceAttrPortID)
		if !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
		kind := portAttr.Value.OID.TypeOf()
		if kind != sai.ObjectTypePort && kind != sai.ObjectTypeLAG {
			return 0, sai.StatusInvalidParameter
		}
		if !s.exists(kind, portAttr.Value.OID) {
			return 0, sai.StatusInvalidParameter
		}
	case attr.RouterInterfaceTypeVlan:
		if _, ok := sai.Find(attrs, attr.RouterInterfaceAttrVlanID); !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
	case attr.RouterInterfaceTypeLoopback:
		// no sub-attribute required
	default:
		return 0, sai.StatusInvalidParameter
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeRouterInterface)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeRouterInterface, objectRef(sai.ObjectTypeRouterInterface, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeRouterInterface, vid)
	targets := []sai.ObjectID{vrAttr.Value.OID}
	if portAttr, ok := sai.Find(attrs, attr.RouterInterfaceAttrPortID); ok {
		targets = append(targets, portAttr.Value.OID)
	}
	s.holdEntryRefs(sai.ObjectTypeRouterInterface, vid.String(), targets)
	return vid, nil
}

// RemoveRouterInterface refuses removal while another object still
// references this RIF (next-hop, neighbor entry) via the shared
// RefCounter, and while id is absent from the local index.
func (sw *Switch) RemoveRouterInterface(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeRouterInterface, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeRouterInterface, objectRef(sai.ObjectTypeRouterInterface, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeRouterInterface, id)
	s.releaseEntryRefs(sai.ObjectTypeRouterInterface, id.String())
	return nil
}

var routerInterfaceSettable = map[sai.AttrID]bool{
	attr.RouterInterfaceAttrSrcMac: true,
	attr.RouterInterfaceAttrMTU:    true,
}

func (sw *Switch) SetRouterInterfaceAttribute(ctx context.Context, id sai.ObjectID, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeRouterInterface, id) {
		return sai.StatusInvalidParameter
	}
	if !routerInterfaceSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	return s.pushMutation(ctx, sai.ObjectTypeRouterInterface, objectRef(sai.ObjectTypeRouterInterface, id), bus.OpSet, []sai.Attribute{a})
}

func (sw *Switch) GetRouterInterfaceAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeRouterInterface, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeRouterInterface, objectRef(sai.ObjectTypeRouterInterface, id), want)
}
