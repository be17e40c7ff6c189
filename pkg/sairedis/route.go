package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// routeSettable is the route-entry settable whitelist (spec section 4.2).
var routeSettable = map[sai.AttrID]bool{
	attr.RouteEntryAttrTrapPriority: true,
	attr.RouteEntryAttrMetaData:     true,
	attr.RouteEntryAttrNextHopID:    true,
	attr.RouteEntryAttrPacketAction: true,
}

// CreateRouteEntry creates an entry-keyed object: the key is (virtual
// -router VID, prefix, mask), not a VID. A second create with the same
// key is ITEM_ALREADY_EXISTS (spec section 4.2 and 8 scenario 3).
func (sw *Switch) CreateRouteEntry(ctx context.Context, key sai.RouteEntry, attrs []sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.isValidVirtualRouter(key.VRID) {
		return sai.StatusInvalidParameter
	}

	keyStr := key.String()
	if s.entryExists(sai.ObjectTypeRouteEntry, keyStr) {
		return sai.StatusItemAlreadyExists
	}

	if err := s.pushMutation(ctx, sai.ObjectTypeRouteEntry, entryRef(sai.ObjectTypeRouteEntry, keyStr), bus.OpCreate, attrs); err != nil {
		return err
	}
	s.entryInsert(sai.ObjectTypeRouteEntry, keyStr)
	if nh, ok := sai.Find(attrs, attr.RouteEntryAttrNextHopID); ok {
		s.holdEntryRefs(sai.ObjectTypeRouteEntry, keyStr, []sai.ObjectID{nh.Value.OID})
	}
	return nil
}

func (sw *Switch) RemoveRouteEntry(ctx context.Context, key sai.RouteEntry) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeRouteEntry, keyStr) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeRouteEntry, entryRef(sai.ObjectTypeRouteEntry, keyStr), bus.OpRemove, nil); err != nil {
		return err
	}
	s.entryErase(sai.ObjectTypeRouteEntry, keyStr)
	s.releaseEntryRefs(sai.ObjectTypeRouteEntry, keyStr)
	return nil
}

func (sw *Switch) SetRouteEntryAttribute(ctx context.Context, key sai.RouteEntry, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeRouteEntry, keyStr) {
		return sai.StatusInvalidParameter
	}
	if !routeSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	if a.ID == attr.RouteEntryAttrNextHopID && !a.Value.OID.IsNull() {
		kind := a.Value.OID.TypeOf()
		if kind != sai.ObjectTypeNextHop && kind != sai.ObjectTypeNextHopGroup && kind != sai.ObjectTypeRouterInterface {
			return sai.StatusInvalidParameter
		}
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeRouteEntry, entryRef(sai.ObjectTypeRouteEntry, keyStr), bus.OpSet, []sai.Attribute{a}); err != nil {
		return err
	}
	if a.ID == attr.RouteEntryAttrNextHopID {
		s.holdEntryRefs(sai.ObjectTypeRouteEntry, keyStr, []sai.ObjectID{a.Value.OID})
	}
	return nil
}

func (sw *Switch) GetRouteEntryAttribute(ctx context.Context, key sai.RouteEntry, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeRouteEntry, keyStr) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeRouteEntry, entryRef(sai.ObjectTypeRouteEntry, keyStr), want)
}
