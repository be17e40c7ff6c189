package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// virtualRouterSettable is the set of attribute ids settable after create
// (spec section 4.2's settable-whitelist pattern, instantiated here).
var virtualRouterSettable = map[sai.AttrID]bool{
	attr.VirtualRouterAttrAdminV4State: true,
	attr.VirtualRouterAttrAdminV6State: true,
	attr.VirtualRouterAttrSrcMac:       true,
}

// CreateVirtualRouter takes no mandatory attributes (spec section 8,
// scenario 1). A fresh VID is drawn, the local index updated, and the
// request pushed onto the bus.
func (sw *Switch) CreateVirtualRouter(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeVirtualRouter)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeVirtualRouter, objectRef(sai.ObjectTypeVirtualRouter, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeVirtualRouter, vid)
	return vid, nil
}

// RemoveVirtualRouter refuses removal of the default virtual router (spec
// section 8 invariant) and of any router not in the local index.
func (sw *Switch) RemoveVirtualRouter(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if s.discovered && id == s.DefaultVR {
		return sai.StatusInvalidParameter
	}
	if !s.exists(sai.ObjectTypeVirtualRouter, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeVirtualRouter, objectRef(sai.ObjectTypeVirtualRouter, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeVirtualRouter, id)
	return nil
}

// SetVirtualRouterAttribute fixes the source bug noted in spec section 9:
// the original checked router-interface existence instead of virtual
// -router existence. This checks the virtual-router index (or the
// default VR id), never the RIF index.
func (sw *Switch) SetVirtualRouterAttribute(ctx context.Context, id sai.ObjectID, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.isValidVirtualRouter(id) {
		return sai.StatusInvalidParameter
	}
	if !virtualRouterSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	return s.pushMutation(ctx, sai.ObjectTypeVirtualRouter, objectRef(sai.ObjectTypeVirtualRouter, id), bus.OpSet, []sai.Attribute{a})
}

// GetVirtualRouterAttribute likewise checks the virtual-router index, not
// the RIF index (same bug fix as SetVirtualRouterAttribute).
func (sw *Switch) GetVirtualRouterAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.isValidVirtualRouter(id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeVirtualRouter, objectRef(sai.ObjectTypeVirtualRouter, id), want)
}
