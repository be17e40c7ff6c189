package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// CreateTunnel requires TYPE; UNDERLAY_INTERFACE and OVERLAY_INTERFACE, when
// present, must reference existing router interfaces.
func (sw *Switch) CreateTunnel(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if _, ok := sai.Find(attrs, attr.TunnelAttrType); !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}

	var rifs []sai.ObjectID
	for _, id := range []sai.AttrID{attr.TunnelAttrUnderlayInterface, attr.TunnelAttrOverlayInterface} {
		a, ok := sai.Find(attrs, id)
		if !ok || a.Value.OID.IsNull() {
			continue
		}
		if !s.exists(sai.ObjectTypeRouterInterface, a.Value.OID) {
			return 0, sai.StatusInvalidParameter
		}
		rifs = append(rifs, a.Value.OID)
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeTunnel)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeTunnel, objectRef(sai.ObjectTypeTunnel, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeTunnel, vid)
	for _, rif := range rifs {
		s.Refs.Hold(rif)
	}
	return vid, nil
}

func (sw *Switch) RemoveTunnel(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTunnel, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeTunnel, objectRef(sai.ObjectTypeTunnel, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeTunnel, id)
	return nil
}

func (sw *Switch) GetTunnelAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTunnel, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeTunnel, objectRef(sai.ObjectTypeTunnel, id), want)
}
