package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

func (sw *Switch) CreateTunnelMap(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if _, ok := sai.Find(attrs, attr.TunnelMapAttrType); !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeTunnelMap)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeTunnelMap, objectRef(sai.ObjectTypeTunnelMap, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeTunnelMap, vid)
	return vid, nil
}

func (sw *Switch) RemoveTunnelMap(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTunnelMap, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeTunnelMap, objectRef(sai.ObjectTypeTunnelMap, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeTunnelMap, id)
	return nil
}

var tunnelMapSettable = map[sai.AttrID]bool{
	attr.TunnelMapAttrEntries: true,
}

func (sw *Switch) SetTunnelMapAttribute(ctx context.Context, id sai.ObjectID, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTunnelMap, id) {
		return sai.StatusInvalidParameter
	}
	if !tunnelMapSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	return s.pushMutation(ctx, sai.ObjectTypeTunnelMap, objectRef(sai.ObjectTypeTunnelMap, id), bus.OpSet, []sai.Attribute{a})
}

func (sw *Switch) GetTunnelMapAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTunnelMap, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeTunnelMap, objectRef(sai.ObjectTypeTunnelMap, id), want)
}
