package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

var trapGroupSettable = map[sai.AttrID]bool{
	attr.TrapGroupAttrPolicer: true,
	attr.TrapGroupAttrQueue:   true,
}

// CreateTrapGroup accepts an optional POLICER attribute, which must
// reference an existing policer when present and non-null.
func (sw *Switch) CreateTrapGroup(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	var policer sai.ObjectID
	if p, ok := sai.Find(attrs, attr.TrapGroupAttrPolicer); ok && !p.Value.OID.IsNull() {
		if !s.exists(sai.ObjectTypePolicer, p.Value.OID) {
			return 0, sai.StatusInvalidParameter
		}
		policer = p.Value.OID
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeTrapGroup)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeTrapGroup, objectRef(sai.ObjectTypeTrapGroup, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeTrapGroup, vid)
	if !policer.IsNull() {
		s.Refs.Hold(policer)
	}
	return vid, nil
}

func (sw *Switch) RemoveTrapGroup(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTrapGroup, id) {
		return sai.StatusInvalidParameter
	}
	if id == s.DefaultTrapGroup {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeTrapGroup, objectRef(sai.ObjectTypeTrapGroup, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeTrapGroup, id)
	return nil
}

func (sw *Switch) SetTrapGroupAttribute(ctx context.Context, id sai.ObjectID, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTrapGroup, id) {
		return sai.StatusInvalidParameter
	}
	if !trapGroupSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	if a.ID == attr.TrapGroupAttrPolicer && !a.Value.OID.IsNull() && !s.exists(sai.ObjectTypePolicer, a.Value.OID) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeTrapGroup, objectRef(sai.ObjectTypeTrapGroup, id), bus.OpSet, []sai.Attribute{a}); err != nil {
		return err
	}
	if a.ID == attr.TrapGroupAttrPolicer && !a.Value.OID.IsNull() {
		s.Refs.Hold(a.Value.OID)
	}
	return nil
}

func (sw *Switch) GetTrapGroupAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeTrapGroup, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeTrapGroup, objectRef(sai.ObjectTypeTrapGroup, id), want)
}
