package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
)

// genericKinds lists the object kinds with no create/remove/set/get
// contract of their own: no mandatory attributes, no settable whitelist
// beyond "attribute id must be registered for this kind" (spec section 4.2
// lists explicit contracts only for the kinds implemented in their own
// files; everything else in the closed enumeration falls back to this
// generic path).
var genericKinds = map[sai.ObjectType]bool{
	sai.ObjectTypeTrap:                 true,
	sai.ObjectTypeUserDefinedTrap:      true,
	sai.ObjectTypeTunnelTermTableEntry: true,
}

// CreateGeneric creates an object of a kind with no explicit contract.
func (sw *Switch) CreateGeneric(ctx context.Context, kind sai.ObjectType, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !genericKinds[kind] {
		return 0, sai.StatusNotImplemented
	}

	vid, err := s.Trans.NextVID(ctx, kind)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, kind, objectRef(kind, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(kind, vid)
	return vid, nil
}

func (sw *Switch) RemoveGeneric(ctx context.Context, kind sai.ObjectType, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !genericKinds[kind] {
		return sai.StatusNotImplemented
	}
	if !s.exists(kind, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, kind, objectRef(kind, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(kind, id)
	return nil
}

func (sw *Switch) SetGenericAttribute(ctx context.Context, kind sai.ObjectType, id sai.ObjectID, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !genericKinds[kind] {
		return sai.StatusNotImplemented
	}
	if !s.exists(kind, id) {
		return sai.StatusInvalidParameter
	}
	return s.pushMutation(ctx, kind, objectRef(kind, id), bus.OpSet, []sai.Attribute{a})
}

func (sw *Switch) GetGenericAttribute(ctx context.Context, kind sai.ObjectType, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !genericKinds[kind] {
		return nil, sai.StatusNotImplemented, nil
	}
	if !s.exists(kind, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, kind, objectRef(kind, id), want)
}
