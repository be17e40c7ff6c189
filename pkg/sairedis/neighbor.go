package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

var neighborSettable = map[sai.AttrID]bool{
	attr.NeighborEntryAttrDstMacAddress: true,
	attr.NeighborEntryAttrPacketAction:  true,
	attr.NeighborEntryAttrNoHostRoute:   true,
	attr.NeighborEntryAttrMetaData:      true,
}

// CreateNeighborEntry creates an entry-keyed object with key (router
// -interface VID, IP). Requires the RIF to exist locally.
func (sw *Switch) CreateNeighborEntry(ctx context.Context, key sai.NeighborEntry, attrs []sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeRouterInterface, key.RIFID) {
		return sai.StatusInvalidParameter
	}

	keyStr := key.String()
	if s.entryExists(sai.ObjectTypeNeighborEntry, keyStr) {
		return sai.StatusItemAlreadyExists
	}

	if err := s.pushMutation(ctx, sai.ObjectTypeNeighborEntry, entryRef(sai.ObjectTypeNeighborEntry, keyStr), bus.OpCreate, attrs); err != nil {
		return err
	}
	s.entryInsert(sai.ObjectTypeNeighborEntry, keyStr)
	s.holdEntryRefs(sai.ObjectTypeNeighborEntry, keyStr, []sai.ObjectID{key.RIFID})
	return nil
}

func (sw *Switch) RemoveNeighborEntry(ctx context.Context, key sai.NeighborEntry) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeNeighborEntry, keyStr) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeNeighborEntry, entryRef(sai.ObjectTypeNeighborEntry, keyStr), bus.OpRemove, nil); err != nil {
		return err
	}
	s.entryErase(sai.ObjectTypeNeighborEntry, keyStr)
	s.releaseEntryRefs(sai.ObjectTypeNeighborEntry, keyStr)
	return nil
}

func (sw *Switch) SetNeighborEntryAttribute(ctx context.Context, key sai.NeighborEntry, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeNeighborEntry, keyStr) {
		return sai.StatusInvalidParameter
	}
	if !neighborSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	return s.pushMutation(ctx, sai.ObjectTypeNeighborEntry, entryRef(sai.ObjectTypeNeighborEntry, keyStr), bus.OpSet, []sai.Attribute{a})
}

func (sw *Switch) GetNeighborEntryAttribute(ctx context.Context, key sai.NeighborEntry, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeNeighborEntry, keyStr) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeNeighborEntry, entryRef(sai.ObjectTypeNeighborEntry, keyStr), want)
}
