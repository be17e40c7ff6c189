package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// CreateFDBEntry creates an entry-keyed object with key (MAC, VLAN).
// Requires PORT_ID to reference an existing port (or LAG).
func (sw *Switch) CreateFDBEntry(ctx context.Context, key sai.FDBEntry, attrs []sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	portAttr, ok := sai.Find(attrs, attr.FDBEntryAttrPortID)
	if !ok {
		return sai.StatusMandatoryAttributeMissing
	}
	kind := portAttr.Value.OID.TypeOf()
	if kind != sai.ObjectTypePort && kind != sai.ObjectTypeLAG {
		return sai.StatusInvalidParameter
	}
	if !s.exists(kind, portAttr.Value.OID) {
		return sai.StatusInvalidParameter
	}

	keyStr := key.String()
	if s.entryExists(sai.ObjectTypeFDBEntry, keyStr) {
		return sai.StatusItemAlreadyExists
	}

	if err := s.pushMutation(ctx, sai.ObjectTypeFDBEntry, entryRef(sai.ObjectTypeFDBEntry, keyStr), bus.OpCreate, attrs); err != nil {
		return err
	}
	s.entryInsert(sai.ObjectTypeFDBEntry, keyStr)
	s.holdEntryRefs(sai.ObjectTypeFDBEntry, keyStr, []sai.ObjectID{portAttr.Value.OID})
	return nil
}

func (sw *Switch) RemoveFDBEntry(ctx context.Context, key sai.FDBEntry) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeFDBEntry, keyStr) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeFDBEntry, entryRef(sai.ObjectTypeFDBEntry, keyStr), bus.OpRemove, nil); err != nil {
		return err
	}
	s.entryErase(sai.ObjectTypeFDBEntry, keyStr)
	s.releaseEntryRefs(sai.ObjectTypeFDBEntry, keyStr)
	return nil
}

var fdbSettable = map[sai.AttrID]bool{
	attr.FDBEntryAttrPacketAction: true,
	attr.FDBEntryAttrPortID:       true,
}

func (sw *Switch) SetFDBEntryAttribute(ctx context.Context, key sai.FDBEntry, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeFDBEntry, keyStr) {
		return sai.StatusInvalidParameter
	}
	if !fdbSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeFDBEntry, entryRef(sai.ObjectTypeFDBEntry, keyStr), bus.OpSet, []sai.Attribute{a}); err != nil {
		return err
	}
	if a.ID == attr.FDBEntryAttrPortID {
		s.holdEntryRefs(sai.ObjectTypeFDBEntry, keyStr, []sai.ObjectID{a.Value.OID})
	}
	return nil
}

func (sw *Switch) GetFDBEntryAttribute(ctx context.Context, key sai.FDBEntry, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	keyStr := key.String()
	if !s.entryExists(sai.ObjectTypeFDBEntry, keyStr) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeFDBEntry, entryRef(sai.ObjectTypeFDBEntry, keyStr), want)
}
