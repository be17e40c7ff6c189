package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// CreateLAG takes no mandatory attributes.
func (sw *Switch) CreateLAG(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeLAG)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeLAG, objectRef(sai.ObjectTypeLAG, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeLAG, vid)
	return vid, nil
}

func (sw *Switch) RemoveLAG(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeLAG, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeLAG, objectRef(sai.ObjectTypeLAG, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeLAG, id)
	return nil
}

func (sw *Switch) GetLAGAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeLAG, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeLAG, objectRef(sai.ObjectTypeLAG, id), want)
}

// CreateLAGMember requires LAG_ID (existing LAG) and PORT_ID whose type is
// exactly Port (a LAG cannot itself be a LAG member).
func (sw *Switch) CreateLAGMember(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	lagAttr, ok := sai.Find(attrs, attr.LAGMemberAttrLagID)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}
	if !s.exists(sai.ObjectTypeLAG, lagAttr.Value.OID) {
		return 0, sai.StatusInvalidParameter
	}
	portAttr, ok := sai.Find(attrs, attr.LAGMemberAttrPortID)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}
	if portAttr.Value.OID.TypeOf() != sai.ObjectTypePort {
		return 0, sai.StatusInvalidParameter
	}
	if !s.exists(sai.ObjectTypePort, portAttr.Value.OID) {
		return 0, sai.StatusInvalidParameter
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeLAGMember)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeLAGMember, objectRef(sai.ObjectTypeLAGMember, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeLAGMember, vid)
	s.Refs.Hold(lagAttr.Value.OID)
	s.Refs.Hold(portAttr.Value.OID)
	return vid, nil
}

func (sw *Switch) RemoveLAGMember(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeLAGMember, id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeLAGMember, objectRef(sai.ObjectTypeLAGMember, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeLAGMember, id)
	return nil
}
