package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

var policerSettable = map[sai.AttrID]bool{
	attr.PolicerAttrCIR: true,
	attr.PolicerAttrCBS: true,
	attr.PolicerAttrPIR: true,
	attr.PolicerAttrPBS: true,
}

// CreatePolicer requires METER_TYPE and MODE; Tr_TCM additionally requires
// PIR (spec section 4.2).
func (sw *Switch) CreatePolicer(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	meterAttr, ok := sai.Find(attrs, attr.PolicerAttrMeterType)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}
	if meterAttr.Value.S32 != attr.PolicerMeterTypePackets && meterAttr.Value.S32 != attr.PolicerMeterTypeBytes {
		return 0, sai.StatusInvalidParameter
	}
	modeAttr, ok := sai.Find(attrs, attr.PolicerAttrMode)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}
	switch modeAttr.Value.S32 {
	case attr.PolicerModeSrTCM, attr.PolicerModeStorm:
	case attr.PolicerModeTrTCM:
		if _, ok := sai.Find(attrs, attr.PolicerAttrPIR); !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
	default:
		return 0, sai.StatusInvalidParameter
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypePolicer)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypePolicer, objectRef(sai.ObjectTypePolicer, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypePolicer, vid)
	return vid, nil
}

// RemovePolicer refuses while a trap group still references it (spec
// section 9 refcounting applied to policer-as-target, SUPPLEMENTED FEATURE
// 4).
func (sw *Switch) RemovePolicer(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypePolicer, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypePolicer, objectRef(sai.ObjectTypePolicer, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypePolicer, id)
	return nil
}

func (sw *Switch) SetPolicerAttribute(ctx context.Context, id sai.ObjectID, a sai.Attribute) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypePolicer, id) {
		return sai.StatusInvalidParameter
	}
	if !policerSettable[a.ID] {
		return sai.StatusInvalidParameter
	}
	return s.pushMutation(ctx, sai.ObjectTypePolicer, objectRef(sai.ObjectTypePolicer, id), bus.OpSet, []sai.Attribute{a})
}

func (sw *Switch) GetPolicerAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypePolicer, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypePolicer, objectRef(sai.ObjectTypePolicer, id), want)
}
