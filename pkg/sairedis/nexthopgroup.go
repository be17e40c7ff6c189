package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// CreateNextHopGroup requires TYPE=ECMP and a non-empty NEXT_HOP_LIST of
// existing next-hop VIDs (spec section 4.2 and 8's boundary behavior:
// "Next-hop-group create with empty next-hop list is INVALID_PARAMETER").
//
// Duplicate detection (SPEC_FULL.md SUPPLEMENTED FEATURES 5) rejects a
// list containing the same next-hop VID twice, rather than silently
// deduplicating, since a silently deduplicated member count would depend
// on argument order.
func (sw *Switch) CreateNextHopGroup(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	typeAttr, ok := sai.Find(attrs, attr.NextHopGroupAttrType)
	if !ok || typeAttr.Value.S32 != attr.NextHopGroupTypeECMP {
		if !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
		return 0, sai.StatusInvalidParameter
	}

	listAttr, ok := sai.Find(attrs, attr.NextHopGroupAttrNextHopList)
	if !ok || len(listAttr.Value.OIDs) == 0 {
		if !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
		return 0, sai.StatusInvalidParameter
	}

	seen := make(map[sai.ObjectID]bool, len(listAttr.Value.OIDs))
	for _, nh := range listAttr.Value.OIDs {
		if seen[nh] {
			return 0, sai.StatusInvalidParameter
		}
		seen[nh] = true
		if !s.exists(sai.ObjectTypeNextHop, nh) {
			return 0, sai.StatusInvalidParameter
		}
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeNextHopGroup)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeNextHopGroup, objectRef(sai.ObjectTypeNextHopGroup, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeNextHopGroup, vid)
	for nh := range seen {
		s.Refs.Hold(nh)
	}
	return vid, nil
}

func (sw *Switch) RemoveNextHopGroup(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeNextHopGroup, id) {
		return sai.StatusInvalidParameter
	}
	if s.Refs.InUse(id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeNextHopGroup, objectRef(sai.ObjectTypeNextHopGroup, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeNextHopGroup, id)
	return nil
}

func (sw *Switch) GetNextHopGroupAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeNextHopGroup, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeNextHopGroup, objectRef(sai.ObjectTypeNextHopGroup, id), want)
}
